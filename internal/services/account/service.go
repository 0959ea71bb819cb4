package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dicehall/dicehall/internal/dependencies/clock"
	"github.com/dicehall/dicehall/internal/dependencies/random"
	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/storage"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Config holds configuration for the account service
type Config struct {
	// Hasher controls credential storage. Defaults to Plaintext, which is
	// the faithful demo contract; pass Bcrypt for hashed credentials.
	Hasher Hasher
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		Hasher: Plaintext{},
	}
}

// Service is the account store: a durable mapping from identity to mutable
// player state, plus the single active-session pointer. Login is the only
// producer of the session pointer; the game engine and leaderboard consume it.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	hasher  Hasher
	logger  *slog.Logger
}

// New creates a new account service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = Plaintext{}
	}
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		hasher:  hasher,
		logger:  logger,
	}
}

// Register creates a new user record. It fails with ErrDuplicateUsername
// when a record with the same normalized username exists (case-insensitive,
// whitespace-collapsed) and with ErrInvalidPassword when the password does
// not satisfy the policy. Neither failure mutates the store.
func (s *Service) Register(ctx context.Context, firstName, lastName, username, password string) (*model.User, error) {
	username = model.NormalizeName(username)

	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrDuplicateUsername
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if !ValidatePassword(password) {
		return nil, model.ErrInvalidPassword
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:        model.UserID("u_" + s.random.String(16, idAlphabet)),
		Username:  username,
		FirstName: model.NormalizeName(firstName),
		LastName:  model.NormalizeName(lastName),
		Password:  stored,
		Cash:      model.DefaultCash,
		Score:     0,
		TopScore:  0,
		Created:   now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a user and makes it the current session. The three
// failure modes stay distinct: ErrNoUsersRegistered when the store is
// empty, ErrUserNotFound when no normalized username matches, and
// ErrWrongPassword on a credential mismatch. On success the session score
// resets to 0 (topScore is untouched) and the session pointer is set to a
// reduced projection of the record.
func (s *Service) Login(ctx context.Context, username, password string) (*model.SessionView, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, model.ErrNoUsersRegistered
	}

	key := model.FoldName(username)
	var user *model.User
	for _, u := range users {
		if model.FoldName(u.Username) == key {
			user = u
			break
		}
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, model.ErrWrongPassword
	}

	now := s.clock.Now()
	user.Score = 0
	user.LastLoggedInAt = now

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	session := &model.SessionView{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		LoggedInAt: now,
	}
	if err := s.storage.SetSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		slog.String("user_id", string(user.ID)),
		slog.String("username", user.Username),
	)

	return session, nil
}

// CurrentUser returns the session pointer contents, or ErrNotLoggedIn
func (s *Service) CurrentUser(ctx context.Context) (*model.SessionView, error) {
	return s.storage.GetSession(ctx)
}

// GetUser returns the full record behind a user ID
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// PersistCash writes a user's bankroll. A missing record is tolerated
// silently; the update is simply dropped, as the original writer did.
func (s *Service) PersistCash(ctx context.Context, id model.UserID, cash int) error {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}
	user.Cash = cash
	return s.storage.SaveUser(ctx, user)
}

// PersistScore writes a user's current session score
func (s *Service) PersistScore(ctx context.Context, id model.UserID, score int) error {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}
	user.Score = score
	return s.storage.SaveUser(ctx, user)
}

// PersistScoreIfHigher ratchets a user's topScore: it writes only when the
// candidate exceeds the stored value, so topScore never decreases.
func (s *Service) PersistScoreIfHigher(ctx context.Context, id model.UserID, candidate int) error {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if candidate <= user.TopScore {
		return nil
	}
	user.TopScore = candidate
	return s.storage.SaveUser(ctx, user)
}
