package memory

import (
	"context"
	"sync"

	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Users are held in registration order; all reads and writes copy records
// so callers hold independent snapshots, matching the behavior of the
// serialized backends.
type Storage struct {
	mu          sync.RWMutex
	users       []*model.User
	session     *model.SessionView
	leaderboard []model.LeaderboardEntry

	subMu sync.Mutex
	subs  map[chan storage.ChangeEvent]struct{}
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		subs: make(map[chan storage.ChangeEvent]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	u := *user
	replaced := false
	for i, existing := range s.users {
		if existing.ID == u.ID {
			s.users[i] = &u
			replaced = true
			break
		}
	}
	if !replaced {
		s.users = append(s.users, &u)
	}
	s.mu.Unlock()

	s.notify(storage.KeyUsers)
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	key := model.FoldName(username)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if model.FoldName(u.Username) == key {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, len(s.users))
	for i, u := range s.users {
		copied := *u
		users[i] = &copied
	}
	return users, nil
}

// Session operations

func (s *Storage) SetSession(ctx context.Context, session *model.SessionView) error {
	s.mu.Lock()
	copied := *session
	s.session = &copied
	s.mu.Unlock()

	s.notify(storage.KeyCurrentUser)
	return nil
}

func (s *Storage) GetSession(ctx context.Context) (*model.SessionView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, model.ErrNotLoggedIn
	}
	copied := *s.session
	return &copied, nil
}

func (s *Storage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.notify(storage.KeyCurrentUser)
	return nil
}

// Leaderboard operations

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	s.mu.Lock()
	s.leaderboard = make([]model.LeaderboardEntry, len(entries))
	copy(s.leaderboard, entries)
	s.mu.Unlock()

	s.notify(storage.KeyLeaderboard)
	return nil
}

func (s *Storage) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]model.LeaderboardEntry, len(s.leaderboard))
	copy(entries, s.leaderboard)
	return entries, nil
}

func (s *Storage) ClearLeaderboard(ctx context.Context) error {
	s.mu.Lock()
	s.leaderboard = nil
	s.mu.Unlock()

	s.notify(storage.KeyLeaderboard)
	return nil
}

// Change notifications

func (s *Storage) Subscribe(ctx context.Context) (<-chan storage.ChangeEvent, error) {
	ch := make(chan storage.ChangeEvent, 16)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, ch)
		s.subMu.Unlock()
		close(ch)
	}()

	return ch, nil
}

// notify fans a change event out to all subscribers, dropping the event for
// any subscriber whose buffer is full
func (s *Storage) notify(key string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- storage.ChangeEvent{Key: key}:
		default:
		}
	}
}
