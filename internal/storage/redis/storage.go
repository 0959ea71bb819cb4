package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each collection lives under a single key as one JSON blob, so every
// mutation is a full read-modify-write of that collection. Two instances
// writing concurrently resolve last-writer-wins; change events published on
// the events channel let the loser notice and re-read, nothing more.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	users, err := s.readUsers(ctx)
	if err != nil {
		return err
	}

	copied := *user
	replaced := false
	for i, existing := range users {
		if existing.ID == copied.ID {
			users[i] = &copied
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, &copied)
	}

	return s.writeBlob(ctx, usersKey(), storage.KeyUsers, users)
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	key := model.FoldName(username)
	for _, u := range users {
		if model.FoldName(u.Username) == key {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.readUsers(ctx)
}

// readUsers loads the whole user collection, treating a missing or
// malformed blob as an empty collection
func (s *Storage) readUsers(ctx context.Context) ([]*model.User, error) {
	data, err := s.client.Get(ctx, usersKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUsers(data), nil
}

// Session operations

func (s *Storage) SetSession(ctx context.Context, session *model.SessionView) error {
	return s.writeBlob(ctx, sessionKey(), storage.KeyCurrentUser, session)
}

func (s *Storage) GetSession(ctx context.Context) (*model.SessionView, error) {
	data, err := s.client.Get(ctx, sessionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotLoggedIn
		}
		return nil, err
	}

	var session model.SessionView
	if err := json.Unmarshal(data, &session); err != nil {
		// Malformed pointer reads as absent
		return nil, model.ErrNotLoggedIn
	}
	return &session, nil
}

func (s *Storage) ClearSession(ctx context.Context) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey())
	pipe.Publish(ctx, eventsChannel(), storage.KeyCurrentUser)
	_, err := pipe.Exec(ctx)
	return err
}

// Leaderboard operations

func (s *Storage) SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error {
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return s.writeBlob(ctx, leaderboardKey(), storage.KeyLeaderboard, entries)
}

func (s *Storage) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	data, err := s.client.Get(ctx, leaderboardKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decodeLeaderboard(data), nil
}

func (s *Storage) ClearLeaderboard(ctx context.Context) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, leaderboardKey())
	pipe.Publish(ctx, eventsChannel(), storage.KeyLeaderboard)
	_, err := pipe.Exec(ctx)
	return err
}

// writeBlob marshals a collection, stores it under its key and publishes a
// change event in one pipeline
func (s *Storage) writeBlob(ctx context.Context, key, eventKey string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Publish(ctx, eventsChannel(), eventKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Change notifications

func (s *Storage) Subscribe(ctx context.Context) (<-chan storage.ChangeEvent, error) {
	sub := s.client.Subscribe(ctx, eventsChannel())

	// Confirm the subscription is live before returning
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	ch := make(chan storage.ChangeEvent, 16)
	go func() {
		defer close(ch)
		defer func() { _ = sub.Close() }()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case ch <- storage.ChangeEvent{Key: msg.Payload}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
