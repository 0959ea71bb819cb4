package storage

import (
	"context"

	"github.com/dicehall/dicehall/internal/model"
)

// Logical keys reported in change events. They mirror the three persisted
// collections: the user table, the session pointer and the leaderboard.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyLeaderboard = "leaderboard"
)

// ChangeEvent signals that a writer mutated one of the persisted
// collections. Consumers re-read on receipt; events carry no payload and
// give no protection against lost updates (last-writer-wins is the
// accepted contract for concurrent writers).
type ChangeEvent struct {
	Key string `json:"key"`
}

// Storage defines the interface for data persistence
type Storage interface {
	// User collection operations. The collection is one ordered unit in
	// registration order; every save is a read-modify-write of the whole
	// collection. SaveUser replaces the record with a matching ID, or
	// appends when the ID is new.
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Session pointer operations. At most one session pointer exists;
	// GetSession returns model.ErrNotLoggedIn when it is absent.
	SetSession(ctx context.Context, session *model.SessionView) error
	GetSession(ctx context.Context) (*model.SessionView, error)
	ClearSession(ctx context.Context) error

	// Leaderboard operations. The entry collection is saved as one unit.
	SaveLeaderboard(ctx context.Context, entries []model.LeaderboardEntry) error
	GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	ClearLeaderboard(ctx context.Context) error

	// Subscribe returns a channel of change events for all keys. The
	// channel closes when ctx is done. Events may echo the subscriber's
	// own writes.
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}
