package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/dicehall/dicehall/internal/model"
	"github.com/dicehall/dicehall/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:       "u-1",
		Username: "Alice",
		Password: "Ab1!cd",
		Cash:     100,
		Created:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.Password, retrieved.Password)
	s.Equal(100, retrieved.Cash)
	s.True(user.Created.Equal(retrieved.Created))
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSaveUserReplacesByID() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-1", Username: "Alice", Cash: 100})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-1", Username: "Alice", Cash: 50})

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal(50, users[0].Cash)
}

func (s *StorageSuite) TestListUsersPreservesRegistrationOrder() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-1", Username: "Zed"})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-2", Username: "Alice"})

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(model.UserID("u-1"), users[0].ID)
	s.Equal(model.UserID("u-2"), users[1].ID)
}

func (s *StorageSuite) TestGetUserByUsernameIsCaseAndWhitespaceInsensitive() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u-1", Username: "Mary Jane"})

	retrieved, err := s.storage.GetUserByUsername(s.ctx, " MARY  jane ")
	s.Require().NoError(err)
	s.Equal(model.UserID("u-1"), retrieved.ID)
}

func (s *StorageSuite) TestMalformedUsersBlobReadsAsEmpty() {
	s.mini.Set(usersKey(), "not json at all")

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *StorageSuite) TestMissingNumericFieldsGetDefaults() {
	// A record written by another client that never set cash or topScore
	s.mini.Set(usersKey(), `[{"id":"u-1","username":"Alice","password":"Ab1!cd","created":"2024-01-01T12:00:00.000Z"}]`)

	user, err := s.storage.GetUser(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal(model.DefaultCash, user.Cash)
	s.Equal(0, user.Score)
	s.Equal(0, user.TopScore)
}

func (s *StorageSuite) TestMalformedNumericFieldsGetDefaults() {
	s.mini.Set(usersKey(), `[{"id":"u-1","username":"Alice","cash":"garbage","score":"12","topScore":{}}]`)

	user, err := s.storage.GetUser(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal(model.DefaultCash, user.Cash)
	s.Equal(12, user.Score, "numeric strings are accepted")
	s.Equal(0, user.TopScore)
}

// Session tests

func (s *StorageSuite) TestSessionRoundTrip() {
	session := &model.SessionView{
		ID:         "u-1",
		Username:   "Alice",
		FirstName:  "Alice",
		LoggedInAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SetSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx)
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetSessionAbsent() {
	_, err := s.storage.GetSession(s.ctx)
	s.ErrorIs(err, model.ErrNotLoggedIn)
}

func (s *StorageSuite) TestMalformedSessionReadsAsAbsent() {
	s.mini.Set(sessionKey(), "{{{")

	_, err := s.storage.GetSession(s.ctx)
	s.ErrorIs(err, model.ErrNotLoggedIn)
}

func (s *StorageSuite) TestClearSession() {
	_ = s.storage.SetSession(s.ctx, &model.SessionView{ID: "u-1"})

	err := s.storage.ClearSession(s.ctx)
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx)
	s.ErrorIs(err, model.ErrNotLoggedIn)
}

// Leaderboard tests

func (s *StorageSuite) TestLeaderboardRoundTrip() {
	entries := []model.LeaderboardEntry{
		{Username: "Alice", Score: 10},
		{Username: "Bob", Score: 5},
	}

	err := s.storage.SaveLeaderboard(s.ctx, entries)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Equal(entries, retrieved)
}

func (s *StorageSuite) TestMalformedLeaderboardReadsAsEmpty() {
	s.mini.Set(leaderboardKey(), "[not json")

	entries, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *StorageSuite) TestClearLeaderboard() {
	_ = s.storage.SaveLeaderboard(s.ctx, []model.LeaderboardEntry{{Username: "Alice", Score: 10}})

	err := s.storage.ClearLeaderboard(s.ctx)
	s.Require().NoError(err)

	entries, err := s.storage.GetLeaderboard(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Change notification tests

func (s *StorageSuite) TestSubscribeReceivesChangeEvents() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	events, err := s.storage.Subscribe(ctx)
	s.Require().NoError(err)

	_ = s.storage.SaveLeaderboard(s.ctx, []model.LeaderboardEntry{{Username: "Alice", Score: 10}})

	select {
	case ev := <-events:
		s.Equal(storage.KeyLeaderboard, ev.Key)
	case <-time.After(time.Second):
		s.Fail("timed out waiting for change event")
	}
}
