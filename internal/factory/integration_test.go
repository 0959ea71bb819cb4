package factory

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/dicehall/dicehall/internal/model"
	redisstorage "github.com/dicehall/dicehall/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete flow from registration to the leaderboard
func (s *IntegrationSuite) TestCompletePlaySession() {
	s.app.MockRandom.QueueString("alice01")

	// Step 1: Register and log in
	user, err := s.app.AccountService.Register(s.ctx, "Alice", "Smith", "alice", "Ab1!cd")
	s.Require().NoError(err)
	s.Equal(model.DefaultCash, user.Cash)

	session, err := s.app.AccountService.Login(s.ctx, "alice", "Ab1!cd")
	s.Require().NoError(err)
	s.Equal(user.ID, session.ID)

	// Step 2: Win a come-out natural, then lose on craps
	s.app.MockRandom.QueueDice(3, 4, 1, 2)

	report, err := s.app.GameController.Roll(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ResultWin, report.Outcome.Result)
	s.Equal(150, report.Hand.Cash)

	report, err = s.app.GameController.Roll(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ResultLoss, report.Outcome.Result)
	s.Equal(100, report.Hand.Cash)

	// Step 3: The persisted record tracks the resolved rolls
	stored, err := s.app.Storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(100, stored.Cash)
	s.Equal(5, stored.Score)
	s.Equal(5, stored.TopScore)

	// Step 4: Exit writes the session score to the leaderboard
	exit, err := s.app.GameController.Exit(s.ctx)
	s.Require().NoError(err)
	s.Equal("alice", exit.Name)
	s.Equal(5, exit.Score)

	ranked, err := s.app.LeaderboardService.RankedView(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(ranked, 1)
	s.Equal(model.RankedEntry{Rank: 1, Username: "alice", Score: 5}, ranked[0])
}

// Test: Logging in again resets the session score but keeps the best
func (s *IntegrationSuite) TestRelogKeepsTopScore() {
	s.app.MockRandom.QueueString("bob001")

	_, err := s.app.AccountService.Register(s.ctx, "Bob", "Jones", "bob", "Ab1!cd")
	s.Require().NoError(err)
	session, err := s.app.AccountService.Login(s.ctx, "bob", "Ab1!cd")
	s.Require().NoError(err)

	s.app.MockRandom.QueueDice(3, 4)
	_, err = s.app.GameController.Roll(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.GameController.Exit(s.ctx)
	s.Require().NoError(err)

	// Relog
	session2, err := s.app.AccountService.Login(s.ctx, "bob", "Ab1!cd")
	s.Require().NoError(err)
	s.Equal(session.ID, session2.ID)

	stored, err := s.app.Storage.GetUser(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(0, stored.Score)
	s.Equal(5, stored.TopScore)
}

func TestFactoryDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if app.Storage == nil {
		t.Fatal("Storage is nil")
	}
}

func TestFactoryRedisStorage(t *testing.T) {
	mini := miniredis.RunT(t)

	app, err := New(Config{
		StorageType: StorageTypeRedis,
		RedisConfig: &redisstorage.Config{URL: "redis://" + mini.Addr()},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	user := &model.User{ID: "u_1", Username: "alice", Password: "Ab1!cd", Cash: model.DefaultCash}
	if err := app.Storage.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	got, err := app.Storage.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("GetUserByUsername returned %+v", got)
	}
}

func TestFactoryRejectsUnknownStorageType(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	if err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}
