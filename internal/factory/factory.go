package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dicehall/dicehall/internal/dependencies/clock"
	"github.com/dicehall/dicehall/internal/dependencies/random"
	"github.com/dicehall/dicehall/internal/services/account"
	"github.com/dicehall/dicehall/internal/services/game"
	"github.com/dicehall/dicehall/internal/services/leaderboard"
	"github.com/dicehall/dicehall/internal/sse"
	"github.com/dicehall/dicehall/internal/storage"
	"github.com/dicehall/dicehall/internal/storage/memory"
	redisstorage "github.com/dicehall/dicehall/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AccountService     *account.Service
	LeaderboardService *leaderboard.Service
	GameController     *game.Controller

	// Change notification fan-out. The caller runs Hub.Run and
	// Broadcaster.Run.
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AccountConfig holds configuration for the account service (optional)
	// If zero value, defaults to account.DefaultConfig()
	AccountConfig account.Config
	// GameConfig holds configuration for the game controller (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	accountCfg := cfg.AccountConfig
	if accountCfg.Hasher == nil {
		accountCfg = account.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg.Bet == 0 {
		gameCfg = game.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, accountCfg, gameCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, accountCfg account.Config, gameCfg game.Config, logger *slog.Logger) *App {
	// Create services
	accountService := account.New(store, clk, rnd, accountCfg, logger)
	leaderboardService := leaderboard.New(store, logger)
	gameController := game.NewController(accountService, leaderboardService, rnd, gameCfg, logger)
	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(store, hub, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		AccountService:     accountService,
		LeaderboardService: leaderboardService,
		GameController:     gameController,
		Hub:                hub,
		Broadcaster:        broadcaster,
	}
}
