package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dicehall/dicehall/internal/api/handler"
	"github.com/dicehall/dicehall/internal/api/middleware"
	"github.com/dicehall/dicehall/internal/services/account"
	"github.com/dicehall/dicehall/internal/services/game"
	"github.com/dicehall/dicehall/internal/services/leaderboard"
	"github.com/dicehall/dicehall/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AccountService     *account.Service
	GameController     *game.Controller
	LeaderboardService *leaderboard.Service
	Hub                *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AccountService)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Hub)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes
	api.HandleFunc("/players/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", accountHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/players/me", accountHandler.GetMe).Methods(http.MethodGet)

	// Game routes (the session pointer in storage decides who is playing)
	api.HandleFunc("/game/roll", gameHandler.Roll).Methods(http.MethodPost)
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/exit", gameHandler.Exit).Methods(http.MethodPost)

	// Leaderboard routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler.Clear).Methods(http.MethodDelete)
	api.HandleFunc("/leaderboard/events", leaderboardHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
