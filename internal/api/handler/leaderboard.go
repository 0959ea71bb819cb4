package handler

import (
	"net/http"

	"github.com/dicehall/dicehall/internal/api/response"
	"github.com/dicehall/dicehall/internal/services/leaderboard"
	"github.com/dicehall/dicehall/internal/sse"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboard *leaderboard.Service
	hub         *sse.Hub
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service, hub *sse.Hub) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: service,
		hub:         hub,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.leaderboard.RankedView(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Leaderboard{Entries: ranked})
}

// Clear handles DELETE /api/v1/leaderboard
func (h *LeaderboardHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.leaderboard.Clear(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/leaderboard/events
func (h *LeaderboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	sse.ServeSSE(w, r, h.hub)
}
