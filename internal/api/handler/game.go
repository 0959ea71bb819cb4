package handler

import (
	"net/http"

	"github.com/dicehall/dicehall/internal/api/response"
	"github.com/dicehall/dicehall/internal/services/game"
)

// GameHandler handles play session endpoints
type GameHandler struct {
	game *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller) *GameHandler {
	return &GameHandler{
		game: controller,
	}
}

// Roll handles POST /api/v1/game/roll
func (h *GameHandler) Roll(w http.ResponseWriter, r *http.Request) {
	report, err := h.game.Roll(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RollFromReport(report))
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.game.State(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, state)
}

// Exit handles POST /api/v1/game/exit
func (h *GameHandler) Exit(w http.ResponseWriter, r *http.Request) {
	report, err := h.game.Exit(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ExitFromReport(report))
}
