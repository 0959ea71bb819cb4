package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dicehall/dicehall/internal/api/request"
	"github.com/dicehall/dicehall/internal/api/response"
	"github.com/dicehall/dicehall/internal/services/account"
)

// AccountHandler handles user registration and login endpoints
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *account.Service) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
	}
}

// Register handles POST /api/v1/players/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	user, err := h.accounts.Register(r.Context(), req.FirstName, req.LastName, req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Login handles POST /api/v1/players/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// GetMe handles GET /api/v1/players/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session, err := h.accounts.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}
