package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicehall/dicehall/internal/api"
	"github.com/dicehall/dicehall/internal/api/apierr"
	"github.com/dicehall/dicehall/internal/api/response"
	"github.com/dicehall/dicehall/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()
	go app.Hub.Run()
	t.Cleanup(app.Hub.Close)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AccountService:     app.AccountService,
		GameController:     app.GameController,
		LeaderboardService: app.LeaderboardService,
		Hub:                app.Hub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) registerAndLogin(t *testing.T, username string) {
	t.Helper()
	ts.app.MockRandom.QueueString(username)
	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{
		"username": username,
		"password": "Ab1!cd",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": username,
		"password": "Ab1!cd",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockRandom.QueueString("abc123")

	// Register
	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{
		"first_name": "Alice",
		"last_name":  "Smith",
		"username":   "alice",
		"password":   "Ab1!cd",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.Equal(t, "alice", registerResp.Username)
	assert.Equal(t, 100, registerResp.Cash)
	assert.NotContains(t, rr.Body.String(), "Ab1!cd")

	// Login
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "alice",
		"password": "Ab1!cd",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.ID, loginResp.ID)
	assert.Equal(t, "alice", loginResp.DisplayName)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{
		"username": "ALICE",
		"password": "Ab1!cd",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeDuplicateUsername, errorCode(t, rr))
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/register", map[string]string{
		"username": "alice",
		"password": "abc123",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPassword, errorCode(t, rr))
}

func TestLoginErrorsAreDistinct(t *testing.T) {
	ts := newTestServer(t)

	// Empty store
	rr := ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "alice",
		"password": "Ab1!cd",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNoUsersRegistered, errorCode(t, rr))

	ts.registerAndLogin(t, "alice")

	// Unknown user
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "bob",
		"password": "Ab1!cd",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeUserNotFound, errorCode(t, rr))

	// Wrong password
	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{
		"username": "alice",
		"password": "Xy9?zw",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeWrongPassword, errorCode(t, rr))
}

func TestGetMeRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeNotLoggedIn, errorCode(t, rr))

	ts.registerAndLogin(t, "alice")

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
}

func TestRollAndGameState(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")
	ts.app.MockRandom.QueueDice(3, 4)

	rr := ts.request(http.MethodPost, "/api/v1/game/roll", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var roll response.Roll
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &roll))
	assert.Equal(t, [2]int{3, 4}, roll.Dice)
	assert.Equal(t, 7, roll.Sum)
	assert.Equal(t, "Natural (7 or 11).", roll.Outcome.Reason)
	assert.Equal(t, 150, roll.Hand.Cash)

	rr = ts.request(http.MethodGet, "/api/v1/game", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cash":150`)
}

func TestRollRequiresLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/roll", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeNotLoggedIn, errorCode(t, rr))
}

func TestRollAfterBustConflicts(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")
	// Two craps resolutions drain the starting bankroll.
	ts.app.MockRandom.QueueDice(1, 1, 1, 2)

	for i := 0; i < 2; i++ {
		rr := ts.request(http.MethodPost, "/api/v1/game/roll", nil)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodPost, "/api/v1/game/roll", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameOver, errorCode(t, rr))
}

func TestExitWritesLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")
	ts.app.MockRandom.QueueDice(3, 4)

	rr := ts.request(http.MethodPost, "/api/v1/game/roll", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/exit", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var exit response.Exit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &exit))
	assert.Equal(t, "alice", exit.Name)
	assert.Equal(t, 5, exit.Score)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "alice", board.Entries[0].Username)
}

func TestExitWithoutHandConflicts(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/game/exit", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNoActiveHand, errorCode(t, rr))
}

func TestClearLeaderboard(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin(t, "alice")
	ts.app.MockRandom.QueueDice(3, 4)

	rr := ts.request(http.MethodPost, "/api/v1/game/roll", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/game/exit", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/leaderboard", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/leaderboard", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	assert.Empty(t, board.Entries)
}

func TestInvalidBodyIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players/register", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}
