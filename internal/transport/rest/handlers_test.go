package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/service"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

const testOrigin = "http://localhost:3000"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameService := service.NewGameService(logger, repository.NewMemoryGameRepository())
	gameUseCase := usecase.NewGameUseCase(logger, gameService, nil)

	return NewRouter(NewHandlers(logger, gameUseCase), nil, []string{testOrigin})
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestHandlers_GameFlow(t *testing.T) {
	router := newTestRouter(t)

	// Given: a game created by p1
	rec := do(t, router, http.MethodPost, "/createGame", `{"playerId":"p1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	gameID := decode[gameIDResponse](t, rec).GameID
	require.NotEmpty(t, gameID)

	// When: p1 is ready with a key
	rec = do(t, router, http.MethodPost, "/ready",
		fmt.Sprintf(`{"gameId":%q,"gameKey":"abc123","board":[[0,1]],"playerId":"p1"}`, gameID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"waiting","gameKey":"abc123"}`, rec.Body.String())

	// And: p2 joins with the key and gets ready
	rec = do(t, router, http.MethodPost, "/joinGame", `{"gameKey":"abc123","playerId":"p2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, gameID, decode[gameIDResponse](t, rec).GameID)

	rec = do(t, router, http.MethodPost, "/ready",
		fmt.Sprintf(`{"gameId":%q,"gameKey":"","board":[[5,5]],"playerId":"p2"}`, gameID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"playing","player1":"p1","player2":"p2"}`, rec.Body.String())

	// Then: the session document shows both boards
	rec = do(t, router, http.MethodGet, "/game/"+gameID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	game := decode[entity.GameSession](t, rec)
	assert.Equal(t, gameID, game.ID)
	assert.Equal(t, []string{"p1", "p2"}, game.Players)
	assert.Equal(t, entity.StatusPlaying, game.Status)
	assert.Equal(t, "abc123", game.GameKey)
	assert.JSONEq(t, `[[0,1]]`, string(game.Boards["p1"]))
	assert.JSONEq(t, `[[5,5]]`, string(game.Boards["p2"]))

	// And: a third player cannot join
	rec = do(t, router, http.MethodPost, "/joinGame", `{"gameKey":"abc123","playerId":"p3"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"game is already full"}`, rec.Body.String())
}

func TestHandlers_Errors(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{name: "Get unknown game", method: http.MethodGet, path: "/game/nope", expected: http.StatusNotFound},
		{name: "Join unknown key", method: http.MethodPost, path: "/joinGame", body: `{"gameKey":"nope","playerId":"p2"}`, expected: http.StatusNotFound},
		{name: "Ready unknown game", method: http.MethodPost, path: "/ready", body: `{"gameId":"nope","gameKey":"k","playerId":"p1"}`, expected: http.StatusNotFound},
		{name: "Create without player", method: http.MethodPost, path: "/createGame", body: `{}`, expected: http.StatusBadRequest},
		{name: "Malformed body", method: http.MethodPost, path: "/createGame", body: `{"playerId":`, expected: http.StatusBadRequest},
		{name: "Wrong method", method: http.MethodGet, path: "/createGame", expected: http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.path, tc.body)

			assert.Equal(t, tc.expected, rec.Code)
			if tc.expected != http.StatusMethodNotAllowed {
				assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
			}
		})
	}
}

func TestHandlers_ReadyByStrangerConflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/createGame", `{"playerId":"p1"}`)
	gameID := decode[gameIDResponse](t, rec).GameID

	// When: someone outside the game submits a board
	rec = do(t, router, http.MethodPost, "/ready",
		fmt.Sprintf(`{"gameId":%q,"gameKey":"k","board":[],"playerId":"stranger"}`, gameID))

	// Then: the state conflict is reported
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{err: fmt.Errorf("wrap: %w", apperror.ErrNotFound), expected: http.StatusNotFound},
		{err: fmt.Errorf("wrap: %w", apperror.ErrSessionFull), expected: http.StatusBadRequest},
		{err: fmt.Errorf("wrap: %w", apperror.ErrInvalidInput), expected: http.StatusBadRequest},
		{err: fmt.Errorf("wrap: %w", apperror.ErrInvalidState), expected: http.StatusConflict},
		{err: fmt.Errorf("wrap: %w", apperror.ErrStore), expected: http.StatusInternalServerError},
		{err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, message := statusFor(tc.err)

			assert.Equal(t, tc.expected, status)
			assert.NotContains(t, message, "wrap")
		})
	}
}

func TestRouter_CORSAndPing(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/createGame", nil)
		req.Header.Set("Origin", testOrigin)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Foreign origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Metrics are exposed", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
