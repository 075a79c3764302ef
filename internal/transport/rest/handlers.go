package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/service"
)

const maxBodySize = 1 << 20

type Handlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	Ready(w http.ResponseWriter, r *http.Request)
	JoinGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
}

type gameUseCase interface {
	CreateGame(ctx context.Context, playerID string) (string, error)
	Ready(ctx context.Context, req service.ReadyRequest) (*entity.ReadyResult, error)
	JoinGame(ctx context.Context, gameKey, playerID string) (string, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameSession, error)
}

type createGameRequest struct {
	PlayerID string `json:"playerId"`
}

type readyRequest struct {
	GameID   string          `json:"gameId"`
	GameKey  string          `json:"gameKey"`
	Board    json.RawMessage `json:"board"`
	PlayerID string          `json:"playerId"`
}

type joinGameRequest struct {
	GameKey  string `json:"gameKey"`
	PlayerID string `json:"playerId"`
}

type gameIDResponse struct {
	GameID string `json:"gameId"`
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func NewHandlers(logger *slog.Logger, gameUseCase gameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest_handlers"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateGame")

	var req createGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	gameID, err := that.gameUseCase.CreateGame(r.Context(), req.PlayerID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, gameIDResponse{GameID: gameID})
}

func (that *handlers) Ready(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Ready")

	var req readyRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	result, err := that.gameUseCase.Ready(r.Context(), service.ReadyRequest{
		SessionID: req.GameID,
		GameKey:   req.GameKey,
		Board:     req.Board,
		PlayerID:  req.PlayerID,
	})
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, result)
}

func (that *handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "JoinGame")

	var req joinGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, log, err)
		return
	}

	gameID, err := that.gameUseCase.JoinGame(r.Context(), req.GameKey, req.PlayerID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, gameIDResponse{GameID: gameID})
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "GetGame")

	game, err := that.gameUseCase.GetGame(r.Context(), mux.Vars(r)["gameId"])
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, game)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed json body: %w", apperror.ErrInvalidInput, err)
	}

	return nil
}
