package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
)

const maxCreateAttempts = 5

type GameService interface {
	CreateSession(ctx context.Context, playerID string) (*entity.GameSession, error)
	SubmitReady(ctx context.Context, req ReadyRequest) (*entity.ReadyResult, *entity.GameSession, error)
	JoinSession(ctx context.Context, gameKey, playerID string) (*entity.GameSession, error)
	GetSession(ctx context.Context, sessionID string) (*entity.GameSession, error)
	ReapExpired(ctx context.Context, olderThan time.Duration) (int, error)
}

type ReadyRequest struct {
	SessionID string
	GameKey   string
	Board     json.RawMessage
	PlayerID  string
}

type gameRepo interface {
	Create(ctx context.Context, session *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	FindIDByGameKey(ctx context.Context, gameKey string) (string, error)
	Update(ctx context.Context, id string, mutate repository.MutateFunc) (*entity.GameSession, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo

	now        func() time.Time
	newID      func() (string, error)
	newGameKey func() (string, error)
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) GameService {
	return &gameService{
		logger:     logger.With("component", "game_service"),
		gameRepo:   gameRepo,
		now:        time.Now,
		newID:      pkg.GenerateSessionID,
		newGameKey: pkg.GenerateGameKey,
	}
}

// CreateSession - stores a new waiting session owned by the player. Colliding ids are regenerated.
func (that *gameService) CreateSession(ctx context.Context, playerID string) (*entity.GameSession, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: playerId is required", apperror.ErrInvalidInput)
	}

	log := that.logger.With("method", "CreateSession", "player", playerID)

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		sessionID, err := that.newID()
		if err != nil {
			return nil, fmt.Errorf("error generating game ID: %w", err)
		}

		session := entity.NewGameSession(sessionID, playerID, that.now())

		err = that.gameRepo.Create(ctx, session)
		if errors.Is(err, apperror.ErrAlreadyExists) {
			log.Warn("game id collision, regenerating", "gameID", sessionID, "attempt", attempt)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		log.Info("game created", "gameID", sessionID)

		return session, nil
	}

	return nil, fmt.Errorf("%w: no free game id after %d attempts", apperror.ErrStore, maxCreateAttempts)
}

// SubmitReady - records the player's board and advances the session in one atomic update.
func (that *gameService) SubmitReady(ctx context.Context, req ReadyRequest) (*entity.ReadyResult, *entity.GameSession, error) {
	switch {
	case req.SessionID == "":
		return nil, nil, fmt.Errorf("%w: gameId is required", apperror.ErrInvalidInput)
	case req.PlayerID == "":
		return nil, nil, fmt.Errorf("%w: playerId is required", apperror.ErrInvalidInput)
	}

	// only the first submission stores the key, an empty one is replaced with a generated code
	gameKey := req.GameKey
	if gameKey == "" {
		var err error
		if gameKey, err = that.newGameKey(); err != nil {
			return nil, nil, fmt.Errorf("error generating game key: %w", err)
		}
	}

	var result *entity.ReadyResult

	session, err := that.gameRepo.Update(ctx, req.SessionID, func(session *entity.GameSession) error {
		var err error
		result, err = session.Ready(req.PlayerID, gameKey, req.Board)

		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to submit ready: %w", err)
	}

	that.logger.Info("player ready",
		"method", "SubmitReady", "gameID", session.ID, "player", req.PlayerID, "status", result.Status)

	return result, session, nil
}

// JoinSession - seats the player in the session behind the game key if a seat is free.
func (that *gameService) JoinSession(ctx context.Context, gameKey, playerID string) (*entity.GameSession, error) {
	switch {
	case gameKey == "":
		return nil, fmt.Errorf("%w: gameKey is required", apperror.ErrInvalidInput)
	case playerID == "":
		return nil, fmt.Errorf("%w: playerId is required", apperror.ErrInvalidInput)
	}

	sessionID, err := that.gameRepo.FindIDByGameKey(ctx, gameKey)
	if err != nil {
		return nil, fmt.Errorf("failed to find game by key: %w", err)
	}

	session, err := that.gameRepo.Update(ctx, sessionID, func(session *entity.GameSession) error {
		return session.Join(playerID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	that.logger.Info("player joined", "method", "JoinSession", "gameID", session.ID, "player", playerID)

	return session, nil
}

func (that *gameService) GetSession(ctx context.Context, sessionID string) (*entity.GameSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: gameId is required", apperror.ErrInvalidInput)
	}

	session, err := that.gameRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return session, nil
}

// ReapExpired - deletes sessions created more than olderThan ago.
func (that *gameService) ReapExpired(ctx context.Context, olderThan time.Duration) (int, error) {
	deleted, err := that.gameRepo.DeleteCreatedBefore(ctx, that.now().Add(-olderThan))
	if err != nil {
		return deleted, fmt.Errorf("failed to delete expired games: %w", err)
	}

	if deleted > 0 {
		that.logger.Info("expired games deleted", "method", "ReapExpired", "count", deleted)
	}

	return deleted, nil
}
