package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
	"github.com/rocketscienceinc/battleship-backend/internal/service"
)

const publishTimeout = 2 * time.Second

type GameUseCase interface {
	CreateGame(ctx context.Context, playerID string) (string, error)
	Ready(ctx context.Context, req service.ReadyRequest) (*entity.ReadyResult, error)
	JoinGame(ctx context.Context, gameKey, playerID string) (string, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameSession, error)
}

type gameService interface {
	CreateSession(ctx context.Context, playerID string) (*entity.GameSession, error)
	SubmitReady(ctx context.Context, req service.ReadyRequest) (*entity.ReadyResult, *entity.GameSession, error)
	JoinSession(ctx context.Context, gameKey, playerID string) (*entity.GameSession, error)
	GetSession(ctx context.Context, sessionID string) (*entity.GameSession, error)
}

type broadcaster interface {
	Publish(ctx context.Context, event *entity.GameEvent) error
}

type gameUseCase struct {
	logger      *slog.Logger
	gameService gameService
	broadcaster broadcaster
}

func NewGameUseCase(logger *slog.Logger, gameService gameService, broadcaster broadcaster) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game_usecase"),
		gameService: gameService,
		broadcaster: broadcaster,
	}
}

func (that *gameUseCase) CreateGame(ctx context.Context, playerID string) (string, error) {
	session, err := that.gameService.CreateSession(ctx, playerID)
	metrics.GameOperations.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("could not create game: %w", err)
	}

	that.publish(ctx, entity.NewGameEvent(entity.EventCreated, session))

	return session.ID, nil
}

func (that *gameUseCase) Ready(ctx context.Context, req service.ReadyRequest) (*entity.ReadyResult, error) {
	result, session, err := that.gameService.SubmitReady(ctx, req)
	metrics.GameOperations.WithLabelValues("ready", metrics.Result(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("failed to submit ready: %w", err)
	}

	action := entity.EventReady
	if result.Started {
		action = entity.EventStarted
		metrics.GamesStarted.Inc()
	}

	that.publish(ctx, entity.NewGameEvent(action, session))

	return result, nil
}

func (that *gameUseCase) JoinGame(ctx context.Context, gameKey, playerID string) (string, error) {
	session, err := that.gameService.JoinSession(ctx, gameKey, playerID)
	metrics.GameOperations.WithLabelValues("join", metrics.Result(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("failed to join game: %w", err)
	}

	that.publish(ctx, entity.NewGameEvent(entity.EventJoined, session))

	return session.ID, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.GameSession, error) {
	session, err := that.gameService.GetSession(ctx, gameID)
	metrics.GameOperations.WithLabelValues("get", metrics.Result(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return session, nil
}

// publish - best effort, a failed notification never fails the operation.
func (that *gameUseCase) publish(ctx context.Context, event *entity.GameEvent) {
	if that.broadcaster == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := that.broadcaster.Publish(ctx, event)
	metrics.EventsPublished.WithLabelValues(event.Action, metrics.Result(err)).Inc()
	if err != nil && !errors.Is(err, context.Canceled) {
		that.logger.Error("failed to publish game event",
			"method", "publish", "action", event.Action, "gameID", event.GameID, "error", err)
	}
}
