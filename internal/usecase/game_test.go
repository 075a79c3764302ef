package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/service"
	mockedUseCase "github.com/rocketscienceinc/battleship-backend/mocks/usecase"
)

var (
	errHubDown = errors.New("hub down")
	testBoard  = json.RawMessage(`{"ships":[]}`)
)

func newTestUseCase(t *testing.T) (GameUseCase, *mockedUseCase.Mockbroadcaster) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockBroadcaster := mockedUseCase.NewMockbroadcaster(t)
	gameService := service.NewGameService(logger, repository.NewMemoryGameRepository())

	return NewGameUseCase(logger, gameService, mockBroadcaster), mockBroadcaster
}

func expectEvent(b *mockedUseCase.Mockbroadcaster, action string, check func(*entity.GameEvent) bool) {
	b.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(e *entity.GameEvent) bool {
			return e.Action == action && (check == nil || check(e))
		})).
		Return(nil).
		Once()
}

func TestGameUseCase_FullFlow(t *testing.T) {
	ctx := context.Background()
	useCase, mockBroadcaster := newTestUseCase(t)

	// Given: every state change is expected to be published once
	expectEvent(mockBroadcaster, entity.EventCreated, func(e *entity.GameEvent) bool {
		return e.Game != nil && e.Game.ID == e.GameID && assert.ObjectsAreEqual([]string{"p1"}, e.Game.Players)
	})
	expectEvent(mockBroadcaster, entity.EventReady, func(e *entity.GameEvent) bool {
		return e.Game != nil && e.Game.GameKey == "abc123"
	})
	expectEvent(mockBroadcaster, entity.EventJoined, func(e *entity.GameEvent) bool {
		return e.Game != nil && len(e.Game.Players) == 2
	})
	expectEvent(mockBroadcaster, entity.EventStarted, func(e *entity.GameEvent) bool {
		return e.Game != nil && e.Game.IsPlaying()
	})

	// When: two players go through create, ready, join, ready
	gameID, err := useCase.CreateGame(ctx, "p1")
	require.NoError(t, err)

	result, err := useCase.Ready(ctx, service.ReadyRequest{SessionID: gameID, GameKey: "abc123", Board: testBoard, PlayerID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, &entity.ReadyResult{Status: entity.StatusWaiting, GameKey: "abc123"}, result)

	joinedID, err := useCase.JoinGame(ctx, "abc123", "p2")
	require.NoError(t, err)
	assert.Equal(t, gameID, joinedID)

	result, err = useCase.Ready(ctx, service.ReadyRequest{SessionID: gameID, Board: testBoard, PlayerID: "p2"})
	require.NoError(t, err)

	// Then: the game is playing
	assert.Equal(t, &entity.ReadyResult{Status: entity.StatusPlaying, Player1: "p1", Player2: "p2", Started: true}, result)

	game, err := useCase.GetGame(ctx, gameID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPlaying, game.Status)
}

func TestGameUseCase_ReadyAfterStartIsNotAnotherStart(t *testing.T) {
	ctx := context.Background()
	useCase, mockBroadcaster := newTestUseCase(t)

	// Given: a game that already started
	expectEvent(mockBroadcaster, entity.EventCreated, nil)
	expectEvent(mockBroadcaster, entity.EventJoined, nil)
	expectEvent(mockBroadcaster, entity.EventReady, nil)
	expectEvent(mockBroadcaster, entity.EventStarted, nil)

	gameID, err := useCase.CreateGame(ctx, "p1")
	require.NoError(t, err)
	_, err = useCase.Ready(ctx, service.ReadyRequest{SessionID: gameID, GameKey: "key1", Board: testBoard, PlayerID: "p1"})
	require.NoError(t, err)
	_, err = useCase.JoinGame(ctx, "key1", "p2")
	require.NoError(t, err)
	_, err = useCase.Ready(ctx, service.ReadyRequest{SessionID: gameID, Board: testBoard, PlayerID: "p2"})
	require.NoError(t, err)

	// When: a player resubmits a board
	expectEvent(mockBroadcaster, entity.EventReady, func(e *entity.GameEvent) bool {
		return e.Game != nil && e.Game.IsPlaying()
	})

	result, err := useCase.Ready(ctx, service.ReadyRequest{SessionID: gameID, Board: testBoard, PlayerID: "p1"})

	// Then: the game keeps playing and game:started is not published again
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPlaying, result.Status)
	assert.False(t, result.Started)
	mockBroadcaster.AssertNumberOfCalls(t, "Publish", 5)
}

func TestGameUseCase_PublishFailureDoesNotFailTheOperation(t *testing.T) {
	ctx := context.Background()
	useCase, mockBroadcaster := newTestUseCase(t)

	// Given: a broadcaster that fails
	mockBroadcaster.EXPECT().
		Publish(mock.Anything, mock.AnythingOfType("*entity.GameEvent")).
		Return(errHubDown).
		Once()

	// When: a game is created
	gameID, err := useCase.CreateGame(ctx, "p1")

	// Then: the game still exists
	require.NoError(t, err)
	assert.NotEmpty(t, gameID)
}

func TestGameUseCase_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown game key is not found and nothing is published", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		_, err := useCase.JoinGame(ctx, "missing", "p2")

		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Unknown game id is not found", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		_, err := useCase.GetGame(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Ready on a missing game is not found", func(t *testing.T) {
		useCase, _ := newTestUseCase(t)

		_, err := useCase.Ready(ctx, service.ReadyRequest{SessionID: "missing", GameKey: "k", PlayerID: "p1"})

		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestGameUseCase_WithoutBroadcaster(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	useCase := NewGameUseCase(logger, service.NewGameService(logger, repository.NewMemoryGameRepository()), nil)

	gameID, err := useCase.CreateGame(context.Background(), "p1")

	require.NoError(t, err)
	assert.NotEmpty(t, gameID)
}
