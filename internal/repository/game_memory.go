package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type memoryGame struct {
	mu       sync.Mutex
	sessions map[string]*entity.GameSession
	gameKeys map[string]string
}

// NewMemoryGameRepository - process local sessions, for development and tests.
func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		sessions: make(map[string]*entity.GameSession),
		gameKeys: make(map[string]string),
	}
}

func (that *memoryGame) Create(_ context.Context, session *entity.GameSession) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[session.ID]; ok {
		return fmt.Errorf("%w: game id %s", apperror.ErrAlreadyExists, session.ID)
	}

	that.sessions[session.ID] = session.Clone()
	if session.GameKey != "" {
		that.gameKeys[session.GameKey] = session.ID
	}

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.GameSession, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id)
	}

	return session.Clone(), nil
}

func (that *memoryGame) FindIDByGameKey(_ context.Context, gameKey string) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id, ok := that.gameKeys[gameKey]
	if !ok {
		return "", fmt.Errorf("%w: game key %s", apperror.ErrNotFound, gameKey)
	}

	return id, nil
}

func (that *memoryGame) Update(_ context.Context, id string, mutate MutateFunc) (*entity.GameSession, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id)
	}

	session := stored.Clone()
	if err := mutate(session); err != nil {
		return nil, err
	}

	if session.GameKey != stored.GameKey {
		if stored.GameKey != "" && that.gameKeys[stored.GameKey] == id {
			delete(that.gameKeys, stored.GameKey)
		}

		if session.GameKey != "" {
			that.gameKeys[session.GameKey] = session.ID
		}
	}

	that.sessions[id] = session

	return session.Clone(), nil
}

func (that *memoryGame) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	deleted := 0
	for id, session := range that.sessions {
		if !session.CreatedAt.Before(cutoff) {
			continue
		}

		delete(that.sessions, id)
		if that.gameKeys[session.GameKey] == id {
			delete(that.gameKeys, session.GameKey)
		}
		deleted++
	}

	return deleted, nil
}
