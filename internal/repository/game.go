package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	sessionKeyPrefix = "session:"
	gameKeyPrefix    = "gamekey:"

	maxUpdateAttempts = 16
)

// MutateFunc - changes a session inside an atomic update. Returning an error aborts the update.
type MutateFunc func(session *entity.GameSession) error

type GameRepository interface {
	Create(ctx context.Context, session *entity.GameSession) error
	GetByID(ctx context.Context, id string) (*entity.GameSession, error)
	FindIDByGameKey(ctx context.Context, gameKey string) (string, error)
	Update(ctx context.Context, id string, mutate MutateFunc) (*entity.GameSession, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository - Redis backed sessions. A positive ttl makes Redis expire them.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) Create(ctx context.Context, session *entity.GameSession) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, sessionKeyPrefix+session.ID, sessionJSON, that.ttl).Result()
	if err != nil {
		return storeError(err, "failed to set game")
	}

	if !created {
		return fmt.Errorf("%w: game id %s", apperror.ErrAlreadyExists, session.ID)
	}

	if session.GameKey != "" {
		if err = that.client.Set(ctx, gameKeyPrefix+session.GameKey, session.ID, that.ttl).Err(); err != nil {
			return storeError(err, "failed to index game key")
		}
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.GameSession, error) {
	response, err := that.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id)
	}

	if err != nil {
		return nil, storeError(err, "failed to get game by id")
	}

	return decodeSession(response)
}

func (that *dbGame) FindIDByGameKey(ctx context.Context, gameKey string) (string, error) {
	id, err := that.client.Get(ctx, gameKeyPrefix+gameKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: game key %s", apperror.ErrNotFound, gameKey)
	}

	if err != nil {
		return "", storeError(err, "failed to get game by key")
	}

	return id, nil
}

// Update - optimistic transaction: the write is committed only if the session key was not
// changed between the read and EXEC, otherwise the mutation is replayed on the fresh value.
func (that *dbGame) Update(ctx context.Context, id string, mutate MutateFunc) (*entity.GameSession, error) {
	key := sessionKeyPrefix + id

	var updated *entity.GameSession

	txf := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return abort(fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id))
		}

		if err != nil {
			return err
		}

		session, err := decodeSession(response)
		if err != nil {
			return abort(err)
		}

		previousGameKey := session.GameKey

		if err = mutate(session); err != nil {
			return abort(err)
		}

		sessionJSON, err := json.Marshal(session)
		if err != nil {
			return abort(fmt.Errorf("could not marshal game: %w", err))
		}

		keyChanged := session.GameKey != previousGameKey

		// the old index entry is dropped only while it still points at this session
		dropPrevious := false
		if keyChanged && previousGameKey != "" {
			previousIndex := gameKeyPrefix + previousGameKey
			if err = tx.Watch(ctx, previousIndex).Err(); err != nil {
				return err
			}

			owner, err := tx.Get(ctx, previousIndex).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}

			dropPrevious = owner == id
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, redis.KeepTTL)

			if dropPrevious {
				pipe.Del(ctx, gameKeyPrefix+previousGameKey)
			}

			if session.GameKey != "" && keyChanged {
				pipe.Set(ctx, gameKeyPrefix+session.GameKey, session.ID, that.ttl)
			}

			return nil
		})
		if err != nil {
			return err
		}

		updated = session

		return nil
	}

	for range maxUpdateAttempts {
		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, storeError(err, "failed to update game")
		}

		return updated, nil
	}

	return nil, fmt.Errorf("%w: game %s changed concurrently %d times", apperror.ErrStore, id, maxUpdateAttempts)
}

// DeleteCreatedBefore - Redis drops expired sessions on its own through key ttl.
func (that *dbGame) DeleteCreatedBefore(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func decodeSession(data []byte) (*entity.GameSession, error) {
	var session entity.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	if session.Boards == nil {
		session.Boards = map[string]json.RawMessage{}
	}

	return &session, nil
}
