package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const selectSessionColumns = `SELECT id, players, boards, game_key, status, created_at FROM sessions`

type postgresGame struct {
	pool *pgxpool.Pool
}

func NewPostgresGameRepository(pool *pgxpool.Pool) GameRepository {
	return &postgresGame{
		pool: pool,
	}
}

func (that *postgresGame) Create(ctx context.Context, session *entity.GameSession) error {
	players, boards, err := encodeColumns(session)
	if err != nil {
		return err
	}

	query := `INSERT INTO sessions (id, players, boards, game_key, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`

	tag, err := that.pool.Exec(ctx, query, session.ID, players, boards, session.GameKey, session.Status, session.CreatedAt)
	if err != nil {
		return storeError(err, "can't save game")
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: game id %s", apperror.ErrAlreadyExists, session.ID)
	}

	return nil
}

func (that *postgresGame) GetByID(ctx context.Context, id string) (*entity.GameSession, error) {
	session, err := scanSession(that.pool.QueryRow(ctx, selectSessionColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id)
	}

	if err != nil {
		return nil, storeError(err, "can't find game")
	}

	return session, nil
}

func (that *postgresGame) FindIDByGameKey(ctx context.Context, gameKey string) (string, error) {
	query := `SELECT id FROM sessions WHERE game_key = $1 ORDER BY created_at DESC LIMIT 1`

	var id string

	err := that.pool.QueryRow(ctx, query, gameKey).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: game key %s", apperror.ErrNotFound, gameKey)
	}

	if err != nil {
		return "", storeError(err, "can't find game by key")
	}

	return id, nil
}

// Update - row lock held for the duration of the mutation.
func (that *postgresGame) Update(ctx context.Context, id string, mutate MutateFunc) (*entity.GameSession, error) {
	var updated *entity.GameSession

	err := pgx.BeginFunc(ctx, that.pool, func(tx pgx.Tx) error {
		session, err := scanSession(tx.QueryRow(ctx, selectSessionColumns+` WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return abort(fmt.Errorf("%w: game id %s", apperror.ErrNotFound, id))
		}

		if err != nil {
			return err
		}

		if err = mutate(session); err != nil {
			return abort(err)
		}

		players, boards, err := encodeColumns(session)
		if err != nil {
			return abort(err)
		}

		query := `UPDATE sessions SET players = $2, boards = $3, game_key = $4, status = $5 WHERE id = $1`
		if _, err = tx.Exec(ctx, query, session.ID, players, boards, session.GameKey, session.Status); err != nil {
			return err
		}

		updated = session

		return nil
	})
	if err != nil {
		return nil, storeError(err, "can't update game")
	}

	return updated, nil
}

func (that *postgresGame) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := that.pool.Exec(ctx, `DELETE FROM sessions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, storeError(err, "can't delete expired games")
	}

	return int(tag.RowsAffected()), nil
}

func scanSession(row pgx.Row) (*entity.GameSession, error) {
	var (
		session entity.GameSession
		players []byte
		boards  []byte
	)

	if err := row.Scan(&session.ID, &players, &boards, &session.GameKey, &session.Status, &session.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(players, &session.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}

	if err := json.Unmarshal(boards, &session.Boards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal boards: %w", err)
	}

	if session.Boards == nil {
		session.Boards = map[string]json.RawMessage{}
	}

	session.CreatedAt = session.CreatedAt.UTC()

	return &session, nil
}

func encodeColumns(session *entity.GameSession) (string, string, error) {
	players := session.Players
	if players == nil {
		players = []string{}
	}

	playersJSON, err := json.Marshal(players)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal players: %w", err)
	}

	boards := session.Boards
	if boards == nil {
		boards = map[string]json.RawMessage{}
	}

	boardsJSON, err := json.Marshal(boards)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal boards: %w", err)
	}

	return string(playersJSON), string(boardsJSON), nil
}
