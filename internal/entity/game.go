package entity

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	StatusWaiting = "waiting"
	StatusPlaying = "playing"

	MaxPlayers = 2
)

// GameSession - one two-player match and the state shared by both players.
type GameSession struct {
	ID        string                     `json:"id"`
	Players   []string                   `json:"players"`
	Boards    map[string]json.RawMessage `json:"boards"`
	GameKey   string                     `json:"gameKey"`
	Status    string                     `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// ReadyResult - outcome of a board submission.
type ReadyResult struct {
	Status  string `json:"status"`
	GameKey string `json:"gameKey,omitempty"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`

	// Started is set only by the submission that moved the session from waiting to playing.
	Started bool `json:"-"`
}

var nullBoard = json.RawMessage("null")

func NewGameSession(id, playerID string, now time.Time) *GameSession {
	return &GameSession{
		ID:        id,
		Players:   []string{playerID},
		Boards:    map[string]json.RawMessage{},
		Status:    StatusWaiting,
		CreatedAt: now.UTC(),
	}
}

func (that *GameSession) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *GameSession) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *GameSession) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

func (that *GameSession) HasPlayer(playerID string) bool {
	return slices.Contains(that.Players, playerID)
}

func (that *GameSession) HasBoard(playerID string) bool {
	_, ok := that.Boards[playerID]
	return ok
}

// Join - appends the player in join order. Duplicates are not collapsed.
func (that *GameSession) Join(playerID string) error {
	if that.IsFull() {
		return fmt.Errorf("%w: game id %s", apperror.ErrSessionFull, that.ID)
	}

	that.Players = append(that.Players, playerID)

	return nil
}

// Ready - records the player's board and moves the session forward.
// With one player the game key is set and the session keeps waiting for an opponent.
// With two players the session starts once both of them have a board.
func (that *GameSession) Ready(playerID, gameKey string, board json.RawMessage) (*ReadyResult, error) {
	if !that.HasPlayer(playerID) {
		return nil, fmt.Errorf("%w: player %s is not in game %s", apperror.ErrInvalidState, playerID, that.ID)
	}

	if that.Boards == nil {
		that.Boards = map[string]json.RawMessage{}
	}

	if len(board) == 0 {
		board = nullBoard
	}

	switch len(that.Players) {
	case 1:
		that.Boards[playerID] = board
		that.GameKey = gameKey

		return &ReadyResult{Status: StatusWaiting, GameKey: gameKey}, nil
	case MaxPlayers:
		that.Boards[playerID] = board

		if !that.HasBoard(that.Players[0]) || !that.HasBoard(that.Players[1]) {
			return &ReadyResult{Status: that.Status, GameKey: that.GameKey}, nil
		}

		started := that.Status != StatusPlaying
		that.Status = StatusPlaying

		return &ReadyResult{
			Status:  StatusPlaying,
			Player1: that.Players[0],
			Player2: that.Players[1],
			Started: started,
		}, nil
	default:
		return nil, fmt.Errorf("%w: game %s has %d players", apperror.ErrInvalidState, that.ID, len(that.Players))
	}
}

// Clone - returns a deep copy so callers can mutate it without touching shared state.
func (that *GameSession) Clone() *GameSession {
	clone := *that
	clone.Players = slices.Clone(that.Players)
	clone.Boards = make(map[string]json.RawMessage, len(that.Boards))
	for playerID, board := range that.Boards {
		clone.Boards[playerID] = slices.Clone(board)
	}

	return &clone
}
