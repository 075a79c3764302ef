package entity

const (
	EventCreated = "game:created"
	EventReady   = "game:ready"
	EventJoined  = "game:joined"
	EventStarted = "game:started"
)

// GameEvent - state change pushed to realtime subscribers of a game.
type GameEvent struct {
	Action string       `json:"action"`
	GameID string       `json:"gameId"`
	Game   *GameSession `json:"game,omitempty"`
}

func NewGameEvent(action string, session *GameSession) *GameEvent {
	return &GameEvent{
		Action: action,
		GameID: session.ID,
		Game:   session,
	}
}
