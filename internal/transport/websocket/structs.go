package websocket

const (
	actionSubscribe    = "subscribe"
	actionSubscribed   = "subscribed"
	actionUnsubscribe  = "unsubscribe"
	actionUnsubscribed = "unsubscribed"
	actionPing         = "ping"
	actionPong         = "pong"
	actionError        = "error"
)

// Message - control frame exchanged with a client. Game events use entity.GameEvent instead.
type Message struct {
	Action string `json:"action"`
	GameID string `json:"gameId,omitempty"`
	Error  string `json:"error,omitempty"`
}
