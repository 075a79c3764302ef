package websocket

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const wildcardOrigin = "*"

type Server struct {
	logger   *slog.Logger
	hub      *Hub
	upgrader websocket.Upgrader
}

// New - websocket endpoint feeding the hub. Browsers are accepted only from allowOrigins.
func New(logger *slog.Logger, hub *Hub, allowOrigins []string) *Server {
	return &Server{
		logger: logger.With("component", "websocket_server"),
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				return origin == "" || slices.Contains(allowOrigins, wildcardOrigin) || slices.Contains(allowOrigins, origin)
			},
		},
	}
}

// ServeHTTP - upgrades the connection, optionally subscribing it to ?gameId= right away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, uuid.NewString(), that.hub, conn)
	that.hub.register(c)

	log.Info("client connected", "client", c.id, "remote", conn.RemoteAddr().String())

	if gameID := req.URL.Query().Get("gameId"); gameID != "" {
		that.hub.subscribe(c, gameID)
		c.reply(Message{Action: actionSubscribed, GameID: gameID})
	}

	go c.writePump()
	c.readPump()

	log.Info("client disconnected", "client", c.id)
}
