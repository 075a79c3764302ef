package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	GameOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_operations_total",
			Help: "Game session operations by operation and outcome",
		},
		[]string{"operation", "result"},
	)
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "games_started_total",
			Help: "Games that moved to the playing state",
		},
	)
	GamesReaped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "games_reaped_total",
			Help: "Expired games deleted by the reaper",
		},
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_events_published_total",
			Help: "Realtime game events by action and outcome",
		},
		[]string{"action", "result"},
	)
	EventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Messages dropped because a client send queue was full",
		},
	)
	WebSocketConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Currently open websocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(GameOperations)
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesReaped)
	prometheus.MustRegister(EventsPublished)
	prometheus.MustRegister(EventsDropped)
	prometheus.MustRegister(WebSocketConnections)
}

// Result - label value for an operation outcome.
func Result(err error) string {
	if err != nil {
		return ResultError
	}

	return ResultOK
}
