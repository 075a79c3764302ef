package rest

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	allowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	allowHeaders = []string{"Content-Type"}
)

// NewRouter - game endpoints, liveness, metrics and the realtime endpoint behind one CORS policy.
func NewRouter(game Handlers, realtime http.Handler, allowOrigins []string) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware(allowOrigins))

	router.HandleFunc("/createGame", game.CreateGame).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/ready", game.Ready).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/joinGame", game.JoinGame).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/game/{gameId}", game.GetGame).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/ping", PingHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if realtime != nil {
		router.Handle("/ws", realtime).Methods(http.MethodGet)
	}

	return router
}

// NewServer - http server with the usual timeouts. Websocket connections set their own deadlines.
func NewServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

// corsMiddleware - echoes allowed origins with credentials and answers preflight requests.
func corsMiddleware(allowOrigins []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (slices.Contains(allowOrigins, "*") || slices.Contains(allowOrigins, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(allowHeaders, ", "))
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
