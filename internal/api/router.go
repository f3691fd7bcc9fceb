package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivekpatel25/acac-war/internal/api/handlers"
	"github.com/vivekpatel25/acac-war/internal/api/ws"
	"github.com/vivekpatel25/acac-war/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(lb *handlers.LeaderboardHandler, hub *ws.Hub, limiter Limiter, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(hub)).Methods("GET")

	// Live updates
	r.HandleFunc("/ws", hub.ServeWS).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(rateLimitMiddleware(limiter, log))

	api.HandleFunc("/leaderboards", lb.ListDivisions).Methods("GET")
	api.HandleFunc("/leaderboards/{division}", lb.GetLeaderboard).Methods("GET")
	api.HandleFunc("/leaderboards/{division}/meta", lb.GetMeta).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "ok",
			"service":    "netpts-api",
			"ws_clients": hub.ClientCount(),
		})
	}
}
