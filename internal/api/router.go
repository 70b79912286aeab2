package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/duelcode-game/duelcode/internal/api/apierr"
	"github.com/duelcode-game/duelcode/internal/api/handler"
	"github.com/duelcode-game/duelcode/internal/middleware"
	"github.com/duelcode-game/duelcode/internal/services/history"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger         *slog.Logger
	Gateway        http.Handler
	HistoryService *history.Service
}

// NewRouter creates the router with all routes configured. The game itself
// is played over the WebSocket endpoint; the REST surface only exposes
// health and the match log.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	historyHandler := handler.NewHistoryHandler(cfg.HistoryService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	// The WebSocket endpoint skips the logging wrapper: the request never
	// completes until the connection closes, so per-request logs are noise
	r.Handle("/game", cfg.Gateway).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/matches", historyHandler.Recent).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room_id}/matches", historyHandler.ForRoom).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
