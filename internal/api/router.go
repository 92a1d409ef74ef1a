package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/turnherald/internal/api/apierr"
	"github.com/mcoot/turnherald/internal/api/handler"
	"github.com/mcoot/turnherald/internal/middleware"
	"github.com/mcoot/turnherald/internal/services/history"
	"github.com/mcoot/turnherald/internal/services/turn"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	TurnProcessor  *turn.Processor
	HistoryService *history.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	webhookHandler := handler.NewWebhookHandler(cfg.TurnProcessor)
	gamesHandler := handler.NewGamesHandler(cfg.TurnProcessor, cfg.HistoryService)

	recoveryMiddleware := middleware.Recovery(cfg.Logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
	loggingMiddleware := middleware.Logging(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Webhook ingestion
	api.HandleFunc("/webhook/turn", webhookHandler.Turn).Methods(http.MethodPost)

	// Active-games introspection and removal
	api.HandleFunc("/games", gamesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{game_id}", gamesHandler.End).Methods(http.MethodDelete)
	api.HandleFunc("/games/{game_id}/history", gamesHandler.History).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
