package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"recon-agent/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc app.ApplicationService
	log zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string, maxUploadBytes int64, log zerolog.Logger) http.Handler {
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxUploadBytes))

	// ── Health ────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Pools & import ────────────────────────────────────────────────────
	r.Post("/api/sets/{set}/import", h.importFiles)
	r.Get("/api/sets/{set}", h.pool)

	// ── Selection & manual matching ───────────────────────────────────────
	r.Post("/api/selection/toggle", h.toggleSelect)
	r.Get("/api/selection", h.selection)
	r.Post("/api/matches/confirm", h.confirmMatch)

	// ── Automatic matching, history, insight, reset ───────────────────────
	r.Post("/api/matches/auto", h.runAutoMatch)
	r.Get("/api/matches", h.matches)
	r.Get("/api/insight", h.insight)
	r.Post("/api/reset", h.reset)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
