package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ksalp/lernportal/internal/metrics"
)

// RegisterRoutes mounts every endpoint on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /api/v1/account", h.getAccount)

	mux.HandleFunc("GET /api/v1/learnsets/list", h.listLearnSets)
	mux.HandleFunc("GET /api/v1/learnsets/data/{id}", h.getLearnSet)
	mux.HandleFunc("GET /api/v1/learnsets/bulk/{ids}", h.getBulk)
	mux.HandleFunc("POST /api/v1/learnsets/answer/{exerciseID}", loginRequired(h.postAnswer))
	mux.HandleFunc("POST /api/v1/learnsets", loginRequired(h.createLearnSet))
	mux.HandleFunc("DELETE /api/v1/learnsets/{id}", loginRequired(h.deleteLearnSet))

	mux.HandleFunc("GET /api/v1/export", h.exportAll)
	mux.HandleFunc("POST /api/v1/import", loginRequired(h.importAll))
}

// health reports whether the database answers.
// @Summary      Health check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Wrap applies the middleware chain: Authenticate → Logging → CORS → mux.
// Authenticate must stay outermost for Logging to see the route pattern.
func Wrap(mux http.Handler, h *Handler, corsOrigin string) http.Handler {
	return Authenticate(h.issuer, h.logger)(Logging(h.logger)(CORS(corsOrigin)(mux)))
}
