// Package api provides the HTTP server for pflegedesk.
// It is the surface the (out-of-scope) form UI talks to; all business
// rules live in the registry and ledger services behind it.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pflegedesk/pflegedesk/internal/domain"
	"github.com/pflegedesk/pflegedesk/internal/infra/observability"
)

// Version is the reported API version.
const Version = "0.1.0"

// Server is the pflegedesk HTTP API server.
type Server struct {
	registry       domain.ClientRegistry
	ledger         domain.BillingLedger
	metricsEnabled bool
}

// NewServer creates a new API server on top of the two core services.
func NewServer(reg domain.ClientRegistry, led domain.BillingLedger) *Server {
	return &Server{registry: reg, ledger: led}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	r.Route("/api/clients", func(r chi.Router) {
		r.Post("/", s.handleCreateClient)
		r.Get("/", s.handleListClients)
		r.Get("/{id}", s.handleGetClient)
		r.Get("/{id}/budget", s.handleClientBudget)
		r.Post("/{id}/reset", s.handleResetBudget)
		r.Get("/{id}/events", s.handleClientEvents)
	})

	r.Route("/api/caregivers", func(r chi.Router) {
		r.Post("/", s.handleAddCaregiver)
		r.Get("/", s.handleListCaregivers)
		r.Post("/{id}/vacation", s.handleRecordVacation)
	})

	r.Route("/api/billing", func(r chi.Router) {
		r.Post("/events", s.handlePostEvent)
		r.Get("/events", s.handleListEvents)
		r.Get("/kinds", s.handleServiceKinds)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/daily", s.handleDailyReport)
		r.Get("/revenue", s.handleRevenueReport)
		r.Get("/budgets", s.handleBudgetReport)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeServiceError maps domain errors onto HTTP statuses:
// validation → 400, missing record → 404, posting failure and the rest → 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrPostingFailed):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: "id", Reason: "want integer"}
	}
	return id, nil
}

// metricsMiddleware records request latency per method and status class.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := strconv.Itoa(ww.Status() / 100 * 100)
		observability.HTTPRequestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
	})
}
