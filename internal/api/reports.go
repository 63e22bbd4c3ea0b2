package api

import (
	"net/http"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

// ─── Report Handlers ────────────────────────────────────────────────────────
//
// GET /api/reports/daily    — cost per calendar date, ascending
// GET /api/reports/revenue  — total revenue + threshold band
// GET /api/reports/budgets  — per-client budget depot status

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	daily, err := s.ledger.AggregateByDate()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"daily": daily})
}

func (s *Server) handleRevenueReport(w http.ResponseWriter, r *http.Request) {
	total, err := s.ledger.TotalRevenue()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": total,
		"band":  domain.Classify(total),
	})
}

func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	clients, err := s.registry.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	statuses := make([]domain.BudgetStatus, 0, len(clients))
	for _, c := range clients {
		statuses = append(statuses, c.Status())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"budgets": statuses})
}
