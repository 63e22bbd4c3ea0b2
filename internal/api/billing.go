package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

// ─── Billing Handlers ───────────────────────────────────────────────────────
//
// POST /api/billing/events            — post a service event (the one
//                                       transactional operation)
// GET  /api/billing/events            — all events; ?client_id= filters
// GET  /api/billing/kinds             — the fixed service-kind enumeration

type postEventRequest struct {
	ClientID    int64   `json:"client_id"`
	CaregiverID *int64  `json:"caregiver_id"`
	Date        string  `json:"date"`
	Kind        string  `json:"service_kind"`
	Hours       float64 `json:"hours"`
	Rate        float64 `json:"rate"`
}

func (s *Server) handlePostEvent(w http.ResponseWriter, r *http.Request) {
	var req postEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ev, err := s.ledger.PostEvent(domain.PostRequest{
		ClientID:    req.ClientID,
		CaregiverID: req.CaregiverID,
		Date:        req.Date,
		Kind:        domain.ServiceKind(req.Kind),
		Hours:       req.Hours,
		Rate:        req.Rate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("client_id"); raw != "" {
		clientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid client_id: want integer")
			return
		}
		events, err := s.ledger.EventsForClient(clientID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
		return
	}

	events, err := s.ledger.Events()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (s *Server) handleServiceKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"kinds": domain.ServiceKinds()})
}
