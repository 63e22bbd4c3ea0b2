package api

import (
	"encoding/json"
	"net/http"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

// ─── Client Handlers ────────────────────────────────────────────────────────
//
// POST /api/clients               — register a client
// GET  /api/clients               — list clients in creation order
// GET  /api/clients/{id}          — one client
// GET  /api/clients/{id}/budget   — budget depot status
// POST /api/clients/{id}/reset    — zero the consumption counter
// GET  /api/clients/{id}/events   — the client's posted events

type createClientRequest struct {
	Name                string   `json:"name"`
	CareLevel           int      `json:"care_level"`
	EntlastungsBudget   *float64 `json:"entlastungsbudget"`
	VerhinderungsBudget *float64 `json:"verhinderungsbudget"`
}

// handleCreateClient registers a new client. Omitted budgets fall back to
// the statutory defaults (§45b / §39).
func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entlastung := domain.DefaultEntlastungsbudget
	if req.EntlastungsBudget != nil {
		entlastung = *req.EntlastungsBudget
	}
	verhinderung := domain.DefaultVerhinderungsbudget
	if req.VerhinderungsBudget != nil {
		verhinderung = *req.VerhinderungsBudget
	}

	id, err := s.registry.Create(req.Name, req.CareLevel, entlastung, verhinderung)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	client, err := s.registry.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.registry.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	client, err := s.registry.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleClientBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	client, err := s.registry.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client.Status())
}

func (s *Server) handleResetBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.ledger.ResetClientBudget(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleClientEvents(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	events, err := s.ledger.EventsForClient(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// ─── Caregiver Handlers ─────────────────────────────────────────────────────

type addCaregiverRequest struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
}

func (s *Server) handleAddCaregiver(w http.ResponseWriter, r *http.Request) {
	var req addCaregiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := s.registry.AddCaregiver(req.Name, req.Qualification)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

func (s *Server) handleListCaregivers(w http.ResponseWriter, r *http.Request) {
	caregivers, err := s.registry.Caregivers()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"caregivers": caregivers})
}

type vacationRequest struct {
	Days float64 `json:"days"`
}

func (s *Server) handleRecordVacation(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var req vacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.registry.RecordVacation(id, req.Days); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
