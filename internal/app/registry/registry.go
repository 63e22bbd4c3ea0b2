// Package registry implements the client registry: client records, the
// caregiver directory, and the consumption counter of each budget depot.
//
// The registry validates input and maps storage lookups onto domain
// errors; all SQL stays in internal/infra/sqlite.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/pflegedesk/pflegedesk/internal/domain"
	"github.com/pflegedesk/pflegedesk/internal/infra/observability"
	"github.com/pflegedesk/pflegedesk/internal/infra/sqlite"
)

// Registry owns client and caregiver records.
type Registry struct {
	db *sqlite.DB
}

// New creates a registry on top of the given storage handle.
func New(db *sqlite.DB) *Registry {
	return &Registry{db: db}
}

// ─── Clients ────────────────────────────────────────────────────────────────

// Create validates and persists a new client. The consumption counter
// starts at zero.
func (r *Registry) Create(name string, careLevel int, entlastung, verhinderung float64) (int64, error) {
	if name == "" {
		return 0, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if careLevel < domain.MinCareLevel || careLevel > domain.MaxCareLevel {
		return 0, &domain.ValidationError{
			Field:  "care_level",
			Reason: fmt.Sprintf("%d outside [%d,%d]", careLevel, domain.MinCareLevel, domain.MaxCareLevel),
		}
	}
	if entlastung < 0 {
		return 0, &domain.ValidationError{Field: "entlastungsbudget", Reason: "must not be negative"}
	}
	if verhinderung < 0 {
		return 0, &domain.ValidationError{Field: "verhinderungsbudget", Reason: "must not be negative"}
	}

	id, err := r.db.InsertClient(name, careLevel, entlastung, verhinderung)
	if err != nil {
		return 0, fmt.Errorf("persist client: %w", err)
	}

	observability.ClientsCreated.Inc()
	log.Printf("[registry] client %d registered: %s (Pflegegrad %d)", id, name, careLevel)
	return id, nil
}

// Get returns the client with the given id.
func (r *Registry) Get(id int64) (domain.Client, error) {
	c, err := r.db.GetClient(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return c, err
}

// List returns all clients in creation order.
func (r *Registry) List() ([]domain.Client, error) {
	return r.db.ListClients()
}

// Debit increases the client's consumption counter by amount.
// Exceeding an entitlement ceiling does not fail the debit; over-budget
// states surface in the budget report, not at posting time.
func (r *Registry) Debit(id int64, amount float64) error {
	if amount < 0 {
		return &domain.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	err := r.db.DebitClient(id, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrClientNotFound
	}
	return err
}

// ResetConsumption zeroes the client's consumption counter. Idempotent.
func (r *Registry) ResetConsumption(id int64) error {
	err := r.db.ResetClientConsumption(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrClientNotFound
	}
	return err
}

// ─── Caregivers ─────────────────────────────────────────────────────────────

// AddCaregiver registers a staff member.
func (r *Registry) AddCaregiver(name, qualification string) (int64, error) {
	if name == "" {
		return 0, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	id, err := r.db.InsertCaregiver(name, qualification)
	if err != nil {
		return 0, fmt.Errorf("persist caregiver: %w", err)
	}
	observability.CaregiversCreated.Inc()
	return id, nil
}

// GetCaregiver returns the caregiver with the given id.
func (r *Registry) GetCaregiver(id int64) (domain.Caregiver, error) {
	cg, err := r.db.GetCaregiver(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Caregiver{}, domain.ErrCaregiverNotFound
	}
	return cg, err
}

// Caregivers returns the staff directory in creation order.
func (r *Registry) Caregivers() ([]domain.Caregiver, error) {
	return r.db.ListCaregivers()
}

// RecordVacation accrues vacation days for a caregiver.
func (r *Registry) RecordVacation(id int64, days float64) error {
	if days <= 0 {
		return &domain.ValidationError{Field: "days", Reason: "must be positive"}
	}
	err := r.db.AddCaregiverVacation(id, days)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCaregiverNotFound
	}
	return err
}
