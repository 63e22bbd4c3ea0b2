// Package ledger implements the billing ledger: posting service events,
// debiting the owning client's budget depot, resets, and the aggregates
// behind reporting.
//
// Posting is the single correctness-critical transaction of the system.
// The event append and the client debit commit together or not at all;
// the storage layer runs both inside one sqlite transaction rather than
// issuing two separate writes.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pflegedesk/pflegedesk/internal/app/registry"
	"github.com/pflegedesk/pflegedesk/internal/domain"
	"github.com/pflegedesk/pflegedesk/internal/infra/observability"
	"github.com/pflegedesk/pflegedesk/internal/infra/sqlite"
)

// Ledger records billing events against the client registry.
type Ledger struct {
	db  *sqlite.DB
	reg *registry.Registry
}

// New creates a ledger sharing the registry's storage handle.
func New(db *sqlite.DB, reg *registry.Registry) *Ledger {
	return &Ledger{db: db, reg: reg}
}

// ─── Posting ────────────────────────────────────────────────────────────────

// PostEvent validates, prices, and commits one billing posting.
//
// Cost is recomputed from hours*rate here, never accepted from the
// caller. The 0.25h step is a form-level affordance; the core only
// requires positive hours. Over-budget postings are allowed.
func (l *Ledger) PostEvent(req domain.PostRequest) (domain.ServiceEvent, error) {
	if req.Hours <= 0 {
		return domain.ServiceEvent{}, &domain.ValidationError{Field: "hours", Reason: "must be positive"}
	}
	if req.Rate < 0 {
		return domain.ServiceEvent{}, &domain.ValidationError{Field: "rate", Reason: "must not be negative"}
	}
	if _, err := domain.ParseServiceKind(string(req.Kind)); err != nil {
		return domain.ServiceEvent{}, err
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return domain.ServiceEvent{}, &domain.ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
	}

	if _, err := l.reg.Get(req.ClientID); err != nil {
		return domain.ServiceEvent{}, err
	}
	if req.CaregiverID != nil {
		if _, err := l.reg.GetCaregiver(*req.CaregiverID); err != nil {
			return domain.ServiceEvent{}, err
		}
	}

	ev := domain.ServiceEvent{
		ClientID:    req.ClientID,
		CaregiverID: req.CaregiverID,
		Date:        date,
		Kind:        req.Kind,
		Hours:       req.Hours,
		Rate:        req.Rate,
		Cost:        req.Hours * req.Rate,
		Receipt:     uuid.NewString(),
	}

	id, err := l.db.PostServiceEvent(ev)
	if err != nil {
		observability.BillingPostingFailures.Inc()
		if errors.Is(err, sql.ErrNoRows) {
			// Client vanished between lookup and commit.
			return domain.ServiceEvent{}, domain.ErrClientNotFound
		}
		return domain.ServiceEvent{}, fmt.Errorf("%w: %v", domain.ErrPostingFailed, err)
	}
	ev.ID = id

	observability.BillingPostings.WithLabelValues(string(ev.Kind)).Inc()
	observability.BillingRevenue.Add(ev.Cost)
	log.Printf("[ledger] posted event %d client=%d kind=%s cost=%.2f receipt=%s",
		ev.ID, ev.ClientID, ev.Kind, ev.Cost, ev.Receipt)

	return ev, nil
}

// ResetClientBudget zeroes the client's consumption counter. Historical
// service events are untouched; the ledger keeps its full history while
// only the running counter resets.
func (l *Ledger) ResetClientBudget(clientID int64) error {
	if err := l.reg.ResetConsumption(clientID); err != nil {
		return err
	}
	observability.BudgetResets.Inc()
	log.Printf("[ledger] budget depot reset for client %d", clientID)
	return nil
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// Events returns every posted event in posting order.
func (l *Ledger) Events() ([]domain.ServiceEvent, error) {
	return l.db.ListServiceEvents()
}

// EventsForClient returns one client's events in posting order.
func (l *Ledger) EventsForClient(clientID int64) ([]domain.ServiceEvent, error) {
	if _, err := l.reg.Get(clientID); err != nil {
		return nil, err
	}
	return l.db.ListClientEvents(clientID)
}

// EventCount returns how many events are posted for a client.
func (l *Ledger) EventCount(clientID int64) (int, error) {
	return l.db.CountClientEvents(clientID)
}

// AggregateByDate groups all events by date, summing cost, ascending.
func (l *Ledger) AggregateByDate() ([]domain.DateRevenue, error) {
	return l.db.CostByDate()
}

// TotalRevenue returns the sum of cost over all events.
func (l *Ledger) TotalRevenue() (float64, error) {
	return l.db.TotalRevenue()
}

// RevenueBand returns total revenue together with its threshold band.
func (l *Ledger) RevenueBand() (float64, domain.Band, error) {
	total, err := l.db.TotalRevenue()
	if err != nil {
		return 0, "", err
	}
	return total, domain.Classify(total), nil
}
