// Package domain contains pure business types with ZERO infrastructure
// imports. It is the innermost ring of the application and depends on nothing.
package domain

import "fmt"

// ─── Statutory Defaults ─────────────────────────────────────────────────────

// Default entitlement ceilings per German long-term care law, applied when
// a client is registered without explicit budgets.
const (
	// DefaultEntlastungsbudget is the monthly §45b relief allowance in EUR.
	DefaultEntlastungsbudget = 125.0

	// DefaultVerhinderungsbudget is the yearly §39 respite-care allowance in EUR.
	DefaultVerhinderungsbudget = 1612.0
)

// Care level (Pflegegrad) bounds.
const (
	MinCareLevel = 0
	MaxCareLevel = 5
)

// ─── Client ─────────────────────────────────────────────────────────────────

// Client is a care recipient with two entitlement budgets and a single
// running consumption counter. Consumption is not attributed to a specific
// entitlement; both ceilings share one pool.
type Client struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	CareLevel           int     `json:"care_level"`
	EntlastungsBudget   float64 `json:"entlastungsbudget"`
	VerhinderungsBudget float64 `json:"verhinderungsbudget"`
	Verwendet           float64 `json:"verwendet"`
}

// TotalBudget returns the combined ceiling of both entitlements.
func (c Client) TotalBudget() float64 {
	return c.EntlastungsBudget + c.VerhinderungsBudget
}

// Remaining returns the combined budget left before the client is over.
// May be negative: over-budget states are allowed and reported, not rejected.
func (c Client) Remaining() float64 {
	return c.TotalBudget() - c.Verwendet
}

// OverBudget reports whether consumption exceeds the combined ceiling.
func (c Client) OverBudget() bool {
	return c.Verwendet > c.TotalBudget()
}

// BudgetStatus is the reporting view of a client's budget depot.
type BudgetStatus struct {
	ClientID    int64   `json:"client_id"`
	Name        string  `json:"name"`
	TotalBudget float64 `json:"total_budget"`
	Verwendet   float64 `json:"verwendet"`
	Remaining   float64 `json:"remaining"`
	OverBudget  bool    `json:"over_budget"`
}

// Status derives the budget report row for a client.
func (c Client) Status() BudgetStatus {
	return BudgetStatus{
		ClientID:    c.ID,
		Name:        c.Name,
		TotalBudget: c.TotalBudget(),
		Verwendet:   c.Verwendet,
		Remaining:   c.Remaining(),
		OverBudget:  c.OverBudget(),
	}
}

// ─── Caregiver ──────────────────────────────────────────────────────────────

// Caregiver is a staff member. Referenced by service events, never touched
// by the ledger invariants.
type Caregiver struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Qualification string  `json:"qualification"`
	VacationDays  float64 `json:"vacation_days"`
}

// ─── Service Events ─────────────────────────────────────────────────────────

// ServiceKind enumerates the billable visit types.
type ServiceKind string

const (
	KindGroceryAssistance ServiceKind = "grocery-assistance"
	KindMedicalEscort     ServiceKind = "medical-escort"
	KindHouseholdHelp     ServiceKind = "household-help"
	KindRespiteCare       ServiceKind = "respite-care"
	KindShortTermCare     ServiceKind = "short-term-care"
)

// ServiceKinds lists all valid kinds in display order.
func ServiceKinds() []ServiceKind {
	return []ServiceKind{
		KindGroceryAssistance,
		KindMedicalEscort,
		KindHouseholdHelp,
		KindRespiteCare,
		KindShortTermCare,
	}
}

// ParseServiceKind validates a raw string against the fixed enumeration.
func ParseServiceKind(s string) (ServiceKind, error) {
	for _, k := range ServiceKinds() {
		if s == string(k) {
			return k, nil
		}
	}
	return "", &ValidationError{Field: "service_kind", Reason: fmt.Sprintf("unknown kind %q", s)}
}

// DateLayout is the calendar-date format for service events.
const DateLayout = "2006-01-02"

// ServiceEvent is one immutable billing record. Cost is always derived
// from Hours*Rate at post time and never updated afterwards.
type ServiceEvent struct {
	ID          int64       `json:"id"`
	ClientID    int64       `json:"client_id"`
	CaregiverID *int64      `json:"caregiver_id,omitempty"`
	Date        string      `json:"date"` // DateLayout
	Kind        ServiceKind `json:"service_kind"`
	Hours       float64     `json:"hours"`
	Rate        float64     `json:"rate"`
	Cost        float64     `json:"cost"`
	Receipt     string      `json:"receipt"`
}

// DateRevenue is one row of the by-date aggregate view.
type DateRevenue struct {
	Date      string  `json:"date"`
	TotalCost float64 `json:"total_cost"`
}

// ─── Threshold Bands ────────────────────────────────────────────────────────

// Band is the at-a-glance revenue classification (Ampelsystem).
type Band string

const (
	BandGreen  Band = "GREEN"
	BandYellow Band = "YELLOW"
	BandRed    Band = "RED"
)

// Revenue thresholds in EUR. The lower boundary of each band is inclusive:
// exactly 2000 is GREEN, exactly 5000 is YELLOW.
const (
	YellowThreshold = 2000.0
	RedThreshold    = 5000.0
)

// Classify maps aggregate revenue to its threshold band.
func Classify(total float64) Band {
	switch {
	case total > RedThreshold:
		return BandRed
	case total > YellowThreshold:
		return BandYellow
	default:
		return BandGreen
	}
}
