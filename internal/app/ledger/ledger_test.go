package ledger

import (
	"errors"
	"testing"

	"github.com/pflegedesk/pflegedesk/internal/app/registry"
	"github.com/pflegedesk/pflegedesk/internal/domain"
	"github.com/pflegedesk/pflegedesk/internal/infra/sqlite"
)

func newTestLedger(t *testing.T) (*registry.Registry, *Ledger) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	reg := registry.New(db)
	return reg, New(db, reg)
}

func mustCreateClient(t *testing.T, reg *registry.Registry) int64 {
	t.Helper()
	id, err := reg.Create("Anna Schmidt", 2, 125.0, 1612.0)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return id
}

func post(t *testing.T, led *Ledger, req domain.PostRequest) domain.ServiceEvent {
	t.Helper()
	ev, err := led.PostEvent(req)
	if err != nil {
		t.Fatalf("PostEvent() error: %v", err)
	}
	return ev
}

// ─── Posting ────────────────────────────────────────────────────────────────

func TestPostEvent(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	ev := post(t, led, domain.PostRequest{
		ClientID: clientID,
		Date:     "2026-08-15",
		Kind:     domain.KindHouseholdHelp,
		Hours:    2,
		Rate:     25.0,
	})

	if ev.Cost != 50.0 {
		t.Errorf("Cost = %.2f, want 50.00 (hours*rate)", ev.Cost)
	}
	if ev.ID == 0 {
		t.Error("event id = 0, want assigned")
	}
	if ev.Receipt == "" {
		t.Error("receipt is empty, want uuid")
	}

	c, _ := reg.Get(clientID)
	if c.Verwendet != 50.0 {
		t.Errorf("Verwendet = %.2f, want 50.00", c.Verwendet)
	}
}

func TestPostEvent_Validation(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	tests := []struct {
		name string
		req  domain.PostRequest
	}{
		{"zero hours", domain.PostRequest{ClientID: clientID, Kind: domain.KindHouseholdHelp, Hours: 0, Rate: 25}},
		{"negative hours", domain.PostRequest{ClientID: clientID, Kind: domain.KindHouseholdHelp, Hours: -1, Rate: 25}},
		{"negative rate", domain.PostRequest{ClientID: clientID, Kind: domain.KindHouseholdHelp, Hours: 1, Rate: -25}},
		{"unknown kind", domain.PostRequest{ClientID: clientID, Kind: "massage", Hours: 1, Rate: 25}},
		{"bad date", domain.PostRequest{ClientID: clientID, Kind: domain.KindHouseholdHelp, Hours: 1, Rate: 25, Date: "15.08.2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := led.PostEvent(tt.req)
			if !domain.IsValidation(err) {
				t.Errorf("PostEvent() error = %v, want ValidationError", err)
			}
		})
	}

	// No event slipped through, no budget moved.
	events, _ := led.Events()
	if len(events) != 0 {
		t.Errorf("events = %d after rejected postings, want 0", len(events))
	}
	c, _ := reg.Get(clientID)
	if c.Verwendet != 0 {
		t.Errorf("Verwendet = %.2f after rejected postings, want 0", c.Verwendet)
	}
}

func TestPostEvent_ZeroRateAllowed(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	ev := post(t, led, domain.PostRequest{ClientID: clientID, Kind: domain.KindGroceryAssistance, Hours: 2, Rate: 0})
	if ev.Cost != 0 {
		t.Errorf("Cost = %.2f, want 0", ev.Cost)
	}
}

func TestPostEvent_UnknownClient(t *testing.T) {
	_, led := newTestLedger(t)

	_, err := led.PostEvent(domain.PostRequest{ClientID: 4711, Kind: domain.KindHouseholdHelp, Hours: 1, Rate: 25})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("PostEvent() error = %v, want ErrClientNotFound", err)
	}

	// The failed posting leaves no new event.
	events, _ := led.Events()
	if len(events) != 0 {
		t.Errorf("events = %d after failed posting, want 0", len(events))
	}
}

func TestPostEvent_UnknownCaregiver(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	unknown := int64(99)
	_, err := led.PostEvent(domain.PostRequest{
		ClientID: clientID, CaregiverID: &unknown,
		Kind: domain.KindMedicalEscort, Hours: 1, Rate: 25,
	})
	if !errors.Is(err, domain.ErrCaregiverNotFound) {
		t.Fatalf("PostEvent() error = %v, want ErrCaregiverNotFound", err)
	}

	c, _ := reg.Get(clientID)
	if c.Verwendet != 0 {
		t.Errorf("Verwendet = %.2f after failed posting, want 0", c.Verwendet)
	}
}

func TestPostEvent_WithCaregiver(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)
	cgID, _ := reg.AddCaregiver("Maria Weber", "Pflegefachkraft")

	ev := post(t, led, domain.PostRequest{
		ClientID: clientID, CaregiverID: &cgID,
		Date: "2026-08-15", Kind: domain.KindRespiteCare, Hours: 3, Rate: 30,
	})
	if ev.CaregiverID == nil || *ev.CaregiverID != cgID {
		t.Errorf("CaregiverID = %v, want %d", ev.CaregiverID, cgID)
	}
}

func TestPostEvent_ConsumptionMatchesEventSum(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	var want float64
	for _, hr := range []struct{ hours, rate float64 }{{1, 25}, {2.25, 30}, {0.25, 40}, {4, 22.5}} {
		ev := post(t, led, domain.PostRequest{
			ClientID: clientID, Date: "2026-08-10",
			Kind: domain.KindShortTermCare, Hours: hr.hours, Rate: hr.rate,
		})
		want += ev.Cost
	}

	c, _ := reg.Get(clientID)
	if c.Verwendet != want {
		t.Errorf("Verwendet = %.4f, want %.4f (sum of event costs)", c.Verwendet, want)
	}
}

// ─── Reset ──────────────────────────────────────────────────────────────────

func TestResetClientBudget_KeepsHistory(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-01", Kind: domain.KindHouseholdHelp, Hours: 2, Rate: 25})
	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-02", Kind: domain.KindHouseholdHelp, Hours: 4, Rate: 25})

	if err := led.ResetClientBudget(clientID); err != nil {
		t.Fatalf("ResetClientBudget() error: %v", err)
	}

	c, _ := reg.Get(clientID)
	if c.Verwendet != 0 {
		t.Errorf("Verwendet = %.2f after reset, want 0", c.Verwendet)
	}

	// History survives the reset untouched.
	events, err := led.EventsForClient(clientID)
	if err != nil {
		t.Fatalf("EventsForClient() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d after reset, want 2", len(events))
	}
	if events[0].Cost+events[1].Cost != 150.0 {
		t.Errorf("event cost sum = %.2f, want 150.00", events[0].Cost+events[1].Cost)
	}
}

func TestResetClientBudget_NotFound(t *testing.T) {
	_, led := newTestLedger(t)
	err := led.ResetClientBudget(31)
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("ResetClientBudget(31) error = %v, want ErrClientNotFound", err)
	}
}

// ─── Aggregates ─────────────────────────────────────────────────────────────

func TestAggregateByDate_SumsToTotalRevenue(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-03", Kind: domain.KindHouseholdHelp, Hours: 2, Rate: 25})
	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-01", Kind: domain.KindGroceryAssistance, Hours: 1, Rate: 20})
	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-03", Kind: domain.KindMedicalEscort, Hours: 1.5, Rate: 30})

	daily, err := led.AggregateByDate()
	if err != nil {
		t.Fatalf("AggregateByDate() error: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("AggregateByDate() returned %d rows, want 2", len(daily))
	}
	if daily[0].Date != "2026-08-01" {
		t.Errorf("daily[0].Date = %s, want 2026-08-01 (ascending)", daily[0].Date)
	}

	total, err := led.TotalRevenue()
	if err != nil {
		t.Fatalf("TotalRevenue() error: %v", err)
	}
	var sum float64
	for _, row := range daily {
		sum += row.TotalCost
	}
	if sum != total {
		t.Errorf("sum of AggregateByDate = %.2f, TotalRevenue = %.2f", sum, total)
	}
}

func TestRevenueBand(t *testing.T) {
	reg, led := newTestLedger(t)
	clientID := mustCreateClient(t, reg)

	// Exactly 5000 is still YELLOW.
	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-01", Kind: domain.KindRespiteCare, Hours: 200, Rate: 25})
	total, band, err := led.RevenueBand()
	if err != nil {
		t.Fatalf("RevenueBand() error: %v", err)
	}
	if total != 5000 {
		t.Fatalf("total = %.2f, want 5000.00", total)
	}
	if band != domain.BandYellow {
		t.Errorf("band at 5000 = %s, want YELLOW", band)
	}

	// One more cent pushes to RED.
	post(t, led, domain.PostRequest{ClientID: clientID, Date: "2026-08-02", Kind: domain.KindRespiteCare, Hours: 0.25, Rate: 0.04})
	_, band, err = led.RevenueBand()
	if err != nil {
		t.Fatalf("RevenueBand() error: %v", err)
	}
	if band != domain.BandRed {
		t.Errorf("band at 5000.01 = %s, want RED", band)
	}
}

// ─── End-to-End Scenario ────────────────────────────────────────────────────

// The canonical depot walkthrough: register, post twice, reset, and verify
// that only the running counter moved while the ledger kept its history.
func TestScenario_AnnaSchmidt(t *testing.T) {
	reg, led := newTestLedger(t)

	id, err := reg.Create("Anna Schmidt", 2, 125.0, 1612.0)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	c, _ := reg.Get(id)
	if c.Verwendet != 0 {
		t.Fatalf("Verwendet = %.2f after create, want 0", c.Verwendet)
	}

	first := post(t, led, domain.PostRequest{ClientID: id, Date: "2026-08-10", Kind: domain.KindHouseholdHelp, Hours: 2, Rate: 25.0})
	if first.Cost != 50.0 {
		t.Errorf("first cost = %.2f, want 50.00", first.Cost)
	}
	c, _ = reg.Get(id)
	if c.Verwendet != 50.0 {
		t.Errorf("Verwendet = %.2f, want 50.00", c.Verwendet)
	}

	second := post(t, led, domain.PostRequest{ClientID: id, Date: "2026-08-11", Kind: domain.KindHouseholdHelp, Hours: 4, Rate: 25.0})
	if second.Cost != 100.0 {
		t.Errorf("second cost = %.2f, want 100.00", second.Cost)
	}
	c, _ = reg.Get(id)
	if c.Verwendet != 150.0 {
		t.Errorf("Verwendet = %.2f, want 150.00", c.Verwendet)
	}

	if err := led.ResetClientBudget(id); err != nil {
		t.Fatalf("ResetClientBudget() error: %v", err)
	}
	c, _ = reg.Get(id)
	if c.Verwendet != 0 {
		t.Errorf("Verwendet = %.2f after reset, want 0", c.Verwendet)
	}

	events, _ := led.EventsForClient(id)
	if len(events) != 2 {
		t.Fatalf("events = %d after reset, want 2", len(events))
	}
	if events[0].Cost+events[1].Cost != 150.0 {
		t.Errorf("event sum = %.2f, want 150.00", events[0].Cost+events[1].Cost)
	}
}
