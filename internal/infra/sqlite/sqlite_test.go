package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ─── Clients ────────────────────────────────────────────────────────────────

func TestInsertAndGetClient(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertClient("Anna Schmidt", 2, 125.0, 1612.0)
	if err != nil {
		t.Fatalf("InsertClient() error: %v", err)
	}

	c, err := db.GetClient(id)
	if err != nil {
		t.Fatalf("GetClient() error: %v", err)
	}
	if c.Name != "Anna Schmidt" {
		t.Errorf("Name = %q, want %q", c.Name, "Anna Schmidt")
	}
	if c.CareLevel != 2 {
		t.Errorf("CareLevel = %d, want 2", c.CareLevel)
	}
	if c.Verwendet != 0 {
		t.Errorf("Verwendet = %.2f, want 0", c.Verwendet)
	}
}

func TestGetClient_Missing(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetClient(999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetClient(999) error = %v, want sql.ErrNoRows", err)
	}
}

func TestClientIDsMonotonic(t *testing.T) {
	db := newTestDB(t)
	first, _ := db.InsertClient("A", 1, 0, 0)
	second, _ := db.InsertClient("B", 1, 0, 0)
	if second != first+1 {
		t.Errorf("ids = %d, %d, want consecutive", first, second)
	}
}

func TestListClients_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	db.InsertClient("First", 1, 100, 0)
	db.InsertClient("Second", 2, 200, 0)
	db.InsertClient("Third", 3, 300, 0)

	clients, err := db.ListClients()
	if err != nil {
		t.Fatalf("ListClients() error: %v", err)
	}
	if len(clients) != 3 {
		t.Fatalf("ListClients() returned %d, want 3", len(clients))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if clients[i].Name != want {
			t.Errorf("clients[%d].Name = %q, want %q", i, clients[i].Name, want)
		}
	}
}

func TestDebitClient(t *testing.T) {
	db := newTestDB(t)
	id, _ := db.InsertClient("Anna", 2, 125, 1612)

	if err := db.DebitClient(id, 50); err != nil {
		t.Fatalf("DebitClient() error: %v", err)
	}
	if err := db.DebitClient(id, 25.5); err != nil {
		t.Fatalf("DebitClient() error: %v", err)
	}

	c, _ := db.GetClient(id)
	if c.Verwendet != 75.5 {
		t.Errorf("Verwendet = %.2f, want 75.50", c.Verwendet)
	}
}

func TestDebitClient_Missing(t *testing.T) {
	db := newTestDB(t)
	err := db.DebitClient(42, 10)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("DebitClient(42) error = %v, want sql.ErrNoRows", err)
	}
}

func TestResetClientConsumption_Idempotent(t *testing.T) {
	db := newTestDB(t)
	id, _ := db.InsertClient("Anna", 2, 125, 1612)
	db.DebitClient(id, 500)

	if err := db.ResetClientConsumption(id); err != nil {
		t.Fatalf("ResetClientConsumption() error: %v", err)
	}
	if err := db.ResetClientConsumption(id); err != nil {
		t.Fatalf("second ResetClientConsumption() error: %v", err)
	}

	c, _ := db.GetClient(id)
	if c.Verwendet != 0 {
		t.Errorf("Verwendet = %.2f, want 0", c.Verwendet)
	}
}

// ─── Caregivers ─────────────────────────────────────────────────────────────

func TestCaregivers(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertCaregiver("Maria Weber", "Pflegefachkraft")
	if err != nil {
		t.Fatalf("InsertCaregiver() error: %v", err)
	}

	if err := db.AddCaregiverVacation(id, 2.5); err != nil {
		t.Fatalf("AddCaregiverVacation() error: %v", err)
	}

	cg, err := db.GetCaregiver(id)
	if err != nil {
		t.Fatalf("GetCaregiver() error: %v", err)
	}
	if cg.Qualification != "Pflegefachkraft" {
		t.Errorf("Qualification = %q", cg.Qualification)
	}
	if cg.VacationDays != 2.5 {
		t.Errorf("VacationDays = %.1f, want 2.5", cg.VacationDays)
	}

	all, err := db.ListCaregivers()
	if err != nil {
		t.Fatalf("ListCaregivers() error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ListCaregivers() returned %d, want 1", len(all))
	}
}

// ─── Posting Transaction ────────────────────────────────────────────────────

func TestPostServiceEvent(t *testing.T) {
	db := newTestDB(t)
	clientID, _ := db.InsertClient("Anna", 2, 125, 1612)

	ev := domain.ServiceEvent{
		ClientID: clientID,
		Date:     "2026-08-01",
		Kind:     domain.KindHouseholdHelp,
		Hours:    2,
		Rate:     25,
		Cost:     50,
		Receipt:  "r-1",
	}
	id, err := db.PostServiceEvent(ev)
	if err != nil {
		t.Fatalf("PostServiceEvent() error: %v", err)
	}
	if id == 0 {
		t.Error("event id = 0, want > 0")
	}

	// Both writes visible
	c, _ := db.GetClient(clientID)
	if c.Verwendet != 50 {
		t.Errorf("Verwendet = %.2f, want 50.00", c.Verwendet)
	}
	events, _ := db.ListClientEvents(clientID)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Cost != 50 || events[0].Kind != domain.KindHouseholdHelp {
		t.Errorf("event = %+v", events[0])
	}
}

func TestPostServiceEvent_MissingClientRollsBack(t *testing.T) {
	db := newTestDB(t)

	ev := domain.ServiceEvent{
		ClientID: 777,
		Date:     "2026-08-01",
		Kind:     domain.KindRespiteCare,
		Hours:    1,
		Rate:     30,
		Cost:     30,
		Receipt:  "r-orphan",
	}
	_, err := db.PostServiceEvent(ev)
	if err == nil {
		t.Fatal("PostServiceEvent() for missing client should fail")
	}

	// The rolled-back insert must leave no trace.
	events, err := db.ListServiceEvents()
	if err != nil {
		t.Fatalf("ListServiceEvents() error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d after rollback, want 0", len(events))
	}
}

func TestPostServiceEvent_DuplicateReceiptRollsBack(t *testing.T) {
	db := newTestDB(t)
	clientID, _ := db.InsertClient("Anna", 2, 125, 1612)

	ev := domain.ServiceEvent{ClientID: clientID, Date: "2026-08-01", Kind: domain.KindHouseholdHelp, Hours: 1, Rate: 25, Cost: 25, Receipt: "same"}
	if _, err := db.PostServiceEvent(ev); err != nil {
		t.Fatalf("first PostServiceEvent() error: %v", err)
	}
	if _, err := db.PostServiceEvent(ev); err == nil {
		t.Fatal("duplicate receipt should fail")
	}

	// Counter reflects only the committed posting.
	c, _ := db.GetClient(clientID)
	if c.Verwendet != 25 {
		t.Errorf("Verwendet = %.2f, want 25.00", c.Verwendet)
	}
}

// ─── Aggregates ─────────────────────────────────────────────────────────────

func TestCostByDate(t *testing.T) {
	db := newTestDB(t)
	clientID, _ := db.InsertClient("Anna", 2, 125, 1612)

	post := func(date string, cost, hours float64, receipt string) {
		t.Helper()
		_, err := db.PostServiceEvent(domain.ServiceEvent{
			ClientID: clientID, Date: date, Kind: domain.KindGroceryAssistance,
			Hours: hours, Rate: cost / hours, Cost: cost, Receipt: receipt,
		})
		if err != nil {
			t.Fatalf("PostServiceEvent(%s) error: %v", date, err)
		}
	}
	post("2026-08-02", 100, 4, "r1")
	post("2026-08-01", 50, 2, "r2")
	post("2026-08-02", 25, 1, "r3")

	daily, err := db.CostByDate()
	if err != nil {
		t.Fatalf("CostByDate() error: %v", err)
	}
	if len(daily) != 2 {
		t.Fatalf("CostByDate() returned %d rows, want 2", len(daily))
	}
	if daily[0].Date != "2026-08-01" || daily[0].TotalCost != 50 {
		t.Errorf("daily[0] = %+v, want 2026-08-01/50.00", daily[0])
	}
	if daily[1].Date != "2026-08-02" || daily[1].TotalCost != 125 {
		t.Errorf("daily[1] = %+v, want 2026-08-02/125.00", daily[1])
	}

	// Aggregate rows sum to total revenue.
	total, err := db.TotalRevenue()
	if err != nil {
		t.Fatalf("TotalRevenue() error: %v", err)
	}
	var sum float64
	for _, row := range daily {
		sum += row.TotalCost
	}
	if sum != total {
		t.Errorf("sum of daily = %.2f, TotalRevenue = %.2f", sum, total)
	}
}

func TestTotalRevenue_Empty(t *testing.T) {
	db := newTestDB(t)
	total, err := db.TotalRevenue()
	if err != nil {
		t.Fatalf("TotalRevenue() error: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalRevenue() = %.2f on empty ledger, want 0", total)
	}
}
