package domain

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers. The application
// services implement them; the API and CLI depend only on these.

// ClientRegistry owns client records, the caregiver directory, and the
// consumption counter of each client.
type ClientRegistry interface {
	Create(name string, careLevel int, entlastung, verhinderung float64) (int64, error)
	Get(id int64) (Client, error)
	List() ([]Client, error)
	Debit(id int64, amount float64) error
	ResetConsumption(id int64) error

	AddCaregiver(name, qualification string) (int64, error)
	Caregivers() ([]Caregiver, error)
	RecordVacation(id int64, days float64) error
}

// BillingLedger records service events, debits the owning client's budget
// depot, and produces the aggregates behind reporting.
type BillingLedger interface {
	PostEvent(req PostRequest) (ServiceEvent, error)
	ResetClientBudget(clientID int64) error
	Events() ([]ServiceEvent, error)
	EventsForClient(clientID int64) ([]ServiceEvent, error)
	AggregateByDate() ([]DateRevenue, error)
	TotalRevenue() (float64, error)
}

// PostRequest carries the inputs of one billing posting.
// Cost is never part of the request; it is derived from Hours*Rate.
type PostRequest struct {
	ClientID    int64
	CaregiverID *int64
	Date        string // DateLayout; empty means today
	Kind        ServiceKind
	Hours       float64
	Rate        float64
}
