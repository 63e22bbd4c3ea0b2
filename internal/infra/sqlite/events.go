package sqlite

import (
	"database/sql"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

// ─── Posting Transaction ────────────────────────────────────────────────────

// PostServiceEvent appends a billing event and debits the client's
// consumption counter in ONE transaction. Either both writes commit or
// neither does; a recorded event without its debit (or vice versa) is
// never observable, even on crash between the two statements.
//
// Returns sql.ErrNoRows when the client vanished between lookup and
// posting; any other failure rolls back and surfaces as-is.
func (db *DB) PostServiceEvent(ev domain.ServiceEvent) (int64, error) {
	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO service_events (client_id, caregiver_id, date, kind, hours, rate, cost, receipt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.ClientID, ev.CaregiverID, ev.Date, string(ev.Kind), ev.Hours, ev.Rate, ev.Cost, ev.Receipt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	upd, err := tx.Exec(`
		UPDATE clients SET verwendet = verwendet + ? WHERE id = ?
	`, ev.Cost, ev.ClientID)
	if err != nil {
		return 0, err
	}
	if err := requireRow(upd); err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// ─── Event Queries ──────────────────────────────────────────────────────────

const eventColumns = `id, client_id, caregiver_id, date, kind, hours, rate, cost, receipt`

func scanEvent(rows *sql.Rows) (domain.ServiceEvent, error) {
	var ev domain.ServiceEvent
	var caregiver sql.NullInt64
	var kind string
	err := rows.Scan(&ev.ID, &ev.ClientID, &caregiver, &ev.Date, &kind, &ev.Hours, &ev.Rate, &ev.Cost, &ev.Receipt)
	if err != nil {
		return ev, err
	}
	if caregiver.Valid {
		ev.CaregiverID = &caregiver.Int64
	}
	ev.Kind = domain.ServiceKind(kind)
	return ev, nil
}

// ListServiceEvents returns all events in posting order.
func (db *DB) ListServiceEvents() ([]domain.ServiceEvent, error) {
	return db.queryEvents(`SELECT ` + eventColumns + ` FROM service_events ORDER BY id`)
}

// ListClientEvents returns all events for one client in posting order.
func (db *DB) ListClientEvents(clientID int64) ([]domain.ServiceEvent, error) {
	return db.queryEvents(`SELECT `+eventColumns+` FROM service_events WHERE client_id = ? ORDER BY id`, clientID)
}

func (db *DB) queryEvents(q string, args ...any) ([]domain.ServiceEvent, error) {
	rows, err := db.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ev)
	}
	return result, rows.Err()
}

// CountClientEvents returns the number of events posted for a client.
func (db *DB) CountClientEvents(clientID int64) (int, error) {
	var cnt int
	err := db.db.QueryRow(`
		SELECT COUNT(*) FROM service_events WHERE client_id = ?
	`, clientID).Scan(&cnt)
	return cnt, err
}

// ─── Aggregates ─────────────────────────────────────────────────────────────

// CostByDate groups all events by date, summing cost, ordered by date ascending.
func (db *DB) CostByDate() ([]domain.DateRevenue, error) {
	rows, err := db.db.Query(`
		SELECT date, SUM(cost) FROM service_events GROUP BY date ORDER BY date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DateRevenue
	for rows.Next() {
		var r domain.DateRevenue
		if err := rows.Scan(&r.Date, &r.TotalCost); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// TotalRevenue returns the sum of cost over all events.
func (db *DB) TotalRevenue() (float64, error) {
	var total sql.NullFloat64
	err := db.db.QueryRow(`SELECT SUM(cost) FROM service_events`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}
