package sqlite

import (
	"database/sql"

	"github.com/pflegedesk/pflegedesk/internal/domain"
)

// ─── Client Operations ──────────────────────────────────────────────────────

// InsertClient persists a new client with verwendet = 0 and returns its id.
// Ids are AUTOINCREMENT: monotonic and never reused.
func (db *DB) InsertClient(name string, careLevel int, entlastung, verhinderung float64) (int64, error) {
	res, err := db.db.Exec(`
		INSERT INTO clients (name, care_level, entlastung_budget, verhinderung_budget, verwendet)
		VALUES (?, ?, ?, ?, 0)
	`, name, careLevel, entlastung, verhinderung)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetClient retrieves a client by id. Returns sql.ErrNoRows when absent.
func (db *DB) GetClient(id int64) (domain.Client, error) {
	var c domain.Client
	err := db.db.QueryRow(`
		SELECT id, name, care_level, entlastung_budget, verhinderung_budget, verwendet
		FROM clients WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.CareLevel, &c.EntlastungsBudget, &c.VerhinderungsBudget, &c.Verwendet)
	return c, err
}

// ListClients returns all clients in insertion order.
func (db *DB) ListClients() ([]domain.Client, error) {
	rows, err := db.db.Query(`
		SELECT id, name, care_level, entlastung_budget, verhinderung_budget, verwendet
		FROM clients ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CareLevel, &c.EntlastungsBudget, &c.VerhinderungsBudget, &c.Verwendet); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// DebitClient increases a client's consumption counter.
// Returns sql.ErrNoRows when the client does not exist.
func (db *DB) DebitClient(id int64, amount float64) error {
	res, err := db.db.Exec(`
		UPDATE clients SET verwendet = verwendet + ? WHERE id = ?
	`, amount, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ResetClientConsumption zeroes a client's consumption counter.
// Idempotent: resetting an already-zero counter is a no-op.
// Returns sql.ErrNoRows when the client does not exist.
func (db *DB) ResetClientConsumption(id int64) error {
	res, err := db.db.Exec(`
		UPDATE clients SET verwendet = 0 WHERE id = ?
	`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow converts a zero-row UPDATE into sql.ErrNoRows so callers can
// distinguish "missing record" from a successful no-op write.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
