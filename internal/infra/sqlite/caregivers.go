package sqlite

import (
	"github.com/pflegedesk/pflegedesk/internal/domain"
)

// ─── Caregiver Operations ───────────────────────────────────────────────────

// InsertCaregiver persists a new caregiver and returns its id.
func (db *DB) InsertCaregiver(name, qualification string) (int64, error) {
	res, err := db.db.Exec(`
		INSERT INTO caregivers (name, qualification) VALUES (?, ?)
	`, name, qualification)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetCaregiver retrieves a caregiver by id. Returns sql.ErrNoRows when absent.
func (db *DB) GetCaregiver(id int64) (domain.Caregiver, error) {
	var cg domain.Caregiver
	err := db.db.QueryRow(`
		SELECT id, name, qualification, vacation_days FROM caregivers WHERE id = ?
	`, id).Scan(&cg.ID, &cg.Name, &cg.Qualification, &cg.VacationDays)
	return cg, err
}

// ListCaregivers returns all caregivers in insertion order.
func (db *DB) ListCaregivers() ([]domain.Caregiver, error) {
	rows, err := db.db.Query(`
		SELECT id, name, qualification, vacation_days FROM caregivers ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Caregiver
	for rows.Next() {
		var cg domain.Caregiver
		if err := rows.Scan(&cg.ID, &cg.Name, &cg.Qualification, &cg.VacationDays); err != nil {
			return nil, err
		}
		result = append(result, cg)
	}
	return result, rows.Err()
}

// AddCaregiverVacation accrues vacation days for a caregiver.
// Returns sql.ErrNoRows when the caregiver does not exist.
func (db *DB) AddCaregiverVacation(id int64, days float64) error {
	res, err := db.db.Exec(`
		UPDATE caregivers SET vacation_days = vacation_days + ? WHERE id = ?
	`, days, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
