// ABOUTME: Prescription persistence for SQLite storage.
// ABOUTME: One row per scheduled date; regeneration supersedes the old row.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/models"
)

// SavePrescription stores a prescription, replacing any existing one for
// the same scheduled date. CreatedAt is stamped here if the engine left
// it zero so regeneration stays byte-identical upstream.
func (d *DB) SavePrescription(p *models.Prescription) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prescription: %w", err)
	}

	query := `
		INSERT INTO prescriptions (id, scheduled_date, payload, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scheduled_date) DO UPDATE SET
			id = excluded.id,
			payload = excluded.payload,
			created_at = excluded.created_at
	`
	_, err = d.db.Exec(query,
		p.ID.String(),
		models.DateKey(p.ScheduledDate),
		string(payload),
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save prescription: %w", err)
	}
	return nil
}

// GetPrescription retrieves the prescription for a date.
func (d *DB) GetPrescription(date time.Time) (*models.Prescription, error) {
	var payload string
	err := d.db.QueryRow(
		`SELECT payload FROM prescriptions WHERE scheduled_date = ?`,
		models.DateKey(date),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return unmarshalPrescription(payload)
}

// ListPrescriptions returns stored prescriptions, newest first.
func (d *DB) ListPrescriptions(limit int) ([]*models.Prescription, error) {
	query := `SELECT payload FROM prescriptions ORDER BY scheduled_date DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []*models.Prescription
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		p, err := unmarshalPrescription(payload)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func unmarshalPrescription(payload string) (*models.Prescription, error) {
	var p models.Prescription
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("unmarshal prescription: %w", err)
	}
	return &p, nil
}
