// ABOUTME: Goal CRUD operations for SQLite storage.
// ABOUTME: Enforces the single-active-goal rule at write time.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// ErrNoActiveGoal is returned when no goal has active status.
var ErrNoActiveGoal = errors.New("no active goal")

// CreateGoal stores a new goal. Any currently active goal is marked
// completed first so exactly one goal drives planning at a time.
func (d *DB) CreateGoal(g *models.Goal) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if g.Status == models.GoalActive {
		_, err = tx.Exec(`UPDATE goals SET status = ? WHERE status = ?`,
			string(models.GoalCompleted), string(models.GoalActive))
		if err != nil {
			return fmt.Errorf("retire active goal: %w", err)
		}
	}

	var targetDate *string
	if t, ok := g.TargetDate.Value(); ok {
		v := models.DateKey(t)
		targetDate = &v
	}
	_, err = tx.Exec(`
		INSERT INTO goals (id, name, start_date, target_date, target_value, target_unit, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		g.ID.String(),
		g.Name,
		models.DateKey(g.StartDate),
		targetDate,
		g.TargetValue.Ptr(),
		g.TargetUnit.Ptr(),
		string(g.Status),
		g.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}

	return tx.Commit()
}

// GetActiveGoal returns the single active goal, or ErrNoActiveGoal.
func (d *DB) GetActiveGoal() (*models.Goal, error) {
	query := `
		SELECT id, name, start_date, target_date, target_value, target_unit, status, created_at
		FROM goals
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	g, err := scanGoal(d.db.QueryRow(query, string(models.GoalActive)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveGoal
		}
		return nil, err
	}
	return g, nil
}

// ListGoals returns all goals, newest first.
func (d *DB) ListGoals() ([]*models.Goal, error) {
	query := `
		SELECT id, name, start_date, target_date, target_value, target_unit, status, created_at
		FROM goals
		ORDER BY created_at DESC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoalStatus changes a goal's lifecycle status by ID or prefix.
func (d *DB) UpdateGoalStatus(idOrPrefix string, status models.GoalStatus) error {
	id, err := d.resolveID("goals", idOrPrefix)
	if err != nil {
		return fmt.Errorf("update goal status: %w", err)
	}
	_, err = d.db.Exec(`UPDATE goals SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update goal status: %w", err)
	}
	return nil
}

// resolveID finds a full UUID in the named table from a prefix.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM `+table+` WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

func scanGoal(row scanner) (*models.Goal, error) {
	var g models.Goal
	var idStr, startDate, status, createdAt string
	var targetDate, targetUnit sql.NullString
	var targetValue sql.NullFloat64

	err := row.Scan(&idStr, &g.Name, &startDate, &targetDate, &targetValue, &targetUnit, &status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g.ID, _ = uuid.Parse(idStr)
	g.StartDate, _ = models.ParseDateKey(startDate)
	g.Status = models.GoalStatus(status)
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if targetDate.Valid {
		t, err := models.ParseDateKey(targetDate.String)
		if err == nil {
			g.TargetDate = models.Some(t)
		}
	}
	if targetValue.Valid {
		g.TargetValue = models.Some(targetValue.Float64)
	}
	if targetUnit.Valid {
		g.TargetUnit = models.Some(targetUnit.String)
	}
	return &g, nil
}
