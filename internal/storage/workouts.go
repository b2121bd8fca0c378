// ABOUTME: Completed workout persistence for SQLite storage.
// ABOUTME: History rows carry the derived load used by the ACWR windows.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// CreateWorkout stores a completed session.
func (d *DB) CreateWorkout(w *models.CompletedWorkout) error {
	query := `
		INSERT INTO workouts
			(id, date, category, difficulty, duration_minutes,
			 avg_heart_rate, max_heart_rate, rpe, load, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	var feedback *string
	if f, ok := w.Feedback.Value(); ok {
		v := string(f)
		feedback = &v
	}
	_, err := d.db.Exec(query,
		w.ID.String(),
		models.DateKey(w.Date),
		string(w.Category),
		string(w.Difficulty),
		w.DurationMinutes,
		w.AvgHeartRate.Ptr(),
		w.MaxHeartRate.Ptr(),
		w.RPE.Ptr(),
		w.Load,
		feedback,
		w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// ListWorkouts returns sessions on or after the given date, newest first.
func (d *DB) ListWorkouts(since time.Time, limit int) ([]*models.CompletedWorkout, error) {
	query := `
		SELECT id, date, category, difficulty, duration_minutes,
		       avg_heart_rate, max_heart_rate, rpe, load, feedback, created_at
		FROM workouts
		WHERE date >= ?
		ORDER BY date DESC, created_at DESC
	`
	args := []interface{}{models.DateKey(since)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.CompletedWorkout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// GetLatestWorkout returns the most recently logged session.
func (d *DB) GetLatestWorkout() (*models.CompletedWorkout, error) {
	query := `
		SELECT id, date, category, difficulty, duration_minutes,
		       avg_heart_rate, max_heart_rate, rpe, load, feedback, created_at
		FROM workouts
		ORDER BY date DESC, created_at DESC
		LIMIT 1
	`
	w, err := scanWorkout(d.db.QueryRow(query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

// SetWorkoutFeedback records the athlete's verdict on a session.
func (d *DB) SetWorkoutFeedback(idOrPrefix string, feedback models.Feedback) error {
	id, err := d.resolveID("workouts", idOrPrefix)
	if err != nil {
		return fmt.Errorf("set workout feedback: %w", err)
	}
	_, err = d.db.Exec(`UPDATE workouts SET feedback = ? WHERE id = ?`, string(feedback), id)
	if err != nil {
		return fmt.Errorf("set workout feedback: %w", err)
	}
	return nil
}

func scanWorkout(row scanner) (*models.CompletedWorkout, error) {
	var w models.CompletedWorkout
	var idStr, dateStr, category, difficulty, createdAt string
	var avgHR, maxHR sql.NullFloat64
	var rpe sql.NullInt64
	var feedback sql.NullString

	err := row.Scan(&idStr, &dateStr, &category, &difficulty, &w.DurationMinutes,
		&avgHR, &maxHR, &rpe, &w.Load, &feedback, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.Date, _ = models.ParseDateKey(dateStr)
	w.Category = models.Category(category)
	w.Difficulty = models.Difficulty(difficulty)
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if avgHR.Valid {
		w.AvgHeartRate = models.Some(avgHR.Float64)
	}
	if maxHR.Valid {
		w.MaxHeartRate = models.Some(maxHR.Float64)
	}
	if rpe.Valid {
		w.RPE = models.Some(int(rpe.Int64))
	}
	if feedback.Valid {
		w.Feedback = models.Some(models.Feedback(feedback.String))
	}
	return &w, nil
}
