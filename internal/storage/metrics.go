// ABOUTME: Daily metrics and wellness persistence for SQLite storage.
// ABOUTME: Metrics are write-once per date; wellness re-submission replaces the day.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/models"
)

// ErrMetricsExist is returned when a metrics record already exists for
// the date. Daily metrics are immutable once written.
var ErrMetricsExist = errors.New("metrics already recorded for date")

// InsertDailyMetrics stores a synced metrics record. The first record
// for a date wins; a later insert for the same date is rejected with
// ErrMetricsExist rather than mutating history.
func (d *DB) InsertDailyMetrics(m *models.DailyMetrics) error {
	query := `
		INSERT INTO daily_metrics
			(date, sleep_score, sleep_hours, hrv_rmssd, hrv_status,
			 resting_heart_rate, body_battery, training_readiness)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO NOTHING
	`
	var hrvStatus *string
	if s, ok := m.HRVStatus.Value(); ok {
		v := string(s)
		hrvStatus = &v
	}
	res, err := d.db.Exec(query,
		models.DateKey(m.Date),
		m.SleepScore.Ptr(),
		m.SleepHours.Ptr(),
		m.HRVRmssd.Ptr(),
		hrvStatus,
		m.RestingHeartRate.Ptr(),
		m.BodyBattery.Ptr(),
		m.TrainingReadiness.Ptr(),
	)
	if err != nil {
		return fmt.Errorf("insert daily metrics: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert daily metrics: %w", err)
	}
	if n == 0 {
		return ErrMetricsExist
	}
	return nil
}

// GetDailyMetrics retrieves the metrics record for a date.
func (d *DB) GetDailyMetrics(date time.Time) (*models.DailyMetrics, error) {
	query := `
		SELECT date, sleep_score, sleep_hours, hrv_rmssd, hrv_status,
		       resting_heart_rate, body_battery, training_readiness
		FROM daily_metrics
		WHERE date = ?
	`
	m, err := scanDailyMetrics(d.db.QueryRow(query, models.DateKey(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListDailyMetrics retrieves up to limit records strictly before the
// given date, newest first.
func (d *DB) ListDailyMetrics(before time.Time, limit int) ([]*models.DailyMetrics, error) {
	query := `
		SELECT date, sleep_score, sleep_hours, hrv_rmssd, hrv_status,
		       resting_heart_rate, body_battery, training_readiness
		FROM daily_metrics
		WHERE date < ?
		ORDER BY date DESC
	`
	args := []interface{}{models.DateKey(before)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list daily metrics: %w", err)
	}
	defer rows.Close()

	var records []*models.DailyMetrics
	for rows.Next() {
		m, err := scanDailyMetrics(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// UpsertWellness stores a questionnaire record, replacing any prior
// submission for the same date.
func (d *DB) UpsertWellness(w *models.WellnessRecord) error {
	query := `
		INSERT INTO wellness
			(date, sleep_quality, muscle_soreness, stress_level, mood, wellness_score)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			sleep_quality = excluded.sleep_quality,
			muscle_soreness = excluded.muscle_soreness,
			stress_level = excluded.stress_level,
			mood = excluded.mood,
			wellness_score = excluded.wellness_score,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := d.db.Exec(query,
		models.DateKey(w.Date),
		w.SleepQuality,
		w.MuscleSoreness,
		w.StressLevel,
		w.Mood,
		w.WellnessScore,
	)
	if err != nil {
		return fmt.Errorf("upsert wellness: %w", err)
	}
	return nil
}

// GetWellness retrieves the questionnaire record for a date.
func (d *DB) GetWellness(date time.Time) (*models.WellnessRecord, error) {
	query := `
		SELECT date, sleep_quality, muscle_soreness, stress_level, mood, wellness_score
		FROM wellness
		WHERE date = ?
	`
	var w models.WellnessRecord
	var dateStr string
	err := d.db.QueryRow(query, models.DateKey(date)).Scan(
		&dateStr,
		&w.SleepQuality,
		&w.MuscleSoreness,
		&w.StressLevel,
		&w.Mood,
		&w.WellnessScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get wellness: %w", err)
	}
	w.Date, _ = models.ParseDateKey(dateStr)
	return &w, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDailyMetrics(row scanner) (*models.DailyMetrics, error) {
	var dateStr string
	var sleepScore, sleepHours, hrvRmssd, restingHR, bodyBattery, trainingReadiness *float64
	var hrvStatus *string

	err := row.Scan(&dateStr, &sleepScore, &sleepHours, &hrvRmssd, &hrvStatus,
		&restingHR, &bodyBattery, &trainingReadiness)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan daily metrics: %w", err)
	}

	date, err := models.ParseDateKey(dateStr)
	if err != nil {
		return nil, fmt.Errorf("scan daily metrics: %w", err)
	}

	m := models.NewDailyMetrics(date)
	m.SleepScore = models.FromPtr(sleepScore)
	m.SleepHours = models.FromPtr(sleepHours)
	m.HRVRmssd = models.FromPtr(hrvRmssd)
	if hrvStatus != nil {
		m.HRVStatus = models.Some(models.HRVStatus(*hrvStatus))
	}
	m.RestingHeartRate = models.FromPtr(restingHR)
	m.BodyBattery = models.FromPtr(bodyBattery)
	m.TrainingReadiness = models.FromPtr(trainingReadiness)
	return m, nil
}
