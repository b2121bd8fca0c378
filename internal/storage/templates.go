// ABOUTME: Workout template catalog storage and default seed data.
// ABOUTME: Templates are reference data; the seed only fills an empty table.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/coach/internal/models"
)

// defaultTemplates is the starter catalog seeded into an empty database.
// Users can deactivate or extend it; the engine only sees active rows.
var defaultTemplates = []models.WorkoutTemplate{
	{ID: "recovery-spin", Name: "Recovery Spin", Category: models.CategoryRecovery, Difficulty: models.DifficultyBeginner, MinDurationMinutes: 20, MaxDurationMinutes: 40, IntensityZone: models.ZoneRecovery, EstimatedLoadFactor: 0.2, Active: true},
	{ID: "mobility-flow", Name: "Mobility Flow", Category: models.CategoryMobility, Difficulty: models.DifficultyBeginner, MinDurationMinutes: 15, MaxDurationMinutes: 30, IntensityZone: models.ZoneRecovery, EstimatedLoadFactor: 0.1, Active: true},
	{ID: "easy-run", Name: "Easy Run", Category: models.CategoryBase, Difficulty: models.DifficultyBeginner, MinDurationMinutes: 30, MaxDurationMinutes: 50, IntensityZone: models.ZoneEasy, EstimatedLoadFactor: 0.4, Active: true},
	{ID: "long-run", Name: "Long Run", Category: models.CategoryLong, Difficulty: models.DifficultyIntermediate, MinDurationMinutes: 60, MaxDurationMinutes: 120, IntensityZone: models.ZoneEasy, MaxPerWeek: 1, EstimatedLoadFactor: 0.7, Active: true},
	{ID: "tempo-run", Name: "Tempo Run", Category: models.CategoryTempo, Difficulty: models.DifficultyIntermediate, MinDurationMinutes: 40, MaxDurationMinutes: 60, IntensityZone: models.ZoneModerate, RequiresRecoveryDays: 1, MaxPerWeek: 2, EstimatedLoadFactor: 0.6, Active: true},
	{ID: "threshold-repeats", Name: "Threshold Repeats", Category: models.CategoryThreshold, Difficulty: models.DifficultyIntermediate, MinDurationMinutes: 40, MaxDurationMinutes: 60, IntensityZone: models.ZoneThreshold, RequiresRecoveryDays: 2, MaxPerWeek: 1, EstimatedLoadFactor: 0.8, Active: true},
	{ID: "vo2-intervals", Name: "VO2max Intervals", Category: models.CategoryIntervals, Difficulty: models.DifficultyAdvanced, MinDurationMinutes: 35, MaxDurationMinutes: 55, IntensityZone: models.ZoneMax, RequiresRecoveryDays: 2, MaxPerWeek: 1, EstimatedLoadFactor: 0.9, Active: true},
	{ID: "hill-repeats", Name: "Hill Repeats", Category: models.CategoryHills, Difficulty: models.DifficultyIntermediate, MinDurationMinutes: 35, MaxDurationMinutes: 50, IntensityZone: models.ZoneThreshold, RequiresRecoveryDays: 2, MaxPerWeek: 1, EstimatedLoadFactor: 0.8, Active: true},
	{ID: "strides", Name: "Strides Session", Category: models.CategorySpeed, Difficulty: models.DifficultyIntermediate, MinDurationMinutes: 30, MaxDurationMinutes: 45, IntensityZone: models.ZoneMax, RequiresRecoveryDays: 1, MaxPerWeek: 2, EstimatedLoadFactor: 0.6, Active: true},
	{ID: "strength-circuit", Name: "Strength Circuit", Category: models.CategoryStrength, Difficulty: models.DifficultyIntermediate, MinDurationMinutes: 30, MaxDurationMinutes: 45, IntensityZone: models.ZoneModerate, MaxPerWeek: 2, EstimatedLoadFactor: 0.5, Active: true},
}

// seedTemplates inserts the default catalog if the table is empty.
func (d *DB) seedTemplates() error {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM templates`).Scan(&count); err != nil {
		return fmt.Errorf("count templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range defaultTemplates {
		if err := d.insertTemplate(&defaultTemplates[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) insertTemplate(t *models.WorkoutTemplate) error {
	query := `
		INSERT INTO templates
			(id, name, category, difficulty, min_duration_minutes, max_duration_minutes,
			 intensity_zone, requires_recovery_days, max_per_week, estimated_load_factor, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		t.ID,
		t.Name,
		string(t.Category),
		string(t.Difficulty),
		t.MinDurationMinutes,
		t.MaxDurationMinutes,
		string(t.IntensityZone),
		t.RequiresRecoveryDays,
		t.MaxPerWeek,
		t.EstimatedLoadFactor,
		boolToInt(t.Active),
	)
	if err != nil {
		return fmt.Errorf("insert template %s: %w", t.ID, err)
	}
	return nil
}

// ListTemplates returns the catalog, optionally only active entries,
// ordered by ID for stable output.
func (d *DB) ListTemplates(activeOnly bool) ([]*models.WorkoutTemplate, error) {
	query := `
		SELECT id, name, category, difficulty, min_duration_minutes, max_duration_minutes,
		       intensity_zone, requires_recovery_days, max_per_week, estimated_load_factor, active
		FROM templates
	`
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id"

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.WorkoutTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetTemplate retrieves a template by exact ID.
func (d *DB) GetTemplate(id string) (*models.WorkoutTemplate, error) {
	query := `
		SELECT id, name, category, difficulty, min_duration_minutes, max_duration_minutes,
		       intensity_zone, requires_recovery_days, max_per_week, estimated_load_factor, active
		FROM templates
		WHERE id = ?
	`
	t, err := scanTemplate(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTemplate(row scanner) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	var category, difficulty, zone string
	var active int

	err := row.Scan(&t.ID, &t.Name, &category, &difficulty,
		&t.MinDurationMinutes, &t.MaxDurationMinutes, &zone,
		&t.RequiresRecoveryDays, &t.MaxPerWeek, &t.EstimatedLoadFactor, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}

	t.Category = models.Category(category)
	t.Difficulty = models.Difficulty(difficulty)
	t.IntensityZone = models.IntensityZone(zone)
	t.Active = active != 0
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
