// ABOUTME: Snapshot assembly: reads one day's engine inputs in one pass.
// ABOUTME: Missing data loads as nil; the engine degrades, it never errors.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/engine"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/policy"
)

// metricsLookbackDays bounds the recent-metrics window. The readiness
// stale tier only looks back two days, but baselines want a full week.
const metricsLookbackDays = 7

// LoadSnapshot gathers everything the engine needs to evaluate a date.
// An absent goal, metrics record, or wellness record loads as nil.
func (d *DB) LoadSnapshot(date time.Time) (*engine.Snapshot, error) {
	day := models.DateOnly(date)
	snap := &engine.Snapshot{}

	goal, err := d.GetActiveGoal()
	if err != nil && !errors.Is(err, ErrNoActiveGoal) {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap.Goal = goal

	snap.Templates, err = d.ListTemplates(true)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	since := day.AddDate(0, 0, -(policy.ChronicWindowDays + policy.AcuteWindowDays))
	snap.Workouts, err = d.ListWorkouts(since, 0)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	today, err := d.GetDailyMetrics(day)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap.TodayMetrics = today

	snap.RecentMetrics, err = d.ListDailyMetrics(day, metricsLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	wellness, err := d.GetWellness(day)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snap.Wellness = wellness

	return snap, nil
}
