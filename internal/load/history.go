// ABOUTME: TrainingHistory derivation from the completed-workout log.
// ABOUTME: Builds the rolling-window load series the engine consumes.
package load

import (
	"time"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/policy"
)

// TrainingHistory is the derived load picture for one evaluation date.
// It is computed fresh from the workout log, never stored.
type TrainingHistory struct {
	ACWR                 ACWRResult
	Monotony             float64
	Strain               float64
	WeekToDateLoad       float64
	DaysSinceLastWorkout models.Optional[int]
	DaysSinceLastHard    models.Optional[int]
	RecentCategories     []models.Category // categories seen in the acute window
	WeeklyLoads          []float64         // historical week sums, oldest first
}

// DeriveHistory computes the training history as of date from completed
// workouts. Workouts after date are ignored so that re-evaluating a past
// day gives the answer that day would have gotten.
func DeriveHistory(workouts []*models.CompletedWorkout, date time.Time) TrainingHistory {
	date = models.DateOnly(date)

	daily := make(map[string]float64)
	weekly := make(map[string]float64)
	var firstWeek, lastWeek string

	var h TrainingHistory
	for _, w := range workouts {
		if w.Date.After(date) {
			continue
		}

		key := models.DateKey(w.Date)
		daily[key] += w.Load

		wk := models.DateKey(weekStart(w.Date))
		weekly[wk] += w.Load
		if firstWeek == "" || wk < firstWeek {
			firstWeek = wk
		}
		if wk > lastWeek {
			lastWeek = wk
		}

		age := int(date.Sub(w.Date).Hours() / 24)
		if days, ok := h.DaysSinceLastWorkout.Value(); !ok || age < days {
			h.DaysSinceLastWorkout = models.Some(age)
		}
		if w.Hard() {
			if days, ok := h.DaysSinceLastHard.Value(); !ok || age < days {
				h.DaysSinceLastHard = models.Some(age)
			}
		}
		if age < policy.AcuteWindowDays {
			h.RecentCategories = append(h.RecentCategories, w.Category)
		}
	}

	acute := dailySeries(daily, date, policy.AcuteWindowDays)
	chronic := dailySeries(daily, date, policy.ChronicWindowDays)

	h.ACWR = ACWR(acute, chronic)
	h.Monotony = Monotony(acute)
	h.Strain = Strain(acute)

	for d := weekStart(date); !d.After(date); d = d.AddDate(0, 0, 1) {
		h.WeekToDateLoad += daily[models.DateKey(d)]
	}

	if firstWeek != "" {
		start, _ := models.ParseDateKey(firstWeek)
		end, _ := models.ParseDateKey(lastWeek)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
			h.WeeklyLoads = append(h.WeeklyLoads, weekly[models.DateKey(d)])
		}
	}

	return h
}

// dailySeries returns the last n daily load sums ending at date, zeros
// filled in for rest days.
func dailySeries(daily map[string]float64, date time.Time, n int) []float64 {
	series := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := date.AddDate(0, 0, -i)
		series = append(series, daily[models.DateKey(d)])
	}
	return series
}

// weekStart returns the Monday of t's week.
func weekStart(t time.Time) time.Time {
	t = models.DateOnly(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
