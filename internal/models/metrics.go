// ABOUTME: DailyMetrics model for device-synced recovery data.
// ABOUTME: One record per date, immutable once written, all fields optional.
package models

import "time"

// HRVStatus is the device-reported HRV classification.
type HRVStatus string

const (
	HRVBalanced   HRVStatus = "balanced"
	HRVLow        HRVStatus = "low"
	HRVUnbalanced HRVStatus = "unbalanced"
	HRVPoor       HRVStatus = "poor"
)

// DailyMetrics holds one day of synced recovery signals. Every field can
// be absent: the watch may not have been worn, or the sync may have run
// before the overnight data landed.
type DailyMetrics struct {
	Date              time.Time
	SleepScore        Optional[float64] // 0-100
	SleepHours        Optional[float64]
	HRVRmssd          Optional[float64] // milliseconds
	HRVStatus         Optional[HRVStatus]
	RestingHeartRate  Optional[float64] // bpm
	BodyBattery       Optional[float64] // 0-100
	TrainingReadiness Optional[float64] // 0-100, device's own estimate
}

// NewDailyMetrics creates an empty record for the given date.
func NewDailyMetrics(date time.Time) *DailyMetrics {
	return &DailyMetrics{Date: DateOnly(date)}
}

// HasCoreData reports whether any of the fields the readiness composite
// uses are present. A record with only, say, TrainingReadiness set still
// counts: the device had contact with the athlete that day.
func (m *DailyMetrics) HasCoreData() bool {
	return m.SleepScore.Has() || m.HRVRmssd.Has() || m.BodyBattery.Has() ||
		m.RestingHeartRate.Has() || m.TrainingReadiness.Has()
}

// DateOnly truncates t to midnight UTC so records key cleanly by day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey formats t as the canonical YYYY-MM-DD storage key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDateKey parses a YYYY-MM-DD storage key.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}
