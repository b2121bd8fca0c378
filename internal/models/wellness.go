// ABOUTME: WellnessRecord model for the daily subjective questionnaire.
// ABOUTME: Four 1-10 inputs collapsed into a 0-100 wellness score.
package models

import (
	"fmt"
	"math"
	"time"
)

// WellnessRecord is one day's subjective check-in. Soreness and stress
// are "10 is bad" scales; sleep quality and mood are "10 is good".
type WellnessRecord struct {
	Date           time.Time
	SleepQuality   int // 1-10
	MuscleSoreness int // 1-10
	StressLevel    int // 1-10
	Mood           int // 1-10
	WellnessScore  int // 0-100, derived
}

// NewWellnessRecord validates the questionnaire inputs and computes the
// composite score.
func NewWellnessRecord(date time.Time, sleepQuality, soreness, stress, mood int) (*WellnessRecord, error) {
	for _, in := range []struct {
		name  string
		value int
	}{
		{"sleep quality", sleepQuality},
		{"muscle soreness", soreness},
		{"stress level", stress},
		{"mood", mood},
	} {
		if in.value < 1 || in.value > 10 {
			return nil, fmt.Errorf("%s must be between 1 and 10, got %d", in.name, in.value)
		}
	}

	return &WellnessRecord{
		Date:           DateOnly(date),
		SleepQuality:   sleepQuality,
		MuscleSoreness: soreness,
		StressLevel:    stress,
		Mood:           mood,
		WellnessScore:  ComputeWellnessScore(sleepQuality, soreness, stress, mood),
	}, nil
}

// ComputeWellnessScore maps the four 1-10 inputs to a 0-100 score.
// Soreness and stress are inverted so that higher always means better
// before averaging.
func ComputeWellnessScore(sleepQuality, soreness, stress, mood int) int {
	avg := (float64(sleepQuality) + float64(11-soreness) + float64(11-stress) + float64(mood)) / 4.0
	score := int(math.Round((avg - 1) / 9.0 * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
