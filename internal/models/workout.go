// ABOUTME: CompletedWorkout model for the training history.
// ABOUTME: Each record carries the load value the calculators derived for it.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is the athlete's verdict on a prescribed session.
type Feedback string

const (
	FeedbackTooEasy   Feedback = "too_easy"
	FeedbackJustRight Feedback = "just_right"
	FeedbackTooHard   Feedback = "too_hard"
)

// IsValidFeedback checks a raw feedback string.
func IsValidFeedback(s string) bool {
	switch Feedback(s) {
	case FeedbackTooEasy, FeedbackJustRight, FeedbackTooHard:
		return true
	}
	return false
}

// CompletedWorkout is one finished session in the athlete's history.
type CompletedWorkout struct {
	ID              uuid.UUID
	Date            time.Time
	Category        Category
	Difficulty      Difficulty
	DurationMinutes int
	AvgHeartRate    Optional[float64]
	MaxHeartRate    Optional[float64]
	RPE             Optional[int] // session rating of perceived exertion, 1-10
	Load            float64       // derived training load (TRIMP or session-RPE)
	Feedback        Optional[Feedback]
	CreatedAt       time.Time
}

// NewCompletedWorkout creates a history record for the given session.
func NewCompletedWorkout(date time.Time, category Category, difficulty Difficulty, durationMinutes int) *CompletedWorkout {
	return &CompletedWorkout{
		ID:              uuid.New(),
		Date:            DateOnly(date),
		Category:        category,
		Difficulty:      difficulty,
		DurationMinutes: durationMinutes,
		CreatedAt:       time.Now(),
	}
}

// WithHeartRates sets the session's average and max heart rate.
func (w *CompletedWorkout) WithHeartRates(avg, max float64) *CompletedWorkout {
	w.AvgHeartRate = Some(avg)
	w.MaxHeartRate = Some(max)
	return w
}

// WithRPE sets the session rating of perceived exertion.
func (w *CompletedWorkout) WithRPE(rpe int) *CompletedWorkout {
	w.RPE = Some(rpe)
	return w
}

// Hard reports whether the session counts as a hard effort for recovery
// spacing purposes.
func (w *CompletedWorkout) Hard() bool {
	return w.Category.HighIntensity() || w.Difficulty == DifficultyAdvanced
}
