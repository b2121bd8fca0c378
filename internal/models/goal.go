// ABOUTME: Goal model for the athlete's current training objective.
// ABOUTME: Exactly one active goal drives periodization at a time.
package models

import (
	"time"

	"github.com/google/uuid"
)

// GoalStatus tracks the lifecycle of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// Goal is a dated training objective, e.g. "10k under 50 minutes".
type Goal struct {
	ID          uuid.UUID
	Name        string
	StartDate   time.Time
	TargetDate  Optional[time.Time]
	TargetValue Optional[float64]
	TargetUnit  Optional[string]
	Status      GoalStatus
	CreatedAt   time.Time
}

// NewGoal creates an active goal starting on the given date.
func NewGoal(name string, startDate time.Time) *Goal {
	return &Goal{
		ID:        uuid.New(),
		Name:      name,
		StartDate: DateOnly(startDate),
		Status:    GoalActive,
		CreatedAt: time.Now(),
	}
}

// WithTargetDate sets the date the goal should be achieved by.
func (g *Goal) WithTargetDate(t time.Time) *Goal {
	g.TargetDate = Some(DateOnly(t))
	return g
}

// WithTarget sets a quantitative target, e.g. 50 "minutes".
func (g *Goal) WithTarget(value float64, unit string) *Goal {
	g.TargetValue = Some(value)
	g.TargetUnit = Some(unit)
	return g
}
