// ABOUTME: Repository interface for training data storage.
// ABOUTME: Defines the contract the prescription engine reads through.
package storage

import (
	"time"

	"github.com/harperreed/coach/internal/engine"
	"github.com/harperreed/coach/internal/models"
)

// Repository defines the storage interface for training data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Daily metrics operations
	InsertDailyMetrics(m *models.DailyMetrics) error
	GetDailyMetrics(date time.Time) (*models.DailyMetrics, error)
	ListDailyMetrics(before time.Time, limit int) ([]*models.DailyMetrics, error)

	// Wellness operations
	UpsertWellness(w *models.WellnessRecord) error
	GetWellness(date time.Time) (*models.WellnessRecord, error)

	// Goal operations
	CreateGoal(g *models.Goal) error
	GetActiveGoal() (*models.Goal, error)
	ListGoals() ([]*models.Goal, error)
	UpdateGoalStatus(idOrPrefix string, status models.GoalStatus) error

	// Template operations
	ListTemplates(activeOnly bool) ([]*models.WorkoutTemplate, error)
	GetTemplate(id string) (*models.WorkoutTemplate, error)

	// Workout operations
	CreateWorkout(w *models.CompletedWorkout) error
	ListWorkouts(since time.Time, limit int) ([]*models.CompletedWorkout, error)
	GetLatestWorkout() (*models.CompletedWorkout, error)
	SetWorkoutFeedback(idOrPrefix string, feedback models.Feedback) error

	// Prescription operations
	SavePrescription(p *models.Prescription) error
	GetPrescription(date time.Time) (*models.Prescription, error)
	ListPrescriptions(limit int) ([]*models.Prescription, error)

	// Snapshot
	LoadSnapshot(date time.Time) (*engine.Snapshot, error)

	// Lifecycle
	Close() error
}
