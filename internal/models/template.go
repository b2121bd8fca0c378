// ABOUTME: WorkoutTemplate catalog entity and category/difficulty enums.
// ABOUTME: Templates are static reference data, never mutated by the engine.
package models

// Category classifies a workout template by training stimulus.
type Category string

const (
	CategoryRecovery  Category = "recovery"
	CategoryMobility  Category = "mobility"
	CategoryBase      Category = "base"
	CategoryLong      Category = "long"
	CategoryTempo     Category = "tempo"
	CategoryThreshold Category = "threshold"
	CategoryIntervals Category = "intervals"
	CategorySpeed     Category = "speed"
	CategoryHills     Category = "hills"
	CategoryStrength  Category = "strength"
)

// HighIntensity reports whether the category is a hard stimulus that the
// selector must withhold when intensity is not allowed.
func (c Category) HighIntensity() bool {
	switch c {
	case CategoryThreshold, CategoryIntervals, CategorySpeed, CategoryHills:
		return true
	}
	return false
}

// Difficulty grades template demand.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IntensityZone names the target heart-rate band for a template.
type IntensityZone string

const (
	ZoneRecovery  IntensityZone = "zone1"
	ZoneEasy      IntensityZone = "zone2"
	ZoneModerate  IntensityZone = "zone3"
	ZoneThreshold IntensityZone = "zone4"
	ZoneMax       IntensityZone = "zone5"
	ZoneRest      IntensityZone = "rest"
)

// WorkoutTemplate describes one prescribable session shape.
type WorkoutTemplate struct {
	ID                   string
	Name                 string
	Category             Category
	Difficulty           Difficulty
	MinDurationMinutes   int
	MaxDurationMinutes   int
	IntensityZone        IntensityZone
	RequiresRecoveryDays int     // rest days needed since last hard session
	MaxPerWeek           int
	EstimatedLoadFactor  float64 // 0.0-1.0 relative session load
	Active               bool
}

// MidDuration returns the midpoint of the template's duration range.
func (t *WorkoutTemplate) MidDuration() int {
	return (t.MinDurationMinutes + t.MaxDurationMinutes) / 2
}
