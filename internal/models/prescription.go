// ABOUTME: Prescription output model, the engine's single daily product.
// ABOUTME: Immutable snapshot of template, targets, reasoning, and load context.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AdaptationReason explains why the engine prescribed what it did.
// Factors are ordered by how strongly they influenced the decision.
type AdaptationReason struct {
	Primary     string   `json:"primary"`
	Factors     []string `json:"factors"`
	Explanation string   `json:"explanation"`
}

// LoadContext carries the load numbers the prescription was computed
// against, for display and for auditing a past decision.
type LoadContext struct {
	ACWR             float64 `json:"acwr"`
	RiskLevel        string  `json:"risk_level"`
	WeeklyLoadTarget float64 `json:"weekly_load_target"`
	WeekToDateLoad   float64 `json:"week_to_date_load"`
	LoadRemaining    float64 `json:"load_remaining"`
	Phase            string  `json:"phase"`
	WeekNumber       int     `json:"week_number"`
}

// DayOutlook is one entry of the short-range preview attached to a
// prescription: what the next few days are expected to look like.
type DayOutlook struct {
	Date    string `json:"date"`
	Outlook string `json:"outlook"` // "rest", "easy", or "normal"
}

// Prescription is the engine's output for one date. It is written once;
// regenerating for the same date supersedes the prior record at the
// storage layer, the engine itself never mutates one.
type Prescription struct {
	ID             uuid.UUID        `json:"id"`
	TemplateID     string           `json:"template_id"`
	TemplateName   string           `json:"template_name"`
	Category       Category         `json:"category"`
	ScheduledDate  time.Time        `json:"scheduled_date"`
	ScheduledTime  string           `json:"scheduled_time"` // "HH:MM", informational
	TargetDuration int              `json:"target_duration_minutes"`
	TargetDistance float64          `json:"target_distance_km,omitempty"`
	TargetLoad     float64          `json:"target_load"`
	IntensityZone  IntensityZone    `json:"intensity_zone"`
	TargetHRMin    int              `json:"target_hr_min,omitempty"`
	TargetHRMax    int              `json:"target_hr_max,omitempty"`
	Reason         AdaptationReason `json:"adaptation_reason"`
	ReadinessScore int              `json:"readiness_score"`
	LoadContext    LoadContext      `json:"load_context"`
	Alternatives   []string         `json:"alternatives,omitempty"` // template names, best first
	NextThreeDays  []DayOutlook     `json:"next_three_days,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// RestDay reports whether the prescription is a full rest day.
func (p *Prescription) RestDay() bool {
	return p.IntensityZone == ZoneRest
}
