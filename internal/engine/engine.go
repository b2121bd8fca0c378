// ABOUTME: PrescriptionOrchestrator: composes load, plan, readiness, gate,
// ABOUTME: and selector into one deterministic daily prescription.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/coach/internal/load"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/plan"
	"github.com/harperreed/coach/internal/policy"
	"github.com/harperreed/coach/internal/readiness"
)

// Configuration problems are fatal: the caller must not synthesize a
// prescription around them. Data problems never surface as errors; they
// degrade into conservative prescriptions instead.
var (
	ErrNoActiveGoal = errors.New("no active goal")
	ErrEmptyCatalog = errors.New("workout template catalog is empty")
	ErrNoCandidates = errors.New("no candidate templates remain after filtering")
)

// Snapshot is the read-only input bundle for one evaluation. The storage
// layer assembles it; the engine never touches storage itself.
type Snapshot struct {
	Goal          *models.Goal
	Templates     []*models.WorkoutTemplate
	Workouts      []*models.CompletedWorkout
	TodayMetrics  *models.DailyMetrics
	RecentMetrics []*models.DailyMetrics // prior records, newest first
	Wellness      *models.WellnessRecord
}

// scheduledTime is the informational default start-of-day slot.
const scheduledTime = "07:00"

// evalContext carries the derived state every gate and the selector read.
type evalContext struct {
	date    time.Time
	snap    *Snapshot
	profile models.AthleteProfile
	history load.TrainingHistory
	phase   plan.Phase
	score   readiness.Score
	active  []*models.WorkoutTemplate
}

// Prescribe turns one day's snapshot into a Prescription. The function
// is pure: identical inputs produce identical outputs, including the ID,
// so re-running a date is an idempotent upsert at the storage layer.
func Prescribe(date time.Time, snap *Snapshot, profile models.AthleteProfile) (*models.Prescription, error) {
	if snap == nil || snap.Goal == nil || snap.Goal.Status != models.GoalActive {
		return nil, ErrNoActiveGoal
	}

	active := make([]*models.WorkoutTemplate, 0, len(snap.Templates))
	for _, t := range snap.Templates {
		if t.Active {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil, ErrEmptyCatalog
	}

	date = models.DateOnly(date)
	history := load.DeriveHistory(snap.Workouts, date)
	phase := plan.Compute(snap.Goal, date, history.WeeklyLoads)
	score := readiness.Assess(readiness.Input{
		Date:     date,
		Today:    snap.TodayMetrics,
		Recent:   snap.RecentMetrics,
		Wellness: snap.Wellness,
	})

	ctx := &evalContext{
		date:    date,
		snap:    snap,
		profile: profile,
		history: history,
		phase:   phase,
		score:   score,
		active:  active,
	}

	// The safety gate runs strictly before template scoring; the first
	// rule that trips returns a complete prescription.
	for _, rule := range gateRules {
		if rule.trips(ctx) {
			return rule.build(ctx), nil
		}
	}

	winner, alternatives, err := selectTemplate(ctx)
	if err != nil {
		return nil, err
	}

	return buildPrescription(ctx, winner, alternatives), nil
}

// buildPrescription assembles the normal-path output for the selected
// template.
func buildPrescription(ctx *evalContext, tpl *models.WorkoutTemplate, alternatives []string) *models.Prescription {
	p := newPrescription(ctx, tpl)
	p.TargetDuration = tpl.MidDuration()
	p.TargetLoad = targetLoad(ctx, tpl)
	p.Alternatives = alternatives

	if tpl.IntensityZone != models.ZoneRest {
		p.TargetHRMin, p.TargetHRMax = hrBounds(tpl.IntensityZone, ctx.profile.EffectiveMaxHR(), ctx.phase.IntensityTargetPercent)
	}

	p.Reason = models.AdaptationReason{
		Primary: fmt.Sprintf("%s work for %s week %d", tpl.Category, ctx.phase.Name, ctx.phase.WeekNumber),
		Factors: reasonFactors(ctx),
		Explanation: fmt.Sprintf("Selected %q: readiness %d/100 with %s data, ACWR %.2f (%s), %s phase week %d of %d.",
			tpl.Name, ctx.score.Overall, ctx.score.DataQuality, ctx.history.ACWR.Ratio,
			ctx.history.ACWR.RiskLevel, ctx.phase.Name, ctx.phase.WeekNumber, ctx.phase.TotalWeeks),
	}
	return p
}

// newPrescription fills the fields every outcome shares. The ID is a
// name-based UUID over the date so regeneration is byte-identical.
func newPrescription(ctx *evalContext, tpl *models.WorkoutTemplate) *models.Prescription {
	weekly := ctx.phase.WeeklyLoadTarget
	remaining := weekly - ctx.history.WeekToDateLoad
	if remaining < 0 {
		remaining = 0
	}

	p := &models.Prescription{
		ID:             prescriptionID(ctx.date),
		ScheduledDate:  ctx.date,
		ScheduledTime:  scheduledTime,
		ReadinessScore: ctx.score.Overall,
		LoadContext: models.LoadContext{
			ACWR:             ctx.history.ACWR.Ratio,
			RiskLevel:        ctx.history.ACWR.RiskLevel,
			WeeklyLoadTarget: weekly,
			WeekToDateLoad:   ctx.history.WeekToDateLoad,
			LoadRemaining:    remaining,
			Phase:            string(ctx.phase.Name),
			WeekNumber:       ctx.phase.WeekNumber,
		},
		NextThreeDays: plan.NextDaysOutlook(ctx.snap.Goal, ctx.date, ctx.history.WeeklyLoads, 3),
	}
	if tpl != nil {
		p.TemplateID = tpl.ID
		p.TemplateName = tpl.Name
		p.Category = tpl.Category
		p.IntensityZone = tpl.IntensityZone
	}
	return p
}

func prescriptionID(date time.Time) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("coach:prescription:"+models.DateKey(date)))
}

// targetLoad sizes the session: at least the template's own estimated
// load, more when the weekly target has ground to make up.
func targetLoad(ctx *evalContext, tpl *models.WorkoutTemplate) float64 {
	templateLoad := tpl.EstimatedLoadFactor * 100

	remaining := ctx.phase.WeeklyLoadTarget - ctx.history.WeekToDateLoad
	if remaining < 0 {
		remaining = 0
	}
	perDay := remaining / float64(daysLeftInWeek(ctx.date))

	if perDay > templateLoad {
		return perDay
	}
	return templateLoad
}

// daysLeftInWeek counts today through Sunday, always at least 1.
func daysLeftInWeek(date time.Time) int {
	weekdayIdx := (int(date.Weekday()) + 6) % 7 // Monday = 0
	return 7 - weekdayIdx
}

// zoneBands is the percent-of-max-HR band for each intensity zone.
var zoneBands = map[models.IntensityZone][2]float64{
	models.ZoneRecovery:  {0.50, 0.60},
	models.ZoneEasy:      {0.60, 0.70},
	models.ZoneModerate:  {0.70, 0.80},
	models.ZoneThreshold: {0.80, 0.90},
	models.ZoneMax:       {0.90, 1.00},
}

// hrBounds converts a zone into absolute heart-rate targets. The phase
// intensity percentage moves the upper bound within the band, so an
// easy-phase week sits at the bottom of the zone.
func hrBounds(zone models.IntensityZone, maxHR, intensityPercent float64) (int, int) {
	band, ok := zoneBands[zone]
	if !ok {
		return 0, 0
	}
	frac := intensityPercent / 100
	if frac < 0.5 {
		frac = 0.5
	}
	if frac > 1 {
		frac = 1
	}
	lo := maxHR * band[0]
	hi := maxHR * (band[0] + (band[1]-band[0])*frac)
	return int(lo), int(hi)
}

// reasonFactors lists the decision inputs in influence order.
func reasonFactors(ctx *evalContext) []string {
	factors := make([]string, 0, 5)

	if intensityAllowed(ctx) {
		factors = append(factors, "intensity allowed")
	} else {
		factors = append(factors, "intensity withheld")
	}
	factors = append(factors,
		fmt.Sprintf("ACWR %.2f (%s risk)", ctx.history.ACWR.Ratio, ctx.history.ACWR.RiskLevel),
		fmt.Sprintf("readiness %d/100 (%s)", ctx.score.Overall, ctx.score.Recommendation),
		fmt.Sprintf("data quality %s", ctx.score.DataQuality),
		fmt.Sprintf("%s phase, week %d of %d", ctx.phase.Name, ctx.phase.WeekNumber, ctx.phase.TotalWeeks),
	)
	if ctx.score.Reasoning != "" {
		factors = append(factors, ctx.score.Reasoning)
	}
	if ctx.phase.Deload {
		factors = append(factors, "deload week")
	}
	return factors
}

// intensityAllowed gates hard work on ACWR, readiness, and recovery
// spacing since the last hard session.
func intensityAllowed(ctx *evalContext) bool {
	if ctx.history.ACWR.Ratio > policy.ACWRCautionThreshold {
		return false
	}
	if ctx.score.Overall < policy.IntensityReadinessMin {
		return false
	}
	if days, ok := ctx.history.DaysSinceLastHard.Value(); ok && days < policy.IntensityMinRecoveryDays {
		return false
	}
	return true
}
