// ABOUTME: PeriodizationPlanner: maps a goal and a date to the current phase.
// ABOUTME: Computes week targets, deload weeks, and progressive overload.
package plan

import (
	"math"
	"sort"
	"time"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/policy"
)

// PhaseName is one stage of the periodized plan.
type PhaseName string

const (
	PhaseBase     PhaseName = "base"
	PhaseBuild    PhaseName = "build"
	PhasePeak     PhaseName = "peak"
	PhaseTaper    PhaseName = "taper"
	PhaseRecovery PhaseName = "recovery"
)

// phaseRamp is the linear volume/intensity ramp across one phase.
type phaseRamp struct {
	volStart, volEnd float64
	intStart, intEnd float64
}

// Base builds volume at steady intensity; taper sheds volume while
// holding race intensity. The numbers are percentages of peak.
var ramps = map[PhaseName]phaseRamp{
	PhaseBase:     {volStart: 60, volEnd: 80, intStart: 60, intEnd: 60},
	PhaseBuild:    {volStart: 75, volEnd: 90, intStart: 70, intEnd: 80},
	PhasePeak:     {volStart: 85, volEnd: 100, intStart: 85, intEnd: 95},
	PhaseTaper:    {volStart: 100, volEnd: 50, intStart: 85, intEnd: 85},
	PhaseRecovery: {volStart: 40, volEnd: 40, intStart: 50, intEnd: 50},
}

// focusAreas lists the workout categories each phase rewards.
var focusAreas = map[PhaseName][]models.Category{
	PhaseBase:     {models.CategoryBase, models.CategoryLong, models.CategoryStrength},
	PhaseBuild:    {models.CategoryTempo, models.CategoryThreshold, models.CategoryHills},
	PhasePeak:     {models.CategorySpeed, models.CategoryIntervals},
	PhaseTaper:    {models.CategoryBase, models.CategoryRecovery},
	PhaseRecovery: {models.CategoryRecovery, models.CategoryMobility},
}

// typicalDifficulty is the template difficulty each phase leans toward.
var typicalDifficulty = map[PhaseName]models.Difficulty{
	PhaseBase:     models.DifficultyIntermediate,
	PhaseBuild:    models.DifficultyIntermediate,
	PhasePeak:     models.DifficultyAdvanced,
	PhaseTaper:    models.DifficultyBeginner,
	PhaseRecovery: models.DifficultyBeginner,
}

// Phase is the planner's answer for one evaluation date.
type Phase struct {
	Name                   PhaseName
	WeekNumber             int // 1-based within the plan
	TotalWeeks             int
	WeeksIntoPhase         int // 1-based within the phase
	PhaseWeeks             int
	VolumeTargetPercent    float64
	IntensityTargetPercent float64
	FocusAreas             []models.Category
	TypicalDifficulty      models.Difficulty
	Deload                 bool
	OverloadMultiplier     float64
	WeeklyLoadTarget       float64
}

// Compute derives the current phase from the active goal, the evaluation
// date, and the historical weekly load totals.
func Compute(goal *models.Goal, now time.Time, weeklyLoads []float64) Phase {
	now = models.DateOnly(now)
	totalWeeks := planWeeks(goal)

	if target, ok := goal.TargetDate.Value(); ok && now.After(target) {
		// Past the goal date: unstructured recovery until a new goal is set.
		return recoveryPhase(totalWeeks, weeklyLoads)
	}

	weeksElapsed := int(now.Sub(goal.StartDate).Hours() / (24 * 7))
	weekNumber := clampInt(weeksElapsed+1, 1, totalWeeks)

	baseWeeks, buildWeeks, peakWeeks, taperWeeks := phaseSplit(totalWeeks)

	var (
		name       PhaseName
		phaseStart int
		phaseLen   int
	)
	switch {
	case weekNumber <= baseWeeks:
		name, phaseStart, phaseLen = PhaseBase, 1, baseWeeks
	case weekNumber <= baseWeeks+buildWeeks:
		name, phaseStart, phaseLen = PhaseBuild, baseWeeks+1, buildWeeks
	case weekNumber <= baseWeeks+buildWeeks+peakWeeks:
		name, phaseStart, phaseLen = PhasePeak, baseWeeks+buildWeeks+1, peakWeeks
	default:
		name, phaseStart, phaseLen = PhaseTaper, baseWeeks+buildWeeks+peakWeeks+1, taperWeeks
	}

	weeksIntoPhase := weekNumber - phaseStart + 1
	deload := shouldDeload(name, weekNumber)

	p := Phase{
		Name:              name,
		WeekNumber:        weekNumber,
		TotalWeeks:        totalWeeks,
		WeeksIntoPhase:    weeksIntoPhase,
		PhaseWeeks:        phaseLen,
		FocusAreas:        focusAreas[name],
		TypicalDifficulty: typicalDifficulty[name],
		Deload:            deload,
	}

	ramp := ramps[name]
	p.VolumeTargetPercent = lerp(ramp.volStart, ramp.volEnd, weeksIntoPhase, phaseLen)
	p.IntensityTargetPercent = lerp(ramp.intStart, ramp.intEnd, weeksIntoPhase, phaseLen)

	p.OverloadMultiplier = overloadMultiplier(weeksIntoPhase, deload)
	p.WeeklyLoadTarget = PeakWeeklyLoad(weeklyLoads) * (p.VolumeTargetPercent / 100) * p.OverloadMultiplier

	return p
}

// planWeeks derives the plan length from the goal's date span, defaulting
// when the goal is open-ended and clamping to a sane range.
func planWeeks(goal *models.Goal) int {
	target, ok := goal.TargetDate.Value()
	if !ok {
		return policy.DefaultPlanWeeks
	}
	days := target.Sub(goal.StartDate).Hours() / 24
	weeks := int(math.Ceil(days / 7))
	return clampInt(weeks, policy.MinPlanWeeks, policy.MaxPlanWeeks)
}

// phaseSplit allocates plan weeks 50/30/15/5. The taper takes whatever
// remains after ceil rounding, but never less than a week; earlier
// phases give weeks back when rounding consumed the taper entirely.
func phaseSplit(totalWeeks int) (base, build, peak, taper int) {
	base = int(math.Ceil(policy.PhaseShareBase * float64(totalWeeks)))
	build = int(math.Ceil(policy.PhaseShareBuild * float64(totalWeeks)))
	peak = int(math.Ceil(policy.PhaseSharePeak * float64(totalWeeks)))

	taper = totalWeeks - base - build - peak
	for taper < 1 && peak > 1 {
		peak--
		taper++
	}
	for taper < 1 && build > 1 {
		build--
		taper++
	}
	for taper < 1 && base > 1 {
		base--
		taper++
	}
	return base, build, peak, taper
}

// shouldDeload marks every fourth plan week as a deload: three loading
// weeks, then one reduced. Deloads never land in the first two weeks or
// in the peak/taper phases, where the ramp itself sheds load.
func shouldDeload(name PhaseName, weekNumber int) bool {
	if name == PhasePeak || name == PhaseTaper || name == PhaseRecovery {
		return false
	}
	if weekNumber < policy.DeloadEarliestWeek {
		return false
	}
	return weekNumber%(policy.DeloadIntervalWeeks+1) == 0
}

// overloadMultiplier ramps load 5% per week into a phase, capped, and
// cuts to half on deload weeks.
func overloadMultiplier(weeksIntoPhase int, deload bool) float64 {
	if deload {
		return policy.DeloadMultiplier
	}
	m := 1.0 + policy.OverloadStepPerWeek*float64(weeksIntoPhase-1)
	if m > policy.OverloadCap {
		m = policy.OverloadCap
	}
	return m
}

// PeakWeeklyLoad estimates the athlete's sustainable peak week as the
// 95th percentile of historical week totals, floored so a thin history
// cannot drag targets to nothing.
func PeakWeeklyLoad(weeklyLoads []float64) float64 {
	nonzero := make([]float64, 0, len(weeklyLoads))
	for _, w := range weeklyLoads {
		if w > 0 {
			nonzero = append(nonzero, w)
		}
	}
	if len(nonzero) == 0 {
		return policy.PeakLoadDefault
	}

	sort.Float64s(nonzero)
	idx := int(math.Ceil(policy.PeakLoadPercentile*float64(len(nonzero)))) - 1
	if idx < 0 {
		idx = 0
	}
	peak := nonzero[idx]
	if peak < policy.PeakLoadFloor {
		peak = policy.PeakLoadFloor
	}
	return peak
}

// NextDaysOutlook sketches the next n days from the plan alone: rest on
// deload cadence boundaries, easy inside deload or taper weeks, normal
// otherwise. Deterministic so a regenerated prescription matches.
func NextDaysOutlook(goal *models.Goal, from time.Time, weeklyLoads []float64, n int) []models.DayOutlook {
	outlook := make([]models.DayOutlook, 0, n)
	for i := 1; i <= n; i++ {
		day := models.DateOnly(from).AddDate(0, 0, i)
		p := Compute(goal, day, weeklyLoads)

		state := "normal"
		switch {
		case p.Deload && day.Weekday() == time.Sunday:
			state = "rest"
		case p.Deload || p.Name == PhaseTaper || p.Name == PhaseRecovery:
			state = "easy"
		}
		outlook = append(outlook, models.DayOutlook{
			Date:    models.DateKey(day),
			Outlook: state,
		})
	}
	return outlook
}

func recoveryPhase(totalWeeks int, weeklyLoads []float64) Phase {
	ramp := ramps[PhaseRecovery]
	return Phase{
		Name:                   PhaseRecovery,
		WeekNumber:             totalWeeks,
		TotalWeeks:             totalWeeks,
		WeeksIntoPhase:         1,
		PhaseWeeks:             1,
		VolumeTargetPercent:    ramp.volStart,
		IntensityTargetPercent: ramp.intStart,
		FocusAreas:             focusAreas[PhaseRecovery],
		TypicalDifficulty:      typicalDifficulty[PhaseRecovery],
		OverloadMultiplier:     1.0,
		WeeklyLoadTarget:       PeakWeeklyLoad(weeklyLoads) * (ramp.volStart / 100),
	}
}

// lerp interpolates from start to end across a phase of phaseLen weeks.
// A one-week phase sits at its start value.
func lerp(start, end float64, week, phaseLen int) float64 {
	if phaseLen <= 1 {
		return start
	}
	frac := float64(week-1) / float64(phaseLen-1)
	return start + (end-start)*frac
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
