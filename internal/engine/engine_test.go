// ABOUTME: Tests for the prescription engine end to end.
// ABOUTME: Covers gate precedence, selection scoring, and idempotence.
package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/coach/internal/models"
)

var evalDate = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC) // Thursday

func testProfile() models.AthleteProfile {
	return models.AthleteProfile{
		Age:       35,
		Male:      true,
		MaxHR:     models.Some(190.0),
		RestingHR: models.Some(55.0),
	}
}

func testCatalog() []*models.WorkoutTemplate {
	return []*models.WorkoutTemplate{
		{ID: "easy-run", Name: "Easy Run", Category: models.CategoryBase, Difficulty: models.DifficultyBeginner,
			MinDurationMinutes: 30, MaxDurationMinutes: 50, IntensityZone: models.ZoneEasy, EstimatedLoadFactor: 0.5, Active: true},
		{ID: "long-run", Name: "Long Run", Category: models.CategoryLong, Difficulty: models.DifficultyIntermediate,
			MinDurationMinutes: 60, MaxDurationMinutes: 120, IntensityZone: models.ZoneEasy, EstimatedLoadFactor: 0.8, Active: true},
		{ID: "tempo-run", Name: "Tempo Run", Category: models.CategoryTempo, Difficulty: models.DifficultyIntermediate,
			MinDurationMinutes: 40, MaxDurationMinutes: 60, IntensityZone: models.ZoneModerate, EstimatedLoadFactor: 0.7, Active: true},
		{ID: "threshold-repeats", Name: "Threshold Repeats", Category: models.CategoryThreshold, Difficulty: models.DifficultyAdvanced,
			MinDurationMinutes: 40, MaxDurationMinutes: 60, IntensityZone: models.ZoneThreshold,
			RequiresRecoveryDays: 2, EstimatedLoadFactor: 0.9, Active: true},
		{ID: "vo2-intervals", Name: "VO2 Intervals", Category: models.CategoryIntervals, Difficulty: models.DifficultyAdvanced,
			MinDurationMinutes: 35, MaxDurationMinutes: 55, IntensityZone: models.ZoneMax,
			RequiresRecoveryDays: 2, EstimatedLoadFactor: 1.0, Active: true},
		{ID: "recovery-spin", Name: "Recovery Spin", Category: models.CategoryRecovery, Difficulty: models.DifficultyBeginner,
			MinDurationMinutes: 20, MaxDurationMinutes: 40, IntensityZone: models.ZoneRecovery, EstimatedLoadFactor: 0.3, Active: true},
		{ID: "mobility-flow", Name: "Mobility Flow", Category: models.CategoryMobility, Difficulty: models.DifficultyBeginner,
			MinDurationMinutes: 15, MaxDurationMinutes: 30, IntensityZone: models.ZoneRecovery, EstimatedLoadFactor: 0.2, Active: true},
		{ID: "strength-circuit", Name: "Strength Circuit", Category: models.CategoryStrength, Difficulty: models.DifficultyIntermediate,
			MinDurationMinutes: 30, MaxDurationMinutes: 45, IntensityZone: models.ZoneEasy, EstimatedLoadFactor: 0.6, Active: true},
	}
}

func activeGoal() *models.Goal {
	g := models.NewGoal("10k race", evalDate.AddDate(0, 0, -14))
	g.WithTargetDate(evalDate.AddDate(0, 0, 10*7))
	return g
}

func freshMetrics() *models.DailyMetrics {
	m := models.NewDailyMetrics(evalDate)
	m.SleepScore = models.Some(88.0)
	m.SleepHours = models.Some(7.5)
	m.HRVRmssd = models.Some(62.0)
	m.RestingHeartRate = models.Some(50.0)
	m.BodyBattery = models.Some(80.0)
	return m
}

func metricBaseline() []*models.DailyMetrics {
	var recent []*models.DailyMetrics
	for i := 1; i <= 7; i++ {
		m := models.NewDailyMetrics(evalDate.AddDate(0, 0, -i))
		m.HRVRmssd = models.Some(60.0)
		m.RestingHeartRate = models.Some(50.0)
		recent = append(recent, m)
	}
	return recent
}

// oldWorkouts builds a chronic base with an empty acute window, keeping
// ACWR at zero so no gate trips.
func oldWorkouts() []*models.CompletedWorkout {
	var ws []*models.CompletedWorkout
	for i := 10; i <= 24; i += 2 {
		w := models.NewCompletedWorkout(evalDate.AddDate(0, 0, -i), models.CategoryBase, models.DifficultyBeginner, 45)
		w.Load = 80
		ws = append(ws, w)
	}
	return ws
}

// overloadWorkouts pushes the acute window far past the chronic base so
// the ratio lands above the critical threshold.
func overloadWorkouts() []*models.CompletedWorkout {
	var ws []*models.CompletedWorkout
	for i := 0; i < 5; i++ {
		w := models.NewCompletedWorkout(evalDate.AddDate(0, 0, -i), models.CategoryIntervals, models.DifficultyAdvanced, 60)
		w.Load = 200
		ws = append(ws, w)
	}
	return ws
}

func calmSnapshot() *Snapshot {
	return &Snapshot{
		Goal:          activeGoal(),
		Templates:     testCatalog(),
		Workouts:      oldWorkouts(),
		TodayMetrics:  freshMetrics(),
		RecentMetrics: metricBaseline(),
	}
}

func TestPrescribeRequiresActiveGoal(t *testing.T) {
	snap := calmSnapshot()
	snap.Goal = nil
	if _, err := Prescribe(evalDate, snap, testProfile()); !errors.Is(err, ErrNoActiveGoal) {
		t.Errorf("err = %v, want ErrNoActiveGoal", err)
	}

	snap = calmSnapshot()
	snap.Goal.Status = models.GoalCompleted
	if _, err := Prescribe(evalDate, snap, testProfile()); !errors.Is(err, ErrNoActiveGoal) {
		t.Errorf("err = %v, want ErrNoActiveGoal for completed goal", err)
	}
}

func TestPrescribeRequiresTemplates(t *testing.T) {
	snap := calmSnapshot()
	snap.Templates = nil
	if _, err := Prescribe(evalDate, snap, testProfile()); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("err = %v, want ErrEmptyCatalog", err)
	}

	snap = calmSnapshot()
	for _, tpl := range snap.Templates {
		tpl.Active = false
	}
	if _, err := Prescribe(evalDate, snap, testProfile()); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("err = %v, want ErrEmptyCatalog with all templates inactive", err)
	}
}

func TestCriticalACWRForcesRestDespiteGoodReadiness(t *testing.T) {
	snap := calmSnapshot()
	snap.Workouts = overloadWorkouts()

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.IntensityZone != models.ZoneRest {
		t.Errorf("IntensityZone = %s, want rest", p.IntensityZone)
	}
	if p.TargetLoad != 0 {
		t.Errorf("TargetLoad = %f, want 0", p.TargetLoad)
	}
	if !strings.Contains(p.Reason.Explanation, "ACWR") {
		t.Errorf("Explanation = %q, want ACWR cited", p.Reason.Explanation)
	}
	if !strings.Contains(p.Reason.Explanation, "x baseline") {
		t.Errorf("Explanation = %q, want the injury-risk multiplier cited", p.Reason.Explanation)
	}
}

func TestDepletedBodyBatteryForcesRest(t *testing.T) {
	snap := calmSnapshot()
	snap.TodayMetrics.BodyBattery = models.Some(20.0)

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.IntensityZone != models.ZoneRest {
		t.Errorf("IntensityZone = %s, want rest", p.IntensityZone)
	}
	if !strings.Contains(p.Reason.Explanation, "ody battery") {
		t.Errorf("Explanation = %q, want body battery cited", p.Reason.Explanation)
	}
}

func TestMissingDataForcesRest(t *testing.T) {
	snap := calmSnapshot()
	snap.TodayMetrics = nil
	snap.RecentMetrics = nil
	snap.Wellness = nil

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.IntensityZone != models.ZoneRest {
		t.Errorf("IntensityZone = %s, want rest without data", p.IntensityZone)
	}
}

func TestHighACWRRestrictsToRecoveryPool(t *testing.T) {
	snap := calmSnapshot()
	// Steady chronic base of 50/day; acute window sums to 80 for a
	// ratio of 1.6, inside the 1.5-2.0 band.
	var ws []*models.CompletedWorkout
	for i := 0; i < 28; i++ {
		w := models.NewCompletedWorkout(evalDate.AddDate(0, 0, -i), models.CategoryBase, models.DifficultyBeginner, 45)
		if i < 7 {
			w.Load = 80.0 / 7
		} else {
			w.Load = 1320.0 / 21 // keeps the 28-day daily mean at 50
		}
		ws = append(ws, w)
	}
	snap.Workouts = ws

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.Category != models.CategoryRecovery && p.Category != models.CategoryMobility {
		t.Errorf("Category = %s, want recovery or mobility", p.Category)
	}
	if p.TemplateName != "Mobility Flow" {
		t.Errorf("TemplateName = %s, want the lowest-load option", p.TemplateName)
	}
	if len(p.Alternatives) > 2 {
		t.Errorf("Alternatives = %v, want at most 2", p.Alternatives)
	}
}

func TestCautionACWRRestrictsEverything(t *testing.T) {
	snap := calmSnapshot()
	// Daily mean 50 over 28 days with an acute sum of 70: ratio 1.4.
	var ws []*models.CompletedWorkout
	for i := 0; i < 28; i++ {
		w := models.NewCompletedWorkout(evalDate.AddDate(0, 0, -i), models.CategoryBase, models.DifficultyBeginner, 45)
		if i < 7 {
			w.Load = 70.0 / 7
		} else {
			w.Load = 1330.0 / 21
		}
		ws = append(ws, w)
	}
	snap.Workouts = ws

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.TargetDuration > 30 {
		t.Errorf("TargetDuration = %d, want capped at 30", p.TargetDuration)
	}
	if p.IntensityZone != models.ZoneEasy {
		t.Errorf("IntensityZone = %s, want forced zone2", p.IntensityZone)
	}
	wantMin, wantMax := int(190*0.60), int(190*0.70)
	if p.TargetHRMin != wantMin || p.TargetHRMax != wantMax {
		t.Errorf("HR bounds = %d-%d, want %d-%d", p.TargetHRMin, p.TargetHRMax, wantMin, wantMax)
	}
}

func TestNormalPathPrefersPhaseFocus(t *testing.T) {
	snap := calmSnapshot()

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	// Week 3 of the plan is base phase; base-focus categories with no
	// recent repetition should win over tempo and recovery work.
	if p.Category != models.CategoryLong && p.Category != models.CategoryStrength {
		t.Errorf("Category = %s, want a base-phase focus category not seen this week", p.Category)
	}
	if len(p.Alternatives) == 0 || len(p.Alternatives) > 3 {
		t.Errorf("Alternatives = %v, want 1-3 entries", p.Alternatives)
	}
	if p.TargetLoad <= 0 {
		t.Errorf("TargetLoad = %f, want positive", p.TargetLoad)
	}
	if p.TargetHRMin <= 0 || p.TargetHRMax <= p.TargetHRMin {
		t.Errorf("HR bounds = %d-%d, want an increasing positive range", p.TargetHRMin, p.TargetHRMax)
	}
	if len(p.NextThreeDays) != 3 {
		t.Errorf("NextThreeDays = %v, want 3 entries", p.NextThreeDays)
	}
}

func TestRecoverySpacingExcludesHardTemplates(t *testing.T) {
	snap := calmSnapshot()
	// A hard session yesterday: advanced templates requiring 2 recovery
	// days must not be candidates even with strong readiness.
	hard := models.NewCompletedWorkout(evalDate.AddDate(0, 0, -1), models.CategoryIntervals, models.DifficultyAdvanced, 45)
	hard.Load = 10
	snap.Workouts = append(snap.Workouts, hard)

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.Category.HighIntensity() {
		t.Errorf("Category = %s, want no high-intensity work the day after a hard session", p.Category)
	}
}

func TestWeeklyCapExcludesTemplate(t *testing.T) {
	snap := calmSnapshot()
	for _, tpl := range snap.Templates {
		if tpl.ID == "long-run" {
			tpl.MaxPerWeek = 1
		}
	}
	// One long run already done this week exhausts the cap.
	done := models.NewCompletedWorkout(evalDate.AddDate(0, 0, -2), models.CategoryLong, models.DifficultyIntermediate, 90)
	done.Load = 10
	snap.Workouts = append(snap.Workouts, done)

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}

	if p.Category == models.CategoryLong {
		t.Errorf("Category = %s, want the capped template excluded from the pool", p.Category)
	}
	for _, alt := range p.Alternatives {
		if alt == "Long Run" {
			t.Errorf("Alternatives = %v, want the capped template excluded entirely", p.Alternatives)
		}
	}
}

func TestPrescribeIdempotent(t *testing.T) {
	a, err := Prescribe(evalDate, calmSnapshot(), testProfile())
	if err != nil {
		t.Fatalf("first Prescribe failed: %v", err)
	}
	b, err := Prescribe(evalDate, calmSnapshot(), testProfile())
	if err != nil {
		t.Fatalf("second Prescribe failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("prescriptions differ between identical runs:\n%+v\n%+v", a, b)
	}
}

func TestGatePrecedenceOverridesReadiness(t *testing.T) {
	// Perfect readiness cannot rescue a critical ACWR.
	snap := calmSnapshot()
	snap.Workouts = overloadWorkouts()
	snap.TodayMetrics = freshMetrics()

	p, err := Prescribe(evalDate, snap, testProfile())
	if err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}
	if !p.RestDay() {
		t.Errorf("want rest day, got %s (%s)", p.TemplateName, p.IntensityZone)
	}
	if p.ReadinessScore < 75 {
		t.Errorf("ReadinessScore = %d; the gate should not have altered the underlying score", p.ReadinessScore)
	}
}
