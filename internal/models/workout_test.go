// ABOUTME: Tests for workout, template, profile, and date-key models.
// ABOUTME: Covers hard-session classification and heart-rate fallbacks.
package models

import (
	"testing"
	"time"
)

func TestCategoryHighIntensity(t *testing.T) {
	hard := []Category{CategoryThreshold, CategoryIntervals, CategorySpeed, CategoryHills}
	for _, c := range hard {
		if !c.HighIntensity() {
			t.Errorf("%s should be high intensity", c)
		}
	}
	easy := []Category{CategoryRecovery, CategoryMobility, CategoryBase, CategoryLong, CategoryTempo, CategoryStrength}
	for _, c := range easy {
		if c.HighIntensity() {
			t.Errorf("%s should not be high intensity", c)
		}
	}
}

func TestWorkoutHard(t *testing.T) {
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	w := NewCompletedWorkout(date, CategoryIntervals, DifficultyIntermediate, 40)
	if !w.Hard() {
		t.Error("interval session should count as hard")
	}

	w = NewCompletedWorkout(date, CategoryBase, DifficultyAdvanced, 40)
	if !w.Hard() {
		t.Error("advanced session should count as hard")
	}

	w = NewCompletedWorkout(date, CategoryBase, DifficultyBeginner, 40)
	if w.Hard() {
		t.Error("easy base session should not count as hard")
	}
}

func TestIsValidFeedback(t *testing.T) {
	for _, s := range []string{"too_easy", "just_right", "too_hard"} {
		if !IsValidFeedback(s) {
			t.Errorf("%q should be valid feedback", s)
		}
	}
	for _, s := range []string{"", "great", "TOO_HARD"} {
		if IsValidFeedback(s) {
			t.Errorf("%q should be invalid feedback", s)
		}
	}
}

func TestTemplateMidDuration(t *testing.T) {
	tmpl := &WorkoutTemplate{MinDurationMinutes: 30, MaxDurationMinutes: 50}
	if got := tmpl.MidDuration(); got != 40 {
		t.Errorf("MidDuration() = %d, want 40", got)
	}
}

func TestEffectiveMaxHR(t *testing.T) {
	p := AthleteProfile{MaxHR: Some(192.0)}
	if got := p.EffectiveMaxHR(); got != 192 {
		t.Errorf("measured max HR should win, got %v", got)
	}

	p = AthleteProfile{Age: 40}
	if got := p.EffectiveMaxHR(); got != 180 {
		t.Errorf("age fallback = %v, want 180", got)
	}

	p = AthleteProfile{}
	if got := p.EffectiveMaxHR(); got != 185 {
		t.Errorf("default-age fallback = %v, want 185", got)
	}
}

func TestEffectiveRestingHR(t *testing.T) {
	p := AthleteProfile{RestingHR: Some(47.0)}
	if got := p.EffectiveRestingHR(); got != 47 {
		t.Errorf("configured resting HR should win, got %v", got)
	}

	p = AthleteProfile{}
	if got := p.EffectiveRestingHR(); got != 60 {
		t.Errorf("default resting HR = %v, want 60", got)
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	d := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	key := DateKey(d)
	if key != "2026-03-12" {
		t.Errorf("DateKey = %q", key)
	}
	parsed, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("ParseDateKey failed: %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("round trip mismatch: %v", parsed)
	}
}

func TestDateOnly(t *testing.T) {
	at := time.Date(2026, 3, 12, 23, 59, 1, 0, time.FixedZone("x", 3600))
	d := DateOnly(at)
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Errorf("DateOnly = %v", d)
	}
}

func TestDailyMetricsHasCoreData(t *testing.T) {
	m := NewDailyMetrics(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
	if m.HasCoreData() {
		t.Error("empty record should report no core data")
	}
	m.BodyBattery = Some(60.0)
	if !m.HasCoreData() {
		t.Error("record with body battery should report core data")
	}
}

func TestGoalBuilders(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	g := NewGoal("10k under 50", start).
		WithTargetDate(start.AddDate(0, 0, 84)).
		WithTarget(50, "minutes")

	if g.Status != GoalActive {
		t.Errorf("new goal should be active, got %v", g.Status)
	}
	if td, ok := g.TargetDate.Value(); !ok || !td.After(start) {
		t.Errorf("target date not set: %v %v", td, ok)
	}
	if v, ok := g.TargetValue.Value(); !ok || v != 50 {
		t.Errorf("target value not set: %v %v", v, ok)
	}
	if u, ok := g.TargetUnit.Value(); !ok || u != "minutes" {
		t.Errorf("target unit not set: %v %v", u, ok)
	}
}
