// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Verifies CRUD for metrics, wellness, goals, workouts, prescriptions.
package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

func testDate(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestUpsertAndGetDailyMetrics(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	m := models.NewDailyMetrics(testDate(10))
	m.SleepScore = models.Some(82.0)
	m.HRVRmssd = models.Some(64.0)
	m.HRVStatus = models.Some(models.HRVBalanced)
	m.BodyBattery = models.Some(75.0)

	if err := db.InsertDailyMetrics(m); err != nil {
		t.Fatalf("InsertDailyMetrics failed: %v", err)
	}

	got, err := db.GetDailyMetrics(testDate(10))
	if err != nil {
		t.Fatalf("GetDailyMetrics failed: %v", err)
	}
	if v, ok := got.SleepScore.Value(); !ok || v != 82.0 {
		t.Errorf("SleepScore mismatch: got %v %v, want 82", v, ok)
	}
	if s, ok := got.HRVStatus.Value(); !ok || s != models.HRVBalanced {
		t.Errorf("HRVStatus mismatch: got %v %v", s, ok)
	}
	if got.RestingHeartRate.Has() {
		t.Errorf("RestingHeartRate should be absent")
	}
}

func TestInsertDailyMetricsImmutable(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	m := models.NewDailyMetrics(testDate(10))
	m.SleepScore = models.Some(88.0)
	if err := db.InsertDailyMetrics(m); err != nil {
		t.Fatalf("InsertDailyMetrics failed: %v", err)
	}

	// A second record for the same date must not overwrite history.
	m2 := models.NewDailyMetrics(testDate(10))
	m2.SleepScore = models.Some(12.0)
	if err := db.InsertDailyMetrics(m2); !errors.Is(err, ErrMetricsExist) {
		t.Fatalf("Expected ErrMetricsExist, got %v", err)
	}

	got, err := db.GetDailyMetrics(testDate(10))
	if err != nil {
		t.Fatalf("GetDailyMetrics failed: %v", err)
	}
	if v, _ := got.SleepScore.Value(); v != 88.0 {
		t.Errorf("Expected original sleep score 88, got %v", v)
	}
}

func TestGetDailyMetricsNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetDailyMetrics(testDate(1))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListDailyMetricsOrderAndWindow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, day := range []int{5, 6, 7, 8} {
		m := models.NewDailyMetrics(testDate(day))
		m.SleepScore = models.Some(float64(day))
		if err := db.InsertDailyMetrics(m); err != nil {
			t.Fatalf("InsertDailyMetrics failed: %v", err)
		}
	}

	// Records strictly before the 8th, newest first
	recent, err := db.ListDailyMetrics(testDate(8), 2)
	if err != nil {
		t.Fatalf("ListDailyMetrics failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(recent))
	}
	if !recent[0].Date.Equal(testDate(7)) || !recent[1].Date.Equal(testDate(6)) {
		t.Errorf("Wrong order: got %v, %v", recent[0].Date, recent[1].Date)
	}
}

func TestUpsertAndGetWellness(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	w, err := models.NewWellnessRecord(testDate(10), 8, 3, 4, 7)
	if err != nil {
		t.Fatalf("NewWellnessRecord failed: %v", err)
	}
	if err := db.UpsertWellness(w); err != nil {
		t.Fatalf("UpsertWellness failed: %v", err)
	}

	got, err := db.GetWellness(testDate(10))
	if err != nil {
		t.Fatalf("GetWellness failed: %v", err)
	}
	if got.WellnessScore != w.WellnessScore {
		t.Errorf("WellnessScore mismatch: got %d, want %d", got.WellnessScore, w.WellnessScore)
	}

	// Re-submission replaces the day
	w2, _ := models.NewWellnessRecord(testDate(10), 3, 8, 8, 3)
	if err := db.UpsertWellness(w2); err != nil {
		t.Fatalf("second UpsertWellness failed: %v", err)
	}
	got, err = db.GetWellness(testDate(10))
	if err != nil {
		t.Fatalf("GetWellness after replace failed: %v", err)
	}
	if got.WellnessScore != w2.WellnessScore {
		t.Errorf("Expected replaced score %d, got %d", w2.WellnessScore, got.WellnessScore)
	}
}

func TestCreateGoalRetiresActive(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	g1 := models.NewGoal("5k PR", testDate(1))
	if err := db.CreateGoal(g1); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	g2 := models.NewGoal("10k under 50", testDate(8)).WithTargetDate(testDate(30)).WithTarget(50, "minutes")
	if err := db.CreateGoal(g2); err != nil {
		t.Fatalf("second CreateGoal failed: %v", err)
	}

	active, err := db.GetActiveGoal()
	if err != nil {
		t.Fatalf("GetActiveGoal failed: %v", err)
	}
	if active.ID != g2.ID {
		t.Errorf("Expected newest goal active, got %v", active.Name)
	}
	if td, ok := active.TargetDate.Value(); !ok || !td.Equal(testDate(30)) {
		t.Errorf("TargetDate mismatch: got %v %v", td, ok)
	}

	goals, err := db.ListGoals()
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("Expected 2 goals, got %d", len(goals))
	}
	var g1Status models.GoalStatus
	for _, g := range goals {
		if g.ID == g1.ID {
			g1Status = g.Status
		}
	}
	if g1Status != models.GoalCompleted {
		t.Errorf("Expected prior goal completed, got %v", g1Status)
	}
}

func TestGetActiveGoalNone(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetActiveGoal()
	if !errors.Is(err, ErrNoActiveGoal) {
		t.Errorf("Expected ErrNoActiveGoal, got %v", err)
	}
}

func TestUpdateGoalStatusByPrefix(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	g := models.NewGoal("base building", testDate(1))
	if err := db.CreateGoal(g); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	prefix := g.ID.String()[:8]
	if err := db.UpdateGoalStatus(prefix, models.GoalAbandoned); err != nil {
		t.Fatalf("UpdateGoalStatus failed: %v", err)
	}

	if _, err := db.GetActiveGoal(); !errors.Is(err, ErrNoActiveGoal) {
		t.Errorf("Expected no active goal after abandon, got %v", err)
	}
}

func TestSeededTemplates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	templates, err := db.ListTemplates(true)
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != len(defaultTemplates) {
		t.Fatalf("Expected %d seeded templates, got %d", len(defaultTemplates), len(templates))
	}

	got, err := db.GetTemplate("easy-run")
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if got.Category != models.CategoryBase {
		t.Errorf("Category mismatch: got %v", got.Category)
	}
	if got.IntensityZone != models.ZoneEasy {
		t.Errorf("IntensityZone mismatch: got %v", got.IntensityZone)
	}

	if _, err := db.GetTemplate("no-such-template"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSeedTemplatesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// Reopening the same database must not duplicate the catalog
	path := db.dbPath
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer db2.Close()

	templates, err := db2.ListTemplates(false)
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != len(defaultTemplates) {
		t.Errorf("Expected %d templates after reopen, got %d", len(defaultTemplates), len(templates))
	}
}

func TestCreateAndListWorkouts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	w1 := models.NewCompletedWorkout(testDate(8), models.CategoryBase, models.DifficultyBeginner, 45).
		WithHeartRates(142, 165)
	w1.Load = 120
	w2 := models.NewCompletedWorkout(testDate(10), models.CategoryThreshold, models.DifficultyIntermediate, 50).
		WithRPE(8)
	w2.Load = 400

	for _, w := range []*models.CompletedWorkout{w1, w2} {
		if err := db.CreateWorkout(w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}
	}

	workouts, err := db.ListWorkouts(testDate(1), 0)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("Expected 2 workouts, got %d", len(workouts))
	}
	if workouts[0].ID != w2.ID {
		t.Errorf("Expected newest first, got %v", workouts[0].ID)
	}
	if hr, ok := workouts[1].AvgHeartRate.Value(); !ok || hr != 142 {
		t.Errorf("AvgHeartRate mismatch: got %v %v", hr, ok)
	}
	if rpe, ok := workouts[0].RPE.Value(); !ok || rpe != 8 {
		t.Errorf("RPE mismatch: got %v %v", rpe, ok)
	}

	// The since bound excludes older sessions
	recent, err := db.ListWorkouts(testDate(9), 0)
	if err != nil {
		t.Fatalf("ListWorkouts since failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Expected 1 workout since the 9th, got %d", len(recent))
	}
}

func TestGetLatestWorkoutAndFeedback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetLatestWorkout(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on empty table, got %v", err)
	}

	w := models.NewCompletedWorkout(testDate(10), models.CategoryTempo, models.DifficultyIntermediate, 40)
	w.Load = 200
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	if err := db.SetWorkoutFeedback(w.ID.String()[:8], models.FeedbackTooHard); err != nil {
		t.Fatalf("SetWorkoutFeedback failed: %v", err)
	}

	got, err := db.GetLatestWorkout()
	if err != nil {
		t.Fatalf("GetLatestWorkout failed: %v", err)
	}
	if fb, ok := got.Feedback.Value(); !ok || fb != models.FeedbackTooHard {
		t.Errorf("Feedback mismatch: got %v %v", fb, ok)
	}
}

func TestSavePrescriptionSupersedes(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	p := &models.Prescription{
		ID:             uuid.New(),
		TemplateID:     "easy-run",
		TemplateName:   "Easy Run",
		Category:       models.CategoryBase,
		ScheduledDate:  testDate(12),
		ScheduledTime:  "07:00",
		TargetDuration: 40,
		TargetLoad:     100,
		IntensityZone:  models.ZoneEasy,
		ReadinessScore: 80,
	}
	if err := db.SavePrescription(p); err != nil {
		t.Fatalf("SavePrescription failed: %v", err)
	}
	if p.CreatedAt.IsZero() {
		t.Errorf("Expected CreatedAt stamped on save")
	}

	// Regenerating the same date replaces the row
	p2 := &models.Prescription{
		ID:            uuid.New(),
		TemplateID:    "recovery-spin",
		TemplateName:  "Recovery Spin",
		Category:      models.CategoryRecovery,
		ScheduledDate: testDate(12),
		IntensityZone: models.ZoneRecovery,
	}
	if err := db.SavePrescription(p2); err != nil {
		t.Fatalf("second SavePrescription failed: %v", err)
	}

	got, err := db.GetPrescription(testDate(12))
	if err != nil {
		t.Fatalf("GetPrescription failed: %v", err)
	}
	if got.TemplateID != "recovery-spin" {
		t.Errorf("Expected superseded prescription, got %v", got.TemplateID)
	}

	all, err := db.ListPrescriptions(0)
	if err != nil {
		t.Fatalf("ListPrescriptions failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 prescription row, got %d", len(all))
	}
}

func TestListPrescriptionsOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, day := range []int{10, 12, 11} {
		p := &models.Prescription{
			ID:            uuid.New(),
			TemplateID:    "easy-run",
			ScheduledDate: testDate(day),
			IntensityZone: models.ZoneEasy,
		}
		if err := db.SavePrescription(p); err != nil {
			t.Fatalf("SavePrescription failed: %v", err)
		}
	}

	all, err := db.ListPrescriptions(2)
	if err != nil {
		t.Fatalf("ListPrescriptions failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 prescriptions, got %d", len(all))
	}
	if !all[0].ScheduledDate.Equal(testDate(12)) || !all[1].ScheduledDate.Equal(testDate(11)) {
		t.Errorf("Wrong order: got %v, %v", all[0].ScheduledDate, all[1].ScheduledDate)
	}
}

func TestLoadSnapshot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	g := models.NewGoal("10k", testDate(1)).WithTargetDate(testDate(28))
	if err := db.CreateGoal(g); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	w := models.NewCompletedWorkout(testDate(9), models.CategoryBase, models.DifficultyBeginner, 40)
	w.Load = 100
	if err := db.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	m := models.NewDailyMetrics(testDate(10))
	m.SleepScore = models.Some(80.0)
	if err := db.InsertDailyMetrics(m); err != nil {
		t.Fatalf("InsertDailyMetrics failed: %v", err)
	}
	prior := models.NewDailyMetrics(testDate(9))
	prior.SleepScore = models.Some(75.0)
	if err := db.InsertDailyMetrics(prior); err != nil {
		t.Fatalf("InsertDailyMetrics failed: %v", err)
	}

	wl, _ := models.NewWellnessRecord(testDate(10), 7, 3, 3, 8)
	if err := db.UpsertWellness(wl); err != nil {
		t.Fatalf("UpsertWellness failed: %v", err)
	}

	snap, err := db.LoadSnapshot(testDate(10))
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap.Goal == nil || snap.Goal.ID != g.ID {
		t.Errorf("Goal not loaded")
	}
	if len(snap.Templates) != len(defaultTemplates) {
		t.Errorf("Expected seeded templates in snapshot, got %d", len(snap.Templates))
	}
	if len(snap.Workouts) != 1 {
		t.Errorf("Expected 1 workout, got %d", len(snap.Workouts))
	}
	if snap.TodayMetrics == nil {
		t.Errorf("TodayMetrics not loaded")
	}
	if len(snap.RecentMetrics) != 1 || !snap.RecentMetrics[0].Date.Equal(testDate(9)) {
		t.Errorf("RecentMetrics wrong: %v", snap.RecentMetrics)
	}
	if snap.Wellness == nil {
		t.Errorf("Wellness not loaded")
	}
}

func TestLoadSnapshotMissingData(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	snap, err := db.LoadSnapshot(testDate(10))
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap.Goal != nil {
		t.Errorf("Expected nil goal")
	}
	if snap.TodayMetrics != nil || snap.Wellness != nil {
		t.Errorf("Expected nil metrics and wellness")
	}
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "coach.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db
}
