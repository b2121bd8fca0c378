// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Tables for metrics, wellness, goals, templates, workouts, prescriptions.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_metrics (
		date TEXT PRIMARY KEY,
		sleep_score REAL,
		sleep_hours REAL,
		hrv_rmssd REAL,
		hrv_status TEXT,
		resting_heart_rate REAL,
		body_battery REAL,
		training_readiness REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS wellness (
		date TEXT PRIMARY KEY,
		sleep_quality INTEGER NOT NULL,
		muscle_soreness INTEGER NOT NULL,
		stress_level INTEGER NOT NULL,
		mood INTEGER NOT NULL,
		wellness_score INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		target_date TEXT,
		target_value REAL,
		target_unit TEXT,
		status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		min_duration_minutes INTEGER NOT NULL,
		max_duration_minutes INTEGER NOT NULL,
		intensity_zone TEXT NOT NULL,
		requires_recovery_days INTEGER NOT NULL DEFAULT 0,
		max_per_week INTEGER NOT NULL DEFAULT 0,
		estimated_load_factor REAL NOT NULL,
		active INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		avg_heart_rate REAL,
		max_heart_rate REAL,
		rpe INTEGER,
		load REAL NOT NULL DEFAULT 0,
		feedback TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS prescriptions (
		id TEXT PRIMARY KEY,
		scheduled_date TEXT NOT NULL UNIQUE,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date DESC);
	CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status);
	CREATE INDEX IF NOT EXISTS idx_prescriptions_date ON prescriptions(scheduled_date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
