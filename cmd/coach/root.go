// ABOUTME: Root Cobra command for coach CLI.
// ABOUTME: Handles config load and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	profile models.AthleteProfile
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Adaptive daily training prescriptions",
	Long: `Coach turns your recovery data and training history into one
concrete workout prescription per day.

HOW IT WORKS:

  Every morning coach combines three signals:

  Readiness      sleep, HRV, body battery, resting HR, and your
                 wellness check-in, blended into a 0-100 score
  Training load  acute:chronic workload ratio, monotony, and strain
                 from your completed workouts
  Plan phase     where you are in the periodized plan toward your goal

  Safety rules run first: a dangerous workload ratio or a depleted
  recovery state forces rest no matter what the plan says.

QUICK START:

  $ coach goal set "10k under 50" --target-date 2026-06-01
  $ coach wellness 8 3 4 7              # Sleep, soreness, stress, mood (1-10)
  $ coach generate                      # Today's prescription
  $ coach complete --duration 45 --avg-hr 152 --max-hr 171
  $ coach feedback just_right           # Rate the session

DEVICE DATA:

  $ coach metrics log --sleep-score 82 --hrv 64 --body-battery 75
  $ coach metrics show                  # Today's synced record

MCP INTEGRATION:

  Run 'coach mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "coach": { "command": "coach", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/coach/coach.db.
  Athlete settings (age, sex, max HR, resting HR) come from
  ~/.config/coach/config.json or COACH_* environment variables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never touch storage
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		profile = cfg.Profile()

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
