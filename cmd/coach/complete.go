// ABOUTME: CLI command for logging a completed workout.
// ABOUTME: Derives the session's training load from heart rate or RPE.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/load"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

var (
	completeDate     string
	completeTemplate string
	completeDuration int
	completeAvgHR    float64
	completeMaxHR    float64
	completeRPE      int
)

var completeCmd = &cobra.Command{
	Use:     "complete",
	Aliases: []string{"done", "c"},
	Short:   "Log a completed workout",
	Long: `Log a completed workout into the training history.

By default the session is matched against the date's stored
prescription; use --template to log something else. Training load is
derived from heart rate (Banister TRIMP) when --avg-hr is given, or
from --rpe (session-RPE) otherwise. One of the two is required.

Examples:
  coach complete --duration 45 --avg-hr 152 --max-hr 171
  coach complete --duration 30 --rpe 6
  coach complete --template easy-run --duration 40 --rpe 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateFlag(completeDate)
		if err != nil {
			return err
		}
		if completeAvgHR <= 0 && completeRPE <= 0 {
			return fmt.Errorf("provide --avg-hr or --rpe so the session's load can be derived")
		}

		tmpl, duration, err := resolveSession(date)
		if err != nil {
			return err
		}
		if completeDuration > 0 {
			duration = completeDuration
		}
		if duration <= 0 {
			return fmt.Errorf("provide --duration in minutes")
		}

		w := models.NewCompletedWorkout(date, tmpl.Category, tmpl.Difficulty, duration)
		if completeAvgHR > 0 {
			maxHR := completeMaxHR
			if maxHR <= 0 {
				maxHR = completeAvgHR
			}
			w.WithHeartRates(completeAvgHR, maxHR)
			w.Load = load.Banister(float64(duration), completeAvgHR,
				profile.EffectiveRestingHR(), profile.EffectiveMaxHR(), profile.Male)
		} else {
			w.WithRPE(completeRPE)
			w.Load = load.SessionRPE(float64(duration), completeRPE)
		}

		if err := repo.CreateWorkout(w); err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Logged %s (%d min, load %.0f)", tmpl.Name, duration, w.Load)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(w.ID.String()[:8]))
		return nil
	},
}

// resolveSession finds the template for the session being logged: the
// explicit --template flag, or the date's stored prescription.
func resolveSession(date time.Time) (*models.WorkoutTemplate, int, error) {
	if completeTemplate != "" {
		tmpl, err := repo.GetTemplate(completeTemplate)
		if err != nil {
			return nil, 0, fmt.Errorf("unknown template %q", completeTemplate)
		}
		return tmpl, tmpl.MidDuration(), nil
	}

	p, err := repo.GetPrescription(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, 0, fmt.Errorf("no prescription for %s: use --template to log directly", models.DateKey(date))
		}
		return nil, 0, fmt.Errorf("failed to load prescription: %w", err)
	}
	if p.RestDay() {
		return nil, 0, fmt.Errorf("%s is a prescribed rest day: use --template to log anyway", models.DateKey(date))
	}

	tmpl, err := repo.GetTemplate(p.TemplateID)
	if err != nil {
		return nil, 0, fmt.Errorf("prescription template %q no longer exists", p.TemplateID)
	}
	return tmpl, p.TargetDuration, nil
}

func init() {
	completeCmd.Flags().StringVar(&completeDate, "date", "", "workout date (YYYY-MM-DD), defaults to today")
	completeCmd.Flags().StringVar(&completeTemplate, "template", "", "template ID when logging off-plan")
	completeCmd.Flags().IntVar(&completeDuration, "duration", 0, "actual duration in minutes")
	completeCmd.Flags().Float64Var(&completeAvgHR, "avg-hr", 0, "average heart rate (bpm)")
	completeCmd.Flags().Float64Var(&completeMaxHR, "max-hr", 0, "max heart rate (bpm)")
	completeCmd.Flags().IntVar(&completeRPE, "rpe", 0, "session RPE 1-10, used when no heart rate")
	rootCmd.AddCommand(completeCmd)
}
