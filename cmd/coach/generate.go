// ABOUTME: CLI command for generating the daily prescription.
// ABOUTME: Runs the engine against a date's snapshot and stores the result.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/engine"
	"github.com/harperreed/coach/internal/models"
)

var (
	generateDate string
	generateJSON bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate the workout prescription for a date",
	Long: `Generate (or regenerate) the workout prescription for a date.

The engine reads your readiness data, training history, and plan phase,
runs the safety rules, and picks the best-fitting workout template.
Regenerating the same date replaces the stored prescription; with
unchanged inputs the result is identical.

Examples:
  coach generate                      # Today
  coach generate --date 2026-03-14    # A specific date
  coach generate --json               # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateFlag(generateDate)
		if err != nil {
			return err
		}

		snap, err := repo.LoadSnapshot(date)
		if err != nil {
			return fmt.Errorf("failed to load data: %w", err)
		}

		p, err := engine.Prescribe(date, snap, profile)
		if err != nil {
			if errors.Is(err, engine.ErrNoActiveGoal) {
				return fmt.Errorf("no active goal: set one with 'coach goal set <name>'")
			}
			if errors.Is(err, engine.ErrEmptyCatalog) {
				return fmt.Errorf("no active workout templates in the catalog")
			}
			return fmt.Errorf("failed to generate prescription: %w", err)
		}

		if err := repo.SavePrescription(p); err != nil {
			return fmt.Errorf("failed to save prescription: %w", err)
		}

		if generateJSON {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printPrescription(p)
		return nil
	},
}

func printPrescription(p *models.Prescription) {
	faint := color.New(color.Faint)

	if p.RestDay() {
		color.Yellow("■ %s - Rest Day", models.DateKey(p.ScheduledDate))
	} else {
		color.Green("■ %s - %s", models.DateKey(p.ScheduledDate), p.TemplateName)
		fmt.Printf("  %s, %d min, target load %.0f\n",
			p.IntensityZone, p.TargetDuration, p.TargetLoad)
		if p.TargetHRMax > 0 {
			fmt.Printf("  Heart rate %d-%d bpm\n", p.TargetHRMin, p.TargetHRMax)
		}
	}

	fmt.Printf("\n  %s\n", p.Reason.Explanation)
	for _, f := range p.Reason.Factors {
		faint.Printf("  · %s\n", f)
	}

	fmt.Printf("\n  Readiness %d · ACWR %.2f (%s) · %s week %d\n",
		p.ReadinessScore,
		p.LoadContext.ACWR, p.LoadContext.RiskLevel,
		p.LoadContext.Phase, p.LoadContext.WeekNumber)

	if len(p.Alternatives) > 0 {
		fmt.Printf("  Alternatives: ")
		for i, alt := range p.Alternatives {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(alt)
		}
		fmt.Println()
	}

	if len(p.NextThreeDays) > 0 {
		faint.Print("  Next days:")
		for _, d := range p.NextThreeDays {
			faint.Printf(" %s %s", d.Date, d.Outlook)
		}
		faint.Println()
	}
}

// resolveDateFlag parses a --date value, defaulting to today.
func resolveDateFlag(s string) (time.Time, error) {
	if s == "" {
		return models.DateOnly(time.Now()), nil
	}
	t, err := models.ParseDateKey(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func init() {
	generateCmd.Flags().StringVar(&generateDate, "date", "", "date to prescribe for (YYYY-MM-DD)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output JSON")
	rootCmd.AddCommand(generateCmd)
}
