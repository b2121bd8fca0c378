// ABOUTME: CLI command for the daily wellness questionnaire.
// ABOUTME: Four 1-10 answers collapsed into the day's wellness score.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
)

var wellnessDate string

var wellnessCmd = &cobra.Command{
	Use:   "wellness <sleep> <soreness> <stress> <mood>",
	Short: "Log the daily wellness check-in",
	Long: `Log the subjective wellness questionnaire for a day. All four
answers are 1-10 scales:

  sleep     quality of last night's sleep (10 = excellent)
  soreness  muscle soreness (10 = very sore)
  stress    life stress (10 = maxed out)
  mood      overall mood (10 = great)

Re-submitting for the same date replaces the earlier answers.

Examples:
  coach wellness 8 3 4 7
  coach wellness 5 7 6 4 --date 2026-03-10`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateFlag(wellnessDate)
		if err != nil {
			return err
		}

		values := make([]int, 4)
		for i, arg := range args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid answer %q: expected a number 1-10", arg)
			}
			values[i] = v
		}

		w, err := models.NewWellnessRecord(date, values[0], values[1], values[2], values[3])
		if err != nil {
			return err
		}
		if err := repo.UpsertWellness(w); err != nil {
			return fmt.Errorf("failed to save wellness: %w", err)
		}

		color.Green("✓ Wellness for %s: %d/100", models.DateKey(w.Date), w.WellnessScore)
		return nil
	},
}

func init() {
	wellnessCmd.Flags().StringVar(&wellnessDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(wellnessCmd)
}
