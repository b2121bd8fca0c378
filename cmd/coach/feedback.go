// ABOUTME: CLI command for rating a completed workout.
// ABOUTME: Attaches too_easy/just_right/too_hard to the latest session.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

var feedbackID string

var feedbackCmd = &cobra.Command{
	Use:   "feedback <too_easy|just_right|too_hard>",
	Short: "Rate a completed workout",
	Long: `Record how a completed workout felt. Applies to the most
recently logged session unless --id selects another one.

Examples:
  coach feedback just_right
  coach feedback too_hard --id abc123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verdict := args[0]
		if !models.IsValidFeedback(verdict) {
			return fmt.Errorf("invalid feedback %q: use too_easy, just_right, or too_hard", verdict)
		}

		id := feedbackID
		if id == "" {
			w, err := repo.GetLatestWorkout()
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("no workouts logged yet")
				}
				return fmt.Errorf("failed to find latest workout: %w", err)
			}
			id = w.ID.String()
		}

		if err := repo.SetWorkoutFeedback(id, models.Feedback(verdict)); err != nil {
			return fmt.Errorf("failed to record feedback: %w", err)
		}

		color.Green("✓ Recorded %s", verdict)
		return nil
	},
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackID, "id", "", "workout ID or prefix")
	rootCmd.AddCommand(feedbackCmd)
}
