// ABOUTME: CLI commands for managing training goals.
// ABOUTME: Set, list, complete, and abandon the goal driving the plan.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
)

var (
	goalStart       string
	goalTargetDate  string
	goalTargetValue float64
	goalTargetUnit  string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage training goals",
	Long: `Manage training goals. Exactly one goal is active at a time;
setting a new one retires the previous goal. The active goal's start
and target dates drive the periodized plan.

Examples:
  coach goal set "10k under 50" --target-date 2026-06-01 --target-value 50 --target-unit minutes
  coach goal list
  coach goal complete abc123
  coach goal abandon abc123`,
}

var goalSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the active goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := models.DateOnly(time.Now())
		if goalStart != "" {
			var err error
			start, err = models.ParseDateKey(goalStart)
			if err != nil {
				return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", goalStart)
			}
		}

		g := models.NewGoal(args[0], start)
		if goalTargetDate != "" {
			target, err := models.ParseDateKey(goalTargetDate)
			if err != nil {
				return fmt.Errorf("invalid target date %q: expected YYYY-MM-DD", goalTargetDate)
			}
			if !target.After(start) {
				return fmt.Errorf("target date must be after the start date")
			}
			g.WithTargetDate(target)
		}
		if goalTargetValue > 0 {
			g.WithTarget(goalTargetValue, goalTargetUnit)
		}

		if err := repo.CreateGoal(g); err != nil {
			return fmt.Errorf("failed to set goal: %w", err)
		}

		color.Green("✓ Active goal: %s", g.Name)
		if td, ok := g.TargetDate.Value(); ok {
			fmt.Printf("  Target %s\n", models.DateKey(td))
		}
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals, err := repo.ListGoals()
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}
		if len(goals) == 0 {
			fmt.Println("No goals found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, g := range goals {
			target := ""
			if td, ok := g.TargetDate.Value(); ok {
				target = " → " + models.DateKey(td)
			}
			fmt.Printf("%s %s %s%s %s\n",
				faint.Sprint(g.ID.String()[:8]),
				padRight(string(g.Status), 10),
				g.Name,
				target,
				faint.Sprintf("(started %s)", models.DateKey(g.StartDate)))
		}
		return nil
	},
}

var goalCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a goal as achieved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.UpdateGoalStatus(args[0], models.GoalCompleted); err != nil {
			return fmt.Errorf("failed to complete goal: %w", err)
		}
		color.Green("✓ Goal completed")
		return nil
	},
}

var goalAbandonCmd = &cobra.Command{
	Use:   "abandon <id>",
	Short: "Abandon a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.UpdateGoalStatus(args[0], models.GoalAbandoned); err != nil {
			return fmt.Errorf("failed to abandon goal: %w", err)
		}
		color.Yellow("■ Goal abandoned")
		return nil
	},
}

func init() {
	goalSetCmd.Flags().StringVar(&goalStart, "start", "", "start date (YYYY-MM-DD), defaults to today")
	goalSetCmd.Flags().StringVar(&goalTargetDate, "target-date", "", "goal date (YYYY-MM-DD)")
	goalSetCmd.Flags().Float64Var(&goalTargetValue, "target-value", 0, "quantitative target")
	goalSetCmd.Flags().StringVar(&goalTargetUnit, "target-unit", "", "unit for the target value")

	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalCompleteCmd)
	goalCmd.AddCommand(goalAbandonCmd)
	rootCmd.AddCommand(goalCmd)
}
