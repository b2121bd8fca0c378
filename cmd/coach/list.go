// ABOUTME: CLI command for listing stored prescriptions.
// ABOUTME: Shows recent prescriptions with readiness and load context.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
)

var (
	listLimit int
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent prescriptions",
	Long: `List stored prescriptions, newest first.

Each line shows: DATE  WORKOUT  ZONE  DURATION  READINESS  ACWR

Examples:
  coach list          # Last 7 prescriptions
  coach list -n 30    # Last 30
  coach list --json   # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prescriptions, err := repo.ListPrescriptions(listLimit)
		if err != nil {
			return fmt.Errorf("failed to list prescriptions: %w", err)
		}

		if len(prescriptions) == 0 {
			fmt.Println("No prescriptions found.")
			return nil
		}

		if listJSON {
			data, err := json.MarshalIndent(prescriptions, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range prescriptions {
			name := p.TemplateName
			if p.RestDay() {
				name = "Rest Day"
			}
			fmt.Printf("%s %s %s %s %s\n",
				faint.Sprint(models.DateKey(p.ScheduledDate)),
				padRight(name, 20),
				padRight(string(p.IntensityZone), 6),
				padRight(fmt.Sprintf("%d min", p.TargetDuration), 8),
				faint.Sprintf("readiness %d acwr %.2f", p.ReadinessScore, p.LoadContext.ACWR))
		}

		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 7, "max number of results")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")
	rootCmd.AddCommand(listCmd)
}
