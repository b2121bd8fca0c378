// ABOUTME: CLI command for listing the workout template catalog.
// ABOUTME: Shows the session shapes the engine prescribes from.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var templatesAll bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the workout template catalog",
	Long: `List the workout templates the engine prescribes from.

Each line shows: ID  NAME  CATEGORY  DIFFICULTY  ZONE  DURATION

Examples:
  coach templates          # Active templates
  coach templates --all    # Include deactivated templates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := repo.ListTemplates(!templatesAll)
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			inactive := ""
			if !t.Active {
				inactive = faint.Sprint(" (inactive)")
			}
			fmt.Printf("%s %s %s %s %s %s%s\n",
				faint.Sprint(padRight(t.ID, 18)),
				padRight(t.Name, 20),
				padRight(string(t.Category), 10),
				padRight(string(t.Difficulty), 13),
				padRight(string(t.IntensityZone), 6),
				faint.Sprintf("%d-%d min", t.MinDurationMinutes, t.MaxDurationMinutes),
				inactive)
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesAll, "all", false, "include inactive templates")
	rootCmd.AddCommand(templatesCmd)
}
