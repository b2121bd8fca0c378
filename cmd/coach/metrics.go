// ABOUTME: CLI commands for device-synced daily metrics.
// ABOUTME: Log recovery data manually and inspect a day's record.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

var (
	metricsDate       string
	metricsSleepScore float64
	metricsSleepHours float64
	metricsHRV        float64
	metricsHRVStatus  string
	metricsRestingHR  float64
	metricsBattery    float64
	metricsReadiness  float64
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Manage device recovery metrics",
	Long: `Manage the daily recovery metrics normally synced from a watch:
sleep score, sleep hours, HRV, resting heart rate, body battery, and
the device's own training readiness estimate.

Each date gets one record; once logged, a day's metrics are immutable.

Examples:
  coach metrics log --sleep-score 82 --sleep-hours 7.4 --hrv 64
  coach metrics log --body-battery 75 --resting-hr 48
  coach metrics show
  coach metrics show --date 2026-03-10`,
}

var metricsLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a day's metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateFlag(metricsDate)
		if err != nil {
			return err
		}

		m := models.NewDailyMetrics(date)
		if cmd.Flags().Changed("sleep-score") {
			m.SleepScore = models.Some(metricsSleepScore)
		}
		if cmd.Flags().Changed("sleep-hours") {
			m.SleepHours = models.Some(metricsSleepHours)
		}
		if cmd.Flags().Changed("hrv") {
			m.HRVRmssd = models.Some(metricsHRV)
		}
		if metricsHRVStatus != "" {
			m.HRVStatus = models.Some(models.HRVStatus(metricsHRVStatus))
		}
		if cmd.Flags().Changed("resting-hr") {
			m.RestingHeartRate = models.Some(metricsRestingHR)
		}
		if cmd.Flags().Changed("body-battery") {
			m.BodyBattery = models.Some(metricsBattery)
		}
		if cmd.Flags().Changed("training-readiness") {
			m.TrainingReadiness = models.Some(metricsReadiness)
		}

		if !m.HasCoreData() {
			return fmt.Errorf("provide at least one metric flag")
		}

		if err := repo.InsertDailyMetrics(m); err != nil {
			if errors.Is(err, storage.ErrMetricsExist) {
				return fmt.Errorf("metrics already recorded for %s", models.DateKey(m.Date))
			}
			return fmt.Errorf("failed to save metrics: %w", err)
		}

		color.Green("✓ Metrics recorded for %s", models.DateKey(m.Date))
		return nil
	},
}

var metricsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateFlag(metricsDate)
		if err != nil {
			return err
		}

		m, err := repo.GetDailyMetrics(date)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Printf("No metrics for %s.\n", models.DateKey(date))
				return nil
			}
			return fmt.Errorf("failed to load metrics: %w", err)
		}

		fmt.Printf("%s\n", models.DateKey(m.Date))
		printMetric("sleep score", m.SleepScore, "")
		printMetric("sleep hours", m.SleepHours, "h")
		printMetric("hrv rmssd", m.HRVRmssd, "ms")
		if s, ok := m.HRVStatus.Value(); ok {
			fmt.Printf("  %s %s\n", padRight("hrv status", 20), string(s))
		}
		printMetric("resting hr", m.RestingHeartRate, "bpm")
		printMetric("body battery", m.BodyBattery, "")
		printMetric("training readiness", m.TrainingReadiness, "")
		return nil
	},
}

func printMetric(name string, v models.Optional[float64], unit string) {
	val, ok := v.Value()
	if !ok {
		return
	}
	if unit != "" {
		unit = " " + unit
	}
	fmt.Printf("  %s %.1f%s\n", padRight(name, 20), val, unit)
}

func init() {
	metricsCmd.PersistentFlags().StringVar(&metricsDate, "date", "", "date (YYYY-MM-DD), defaults to today")
	metricsLogCmd.Flags().Float64Var(&metricsSleepScore, "sleep-score", 0, "sleep score 0-100")
	metricsLogCmd.Flags().Float64Var(&metricsSleepHours, "sleep-hours", 0, "hours slept")
	metricsLogCmd.Flags().Float64Var(&metricsHRV, "hrv", 0, "overnight HRV RMSSD (ms)")
	metricsLogCmd.Flags().StringVar(&metricsHRVStatus, "hrv-status", "", "device HRV status (balanced, low, unbalanced, poor)")
	metricsLogCmd.Flags().Float64Var(&metricsRestingHR, "resting-hr", 0, "resting heart rate (bpm)")
	metricsLogCmd.Flags().Float64Var(&metricsBattery, "body-battery", 0, "body battery 0-100")
	metricsLogCmd.Flags().Float64Var(&metricsReadiness, "training-readiness", 0, "device training readiness 0-100")

	metricsCmd.AddCommand(metricsLogCmd)
	metricsCmd.AddCommand(metricsShowCmd)
	rootCmd.AddCommand(metricsCmd)
}
