// ABOUTME: MCP tool implementations for the prescription engine.
// ABOUTME: Exposes generation, readiness, load, and wellness logging.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/coach/internal/engine"
	"github.com/harperreed/coach/internal/load"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/readiness"
)

func (s *Server) registerTools() {
	// generate_prescription
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_prescription",
		Description: "Generate (or regenerate) the workout prescription for a date",
	}, s.handleGeneratePrescription)

	// get_readiness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_readiness",
		Description: "Compute the readiness score and recommendation for a date",
	}, s.handleGetReadiness)

	// get_training_load
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_training_load",
		Description: "Compute ACWR, monotony, and strain from the workout history",
	}, s.handleGetTrainingLoad)

	// log_wellness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_wellness",
		Description: "Record the daily wellness questionnaire (1-10 scales)",
	}, s.handleLogWellness)

	// list_prescriptions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_prescriptions",
		Description: "List recent stored prescriptions, newest first",
	}, s.handleListPrescriptions)
}

// Tool input/output types

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type readinessOutput struct {
	Date           string   `json:"date"`
	Overall        int      `json:"overall"`
	Recommendation string   `json:"recommendation"`
	Concerns       []string `json:"concerns,omitempty"`
	DataQuality    string   `json:"data_quality"`
	Reasoning      string   `json:"reasoning,omitempty"`
}

type trainingLoadOutput struct {
	Date            string  `json:"date"`
	AcuteLoad       float64 `json:"acute_load"`
	ChronicLoad     float64 `json:"chronic_load"`
	ACWR            float64 `json:"acwr"`
	RiskLevel       string  `json:"risk_level"`
	Monotony        float64 `json:"monotony"`
	Strain          float64 `json:"strain"`
	WeekToDateLoad  float64 `json:"week_to_date_load"`
	WorkoutsInRange int     `json:"workouts_in_range"`
}

type logWellnessInput struct {
	Date           string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	SleepQuality   int    `json:"sleep_quality" jsonschema:"Sleep quality 1-10 where 10 is best"`
	MuscleSoreness int    `json:"muscle_soreness" jsonschema:"Muscle soreness 1-10 where 10 is worst"`
	StressLevel    int    `json:"stress_level" jsonschema:"Stress level 1-10 where 10 is worst"`
	Mood           int    `json:"mood" jsonschema:"Mood 1-10 where 10 is best"`
}

type wellnessOutput struct {
	Date          string `json:"date"`
	WellnessScore int    `json:"wellness_score"`
	Message       string `json:"message"`
}

type listPrescriptionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 7)"`
}

// Tool handlers

func (s *Server) handleGeneratePrescription(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, nil, err
	}

	snap, err := s.repo.LoadSnapshot(date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	p, err := engine.Prescribe(date, snap, s.profile)
	if err != nil {
		if errors.Is(err, engine.ErrNoActiveGoal) {
			return nil, nil, fmt.Errorf("no active goal: set one before generating prescriptions")
		}
		return nil, nil, fmt.Errorf("failed to generate prescription: %w", err)
	}

	if err := s.repo.SavePrescription(p); err != nil {
		return nil, nil, fmt.Errorf("failed to save prescription: %w", err)
	}

	return nil, p, nil
}

func (s *Server) handleGetReadiness(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, readinessOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, readinessOutput{}, err
	}

	snap, err := s.repo.LoadSnapshot(date)
	if err != nil {
		return nil, readinessOutput{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	score := readiness.Assess(readiness.Input{
		Date:     date,
		Today:    snap.TodayMetrics,
		Recent:   snap.RecentMetrics,
		Wellness: snap.Wellness,
	})

	out := readinessOutput{
		Date:           models.DateKey(date),
		Overall:        score.Overall,
		Recommendation: string(score.Recommendation),
		DataQuality:    string(score.DataQuality),
		Reasoning:      score.Reasoning,
	}
	for _, c := range score.Concerns {
		out.Concerns = append(out.Concerns, string(c))
	}
	return nil, out, nil
}

func (s *Server) handleGetTrainingLoad(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, trainingLoadOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, trainingLoadOutput{}, err
	}

	snap, err := s.repo.LoadSnapshot(date)
	if err != nil {
		return nil, trainingLoadOutput{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	history := load.DeriveHistory(snap.Workouts, date)
	return nil, trainingLoadOutput{
		Date:            models.DateKey(date),
		AcuteLoad:       history.ACWR.AcuteLoad,
		ChronicLoad:     history.ACWR.ChronicLoad,
		ACWR:            history.ACWR.Ratio,
		RiskLevel:       history.ACWR.RiskLevel,
		Monotony:        history.Monotony,
		Strain:          history.Strain,
		WeekToDateLoad:  history.WeekToDateLoad,
		WorkoutsInRange: len(snap.Workouts),
	}, nil
}

func (s *Server) handleLogWellness(ctx context.Context, req *mcp.CallToolRequest, input logWellnessInput) (*mcp.CallToolResult, wellnessOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, wellnessOutput{}, err
	}

	w, err := models.NewWellnessRecord(date, input.SleepQuality, input.MuscleSoreness, input.StressLevel, input.Mood)
	if err != nil {
		return nil, wellnessOutput{}, err
	}
	if err := s.repo.UpsertWellness(w); err != nil {
		return nil, wellnessOutput{}, fmt.Errorf("failed to save wellness: %w", err)
	}

	return nil, wellnessOutput{
		Date:          models.DateKey(w.Date),
		WellnessScore: w.WellnessScore,
		Message:       fmt.Sprintf("Logged wellness for %s: score %d", models.DateKey(w.Date), w.WellnessScore),
	}, nil
}

func (s *Server) handleListPrescriptions(ctx context.Context, req *mcp.CallToolRequest, input listPrescriptionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 7
	}

	prescriptions, err := s.repo.ListPrescriptions(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	if len(prescriptions) == 0 {
		return nil, map[string]interface{}{"message": "No prescriptions found."}, nil
	}
	return nil, prescriptions, nil
}

// resolveDate parses a YYYY-MM-DD input, defaulting to today.
func resolveDate(s string) (time.Time, error) {
	if s == "" {
		return models.DateOnly(time.Now()), nil
	}
	t, err := models.ParseDateKey(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
