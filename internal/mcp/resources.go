// ABOUTME: MCP resource implementations for the prescription engine.
// ABOUTME: Provides coach://today, coach://plan, and coach://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/coach/internal/load"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/plan"
	"github.com/harperreed/coach/internal/storage"
)

func (s *Server) registerResources() {
	// coach://today - Today's prescription, if one has been generated
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://today",
		Name:        "Today's Prescription",
		Description: "The stored workout prescription for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// coach://plan - Current periodization phase and short-range outlook
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://plan",
		Name:        "Training Plan Status",
		Description: "Current phase, week number, targets, and next-days outlook",
		MIMEType:    "application/json",
	}, s.handlePlanResource)

	// coach://history - Recent workouts with load summary
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "coach://history",
		Name:        "Training History",
		Description: "Recent completed workouts with ACWR, monotony, and strain",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.DateOnly(time.Now())

	p, err := s.repo.GetPrescription(today)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return resourceJSON("coach://today", map[string]interface{}{
				"date":    models.DateKey(today),
				"message": "No prescription generated for today yet.",
			})
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}

	return resourceJSON("coach://today", p)
}

func (s *Server) handlePlanResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.DateOnly(time.Now())

	snap, err := s.repo.LoadSnapshot(today)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap.Goal == nil {
		return resourceJSON("coach://plan", map[string]interface{}{
			"message": "No active goal.",
		})
	}

	history := load.DeriveHistory(snap.Workouts, today)
	phase := plan.Compute(snap.Goal, today, history.WeeklyLoads)
	outlook := plan.NextDaysOutlook(snap.Goal, today, history.WeeklyLoads, 7)

	result := map[string]interface{}{
		"goal":               snap.Goal.Name,
		"phase":              string(phase.Name),
		"week_number":        phase.WeekNumber,
		"total_weeks":        phase.TotalWeeks,
		"deload":             phase.Deload,
		"volume_percent":     phase.VolumeTargetPercent,
		"intensity_percent":  phase.IntensityTargetPercent,
		"weekly_load_target": phase.WeeklyLoadTarget,
		"outlook":            outlook,
	}
	return resourceJSON("coach://plan", result)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := models.DateOnly(time.Now())

	snap, err := s.repo.LoadSnapshot(today)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	history := load.DeriveHistory(snap.Workouts, today)

	workouts := make([]map[string]interface{}, 0, len(snap.Workouts))
	for _, w := range snap.Workouts {
		entry := map[string]interface{}{
			"date":             models.DateKey(w.Date),
			"category":         string(w.Category),
			"duration_minutes": w.DurationMinutes,
			"load":             w.Load,
		}
		if fb, ok := w.Feedback.Value(); ok {
			entry["feedback"] = string(fb)
		}
		workouts = append(workouts, entry)
	}

	result := map[string]interface{}{
		"acute_load":        history.ACWR.AcuteLoad,
		"chronic_load":      history.ACWR.ChronicLoad,
		"acwr":              history.ACWR.Ratio,
		"risk_level":        history.ACWR.RiskLevel,
		"monotony":          history.Monotony,
		"strain":            history.Strain,
		"week_to_date_load": history.WeekToDateLoad,
		"workouts":          workouts,
	}
	return resourceJSON("coach://history", result)
}

func resourceJSON(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
