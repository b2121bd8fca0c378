// ABOUTME: TemplateSelector: filters and scores the catalog for the day.
// ABOUTME: Runs only when no safety gate tripped; ties break on template ID.
package engine

import (
	"sort"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/policy"
)

// selectTemplate filters the active catalog by intensity capability,
// recovery spacing, and weekly caps, scores the survivors, and returns
// the winner plus the next few names as alternatives.
func selectTemplate(ctx *evalContext) (*models.WorkoutTemplate, []string, error) {
	allowHard := intensityAllowed(ctx)

	candidates := make([]*models.WorkoutTemplate, 0, len(ctx.active))
	for _, t := range ctx.active {
		if !allowHard && (t.Difficulty == models.DifficultyAdvanced || t.Category.HighIntensity()) {
			continue
		}
		if t.RequiresRecoveryDays > 0 {
			days, ok := ctx.history.DaysSinceLastHard.Value()
			if ok && days < t.RequiresRecoveryDays {
				continue
			}
		}
		if t.MaxPerWeek > 0 && recentCount(ctx, t.Category) >= t.MaxPerWeek {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return nil, nil, ErrNoCandidates
	}

	type scored struct {
		tpl   *models.WorkoutTemplate
		score int
	}
	scoredPool := make([]scored, 0, len(candidates))
	for _, t := range candidates {
		scoredPool = append(scoredPool, scored{tpl: t, score: scoreTemplate(ctx, t)})
	}

	sort.Slice(scoredPool, func(i, j int) bool {
		if scoredPool[i].score != scoredPool[j].score {
			return scoredPool[i].score > scoredPool[j].score
		}
		return scoredPool[i].tpl.ID < scoredPool[j].tpl.ID
	})

	winner := scoredPool[0].tpl
	alternatives := make([]string, 0, policy.SelectorAlternatives)
	for _, s := range scoredPool[1:] {
		if len(alternatives) == policy.SelectorAlternatives {
			break
		}
		alternatives = append(alternatives, s.tpl.Name)
	}
	return winner, alternatives, nil
}

// recentCount returns how many workouts in the acute window share the
// category. Templates with a weekly cap drop out of the pool once the
// count reaches it.
func recentCount(ctx *evalContext, c models.Category) int {
	n := 0
	for _, rc := range ctx.history.RecentCategories {
		if rc == c {
			n++
		}
	}
	return n
}

// scoreTemplate starts every candidate at a neutral base and nudges for
// phase fit, variety, and difficulty fit.
func scoreTemplate(ctx *evalContext, t *models.WorkoutTemplate) int {
	score := policy.ScoreBase

	for _, focus := range ctx.phase.FocusAreas {
		if t.Category == focus {
			score += policy.ScorePhaseFocus
			break
		}
	}

	if recentCount(ctx, t.Category) > 0 {
		score += policy.ScoreRepeatPenalty
	} else {
		score += policy.ScoreVarietyBonus
	}

	if t.Difficulty == ctx.phase.TypicalDifficulty {
		score += policy.ScoreDifficultyFit
	}

	return score
}
