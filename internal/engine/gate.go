// ABOUTME: SafetyGate: ordered override rules evaluated before selection.
// ABOUTME: First tripped rule wins and emits a complete conservative prescription.
package engine

import (
	"fmt"
	"sort"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/policy"
	"github.com/harperreed/coach/internal/readiness"
)

// gateRule is one circuit-breaker entry. Rules run top to bottom; order
// is load-bearing, the most dangerous condition must win.
type gateRule struct {
	name  string
	trips func(*evalContext) bool
	build func(*evalContext) *models.Prescription
}

var gateRules = []gateRule{
	{
		name: "critical acwr",
		trips: func(ctx *evalContext) bool {
			return ctx.history.ACWR.Ratio > policy.ACWRCriticalThreshold
		},
		build: func(ctx *evalContext) *models.Prescription {
			return restPrescription(ctx, fmt.Sprintf(
				"ACWR %.2f exceeds %.1f: injury risk is roughly %.0fx baseline at this ratio. Full rest today.",
				ctx.history.ACWR.Ratio, policy.ACWRCriticalThreshold, ctx.history.ACWR.RiskMultiplier))
		},
	},
	{
		name: "depleted body battery",
		trips: func(ctx *evalContext) bool {
			if ctx.snap.TodayMetrics == nil {
				return false
			}
			v, ok := ctx.snap.TodayMetrics.BodyBattery.Value()
			return ok && v < policy.BodyBatteryRestThreshold
		},
		build: func(ctx *evalContext) *models.Prescription {
			bb, _ := ctx.snap.TodayMetrics.BodyBattery.Value()
			return restPrescription(ctx, fmt.Sprintf(
				"Body battery at %.0f, below the %.0f rest threshold. Recover before training again.",
				bb, policy.BodyBatteryRestThreshold))
		},
	},
	{
		name: "missing recovery data",
		trips: func(ctx *evalContext) bool {
			return ctx.score.DataQuality == readiness.QualityMissing
		},
		build: func(ctx *evalContext) *models.Prescription {
			return restPrescription(ctx,
				"No usable recovery data for several days; prescribing training blind is not safe. Rest until metrics sync.")
		},
	},
	{
		name: "high acwr",
		trips: func(ctx *evalContext) bool {
			return ctx.history.ACWR.Ratio > policy.ACWRHighThreshold
		},
		build: buildRecoveryOnly,
	},
	{
		name: "elevated acwr",
		trips: func(ctx *evalContext) bool {
			return ctx.history.ACWR.Ratio > policy.ACWRCautionThreshold
		},
		build: buildRestrictedEasy,
	},
}

// restPrescription is the shared mandatory-rest outcome.
func restPrescription(ctx *evalContext, explanation string) *models.Prescription {
	p := newPrescription(ctx, nil)
	p.TemplateName = "Rest Day"
	p.Category = models.CategoryRecovery
	p.IntensityZone = models.ZoneRest
	p.TargetDuration = 0
	p.TargetLoad = 0
	p.Reason = models.AdaptationReason{
		Primary:     "mandatory rest",
		Factors:     reasonFactors(ctx),
		Explanation: explanation,
	}
	return p
}

// buildRecoveryOnly restricts the pool to recovery and mobility work and
// picks the gentlest option.
func buildRecoveryOnly(ctx *evalContext) *models.Prescription {
	pool := make([]*models.WorkoutTemplate, 0, len(ctx.active))
	for _, t := range ctx.active {
		if t.Category == models.CategoryRecovery || t.Category == models.CategoryMobility {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		return restPrescription(ctx, fmt.Sprintf(
			"ACWR %.2f is in the high-risk band and no recovery templates exist. Resting instead.",
			ctx.history.ACWR.Ratio))
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].EstimatedLoadFactor != pool[j].EstimatedLoadFactor {
			return pool[i].EstimatedLoadFactor < pool[j].EstimatedLoadFactor
		}
		return pool[i].ID < pool[j].ID
	})

	winner := pool[0]
	p := newPrescription(ctx, winner)
	p.TargetDuration = winner.MidDuration()
	p.TargetLoad = winner.EstimatedLoadFactor * 100
	if winner.IntensityZone != models.ZoneRest {
		p.TargetHRMin, p.TargetHRMax = hrBounds(winner.IntensityZone, ctx.profile.EffectiveMaxHR(), ctx.phase.IntensityTargetPercent)
	}
	for _, alt := range pool[1:] {
		if len(p.Alternatives) == policy.GateMaxAlternatives {
			break
		}
		p.Alternatives = append(p.Alternatives, alt.Name)
	}
	p.Reason = models.AdaptationReason{
		Primary: "recovery only",
		Factors: reasonFactors(ctx),
		Explanation: fmt.Sprintf(
			"ACWR %.2f is above %.1f: restricting to recovery and mobility work until the ratio settles.",
			ctx.history.ACWR.Ratio, policy.ACWRHighThreshold),
	}
	return p
}

// buildRestrictedEasy keeps training going in the caution band but caps
// every dial: beginner difficulty, low load, short duration, zones 1-2.
func buildRestrictedEasy(ctx *evalContext) *models.Prescription {
	pool := make([]*models.WorkoutTemplate, 0, len(ctx.active))
	for _, t := range ctx.active {
		if t.Difficulty != models.DifficultyBeginner {
			continue
		}
		if t.Category.HighIntensity() {
			continue
		}
		if t.EstimatedLoadFactor > policy.GateMaxLoadFactor {
			continue
		}
		pool = append(pool, t)
	}
	if len(pool) == 0 {
		return restPrescription(ctx, fmt.Sprintf(
			"ACWR %.2f is in the caution band and no suitably easy templates exist. Resting instead.",
			ctx.history.ACWR.Ratio))
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].EstimatedLoadFactor != pool[j].EstimatedLoadFactor {
			return pool[i].EstimatedLoadFactor < pool[j].EstimatedLoadFactor
		}
		return pool[i].ID < pool[j].ID
	})

	winner := pool[0]
	p := newPrescription(ctx, winner)
	p.TargetDuration = winner.MidDuration()
	if p.TargetDuration > policy.GateMaxDurationMinutes {
		p.TargetDuration = policy.GateMaxDurationMinutes
	}
	p.TargetLoad = winner.EstimatedLoadFactor * 100

	// Zones 1-2 regardless of what the template asks for.
	maxHR := ctx.profile.EffectiveMaxHR()
	p.TargetHRMin = int(maxHR * 0.60)
	p.TargetHRMax = int(maxHR * 0.70)
	p.IntensityZone = models.ZoneEasy

	p.Reason = models.AdaptationReason{
		Primary: "restricted easy session",
		Factors: reasonFactors(ctx),
		Explanation: fmt.Sprintf(
			"ACWR %.2f is above %.1f: easy work only, capped at %d minutes in zones 1-2.",
			ctx.history.ACWR.Ratio, policy.ACWRCautionThreshold, policy.GateMaxDurationMinutes),
	}
	return p
}
