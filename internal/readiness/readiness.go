// ABOUTME: ReadinessAssessor: composite recovery score with quality tiers.
// ABOUTME: Degrades safely on stale or missing data instead of guessing.
package readiness

import (
	"fmt"
	"math"
	"time"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/policy"
)

// Recommendation is the assessor's training verdict for the day.
type Recommendation string

const (
	RecommendReady Recommendation = "ready"
	RecommendLight Recommendation = "light"
	RecommendRest  Recommendation = "rest"
)

// DataQuality grades how much the composite can be trusted.
type DataQuality string

const (
	QualityMeasured DataQuality = "measured" // today's data, full confidence
	QualityStale    DataQuality = "stale"    // 1-2 day old data, penalized
	QualityMissing  DataQuality = "missing"  // nothing usable, floor substituted
)

// Concern names one flagged recovery signal.
type Concern string

const (
	ConcernPoorSleep        Concern = "poor_sleep"
	ConcernShortSleep       Concern = "insufficient_sleep_duration"
	ConcernLowHRV           Concern = "low_hrv"
	ConcernHRVBelowBaseline Concern = "hrv_below_baseline"
	ConcernLowBodyBattery   Concern = "low_body_battery"
	ConcernElevatedRHR      Concern = "elevated_rhr"
	ConcernLowWellness      Concern = "low_wellness"
)

// Components holds the per-signal sub-scores that fed the composite.
// Absent components were excluded and their weight renormalized away.
type Components struct {
	Sleep       models.Optional[float64]
	HRV         models.Optional[float64]
	BodyBattery models.Optional[float64]
	RestingHR   models.Optional[float64]
	Wellness    models.Optional[float64]
}

// Score is the assessor's full answer for one date.
type Score struct {
	Overall        int
	Components     Components
	Recommendation Recommendation
	Concerns       []Concern
	DataQuality    DataQuality
	Reasoning      string // set only when a conflict override fired
}

// Input is everything the assessor reads. Recent holds prior metric
// records newest first; they supply staleness fallback and the HRV and
// resting-HR baselines.
type Input struct {
	Date     time.Time
	Today    *models.DailyMetrics
	Recent   []*models.DailyMetrics
	Wellness *models.WellnessRecord
}

// Assess computes the composite readiness score for the input date.
func Assess(in Input) Score {
	metrics, quality, penalty := resolveMetrics(in)

	if quality == QualityMissing {
		floor := missingFloor(in)
		return Score{
			Overall:        floor,
			Recommendation: RecommendRest,
			DataQuality:    QualityMissing,
			Reasoning:      "no recent recovery data; resting until metrics sync",
		}
	}

	hrvBaseline := baselineOf(in.Recent, func(m *models.DailyMetrics) models.Optional[float64] { return m.HRVRmssd })
	rhrBaseline := baselineOf(in.Recent, func(m *models.DailyMetrics) models.Optional[float64] { return m.RestingHeartRate })

	comp, concerns := scoreComponents(metrics, in.Wellness, hrvBaseline, rhrBaseline, penalty)

	overall := weightedOverall(comp)
	cap := qualityCap(quality)
	if overall > cap {
		overall = cap
	}

	s := Score{
		Overall:     overall,
		Components:  comp,
		Concerns:    concerns,
		DataQuality: quality,
	}
	s.Recommendation = recommend(overall, len(concerns))
	applyConflictOverride(&s)
	return s
}

// resolveMetrics picks the record to score from and the quality tier.
// Today's record wins when it has core data; otherwise the most recent
// prior record within the staleness window is used at a penalty.
func resolveMetrics(in Input) (*models.DailyMetrics, DataQuality, float64) {
	if in.Today != nil && in.Today.HasCoreData() {
		return in.Today, QualityMeasured, 1.0
	}
	for _, m := range in.Recent {
		if !m.HasCoreData() {
			continue
		}
		age := int(models.DateOnly(in.Date).Sub(m.Date).Hours() / 24)
		if age <= policy.StaleMetricsMaxAgeDays {
			return m, QualityStale, policy.StalePenaltyFactor
		}
		break // newest-first: anything older is out of the window too
	}
	return nil, QualityMissing, 0
}

// missingFloor substitutes a conservative score when no data is usable:
// slightly less pessimistic when the gap is short (an empty record for
// today still proves the sync ran).
func missingFloor(in Input) int {
	if in.Today != nil {
		return int(policy.MissingFloorFresh)
	}
	for _, m := range in.Recent {
		age := int(models.DateOnly(in.Date).Sub(m.Date).Hours() / 24)
		if age <= policy.StaleMetricsMaxAgeDays {
			return int(policy.MissingFloorFresh)
		}
		break
	}
	return int(policy.MissingFloorOld)
}

func qualityCap(q DataQuality) int {
	switch q {
	case QualityMeasured:
		return policy.CapMeasured
	case QualityStale:
		return policy.CapStale
	default:
		return policy.CapMissingOld
	}
}

// scoreComponents derives each sub-score present in the record, applying
// the staleness penalty uniformly.
func scoreComponents(m *models.DailyMetrics, wellness *models.WellnessRecord, hrvBaseline, rhrBaseline models.Optional[float64], penalty float64) (Components, []Concern) {
	var comp Components
	var concerns []Concern

	if v, ok := m.SleepScore.Value(); ok {
		comp.Sleep = models.Some(scoreComponent(v, policy.SleepScoreCurve) * penalty)
		if v < policy.SleepScoreCurve.Fair {
			concerns = append(concerns, ConcernPoorSleep)
		}
	}
	if hours, ok := m.SleepHours.Value(); ok && hours < policy.MinSleepHours {
		concerns = append(concerns, ConcernShortSleep)
	}

	if hrvScore, ok := scoreHRV(m, hrvBaseline); ok {
		comp.HRV = models.Some(hrvScore * penalty)
		if rmssd, ok := m.HRVRmssd.Value(); ok {
			if baseline, ok := hrvBaseline.Value(); ok && baseline > 0 {
				ratio := rmssd / baseline
				if ratio < policy.HRVRatioLow {
					concerns = append(concerns, ConcernLowHRV)
				} else if ratio < policy.HRVBaselineRatio {
					concerns = append(concerns, ConcernHRVBelowBaseline)
				}
			}
		}
	}

	if v, ok := m.BodyBattery.Value(); ok {
		comp.BodyBattery = models.Some(scoreComponent(v, policy.BodyBatteryCurve) * penalty)
		if v < policy.ConcernBodyBattery {
			concerns = append(concerns, ConcernLowBodyBattery)
		}
	}

	if v, ok := m.RestingHeartRate.Value(); ok {
		inverted := policy.RestingHRInversionBase - v
		comp.RestingHR = models.Some(scoreComponent(inverted, policy.RestingHRCurve) * penalty)
		if baseline, ok := rhrBaseline.Value(); ok && v > baseline+policy.ElevatedRHRDelta {
			concerns = append(concerns, ConcernElevatedRHR)
		}
	}

	if wellness != nil {
		comp.Wellness = models.Some(float64(wellness.WellnessScore))
		if wellness.WellnessScore < policy.ConcernWellness {
			concerns = append(concerns, ConcernLowWellness)
		}
	}

	return comp, concerns
}

// scoreHRV scores the HRV signal: RMSSD against baseline when both are
// known, the device's status classification as a fallback.
func scoreHRV(m *models.DailyMetrics, baseline models.Optional[float64]) (float64, bool) {
	if rmssd, ok := m.HRVRmssd.Value(); ok {
		if b, ok := baseline.Value(); ok && b > 0 {
			score := rmssd / b * 100
			if score > 100 {
				score = 100
			}
			return score, true
		}
	}
	if status, ok := m.HRVStatus.Value(); ok {
		if score, ok := policy.HRVStatusScores[string(status)]; ok {
			return score, true
		}
	}
	return 0, false
}

// weightedOverall blends the present components. Without a wellness
// record the four device weights renormalize; individually missing
// components are excluded by dividing through the available weight.
func weightedOverall(comp Components) int {
	type term struct {
		score models.Optional[float64]
		wFull float64 // weight when wellness is present
		wNoW  float64 // weight when it is not
	}
	terms := []term{
		{comp.Sleep, policy.WeightSleep, policy.WeightSleepNoWellness},
		{comp.HRV, policy.WeightHRV, policy.WeightHRVNoWellness},
		{comp.BodyBattery, policy.WeightBodyBattery, policy.WeightBodyBatteryNoWellness},
		{comp.RestingHR, policy.WeightRestingHR, policy.WeightRestingHRNoWellness},
	}

	hasWellness := comp.Wellness.Has()

	var sum, available float64
	for _, t := range terms {
		w := t.wNoW
		if hasWellness {
			w = t.wFull
		}
		if v, ok := t.score.Value(); ok {
			sum += v * w
			available += w
		}
	}
	if hasWellness {
		v, _ := comp.Wellness.Value()
		sum += v * policy.WeightWellness
		available += policy.WeightWellness
	}

	if available == 0 {
		return 0
	}
	overall := int(math.Round(sum / available))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	return overall
}

// recommend maps the composite and concern count to a verdict.
func recommend(overall, concernCount int) Recommendation {
	switch {
	case overall >= policy.ReadyThreshold && concernCount == 0:
		return RecommendReady
	case overall >= policy.LightThreshold:
		return RecommendLight
	case overall >= policy.LightFloorThreshold && concernCount <= 1:
		return RecommendLight
	default:
		return RecommendRest
	}
}

// applyConflictOverride resolves large disagreements between the HRV
// sub-score and subjective wellness. Only two directions fire: strong
// HRV against very poor wellness forces rest (HRV false positives), and
// suppressed HRV against strong wellness downgrades to light (sensor
// artifact). The asymmetry is deliberate; other gaps pass through.
func applyConflictOverride(s *Score) {
	hrv, okHRV := s.Components.HRV.Value()
	wellness, okWellness := s.Components.Wellness.Value()
	if !okHRV || !okWellness {
		return
	}
	if math.Abs(hrv-wellness) <= policy.ConflictPointGap {
		return
	}

	switch {
	case hrv >= policy.ConflictHRVHigh && wellness < policy.ConflictWellnessVeryLow:
		s.Recommendation = RecommendRest
		s.Reasoning = fmt.Sprintf(
			"HRV looks strong (%.0f) but subjective wellness is very low (%.0f); trusting how you feel over the sensor and resting",
			hrv, wellness)
	case hrv <= policy.ConflictHRVLow && wellness >= policy.ConflictWellnessStrong:
		s.Recommendation = RecommendLight
		s.Reasoning = fmt.Sprintf(
			"HRV reads low (%.0f) but wellness is strong (%.0f); treating the HRV reading as a possible artifact and keeping the day light",
			hrv, wellness)
	}
}

// scoreComponent maps a raw value through a 3-tier curve: 100 at or
// above excellent, fixed sub-ranges between tiers, linear to zero below
// fair.
func scoreComponent(v float64, c policy.Curve) float64 {
	switch {
	case v >= c.Excellent:
		return 100
	case v >= c.Good:
		return 75 + 25*(v-c.Good)/(c.Excellent-c.Good)
	case v >= c.Fair:
		return 50 + 25*(v-c.Fair)/(c.Good-c.Fair)
	case v <= 0:
		return 0
	default:
		return 50 * v / c.Fair
	}
}

// baselineOf averages a field over the recent records.
func baselineOf(recent []*models.DailyMetrics, field func(*models.DailyMetrics) models.Optional[float64]) models.Optional[float64] {
	var sum float64
	var n int
	for _, m := range recent {
		if v, ok := field(m).Value(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return models.None[float64]()
	}
	return models.Some(sum / float64(n))
}
