// ABOUTME: Central policy table: every tunable threshold the engine uses.
// ABOUTME: Hoisted here so bands can be tested and tuned without touching control flow.
package policy

// Banister TRIMP gender coefficients.
const (
	BanisterCoefficientMale   = 1.92
	BanisterCoefficientFemale = 1.67
)

// Rolling windows for the acute:chronic workload ratio.
const (
	AcuteWindowDays   = 7
	ChronicWindowDays = 28
)

// ACWRBand is one risk band of the acute:chronic ratio model.
type ACWRBand struct {
	Upper      float64 // upper bound, zero on the open-ended last band
	Inclusive  bool    // whether Upper itself belongs to this band
	Level      string
	Multiplier float64 // relative injury-risk multiplier, for reasoning text
}

// ACWRBands follows the published sweet-spot model: 0.8-1.3 is optimal,
// above 1.5 risk climbs steeply. The upper bands are inclusive so that a
// ratio of exactly 2.0 is "high", not "very_high", matching the safety
// gate's strict > comparisons.
var ACWRBands = []ACWRBand{
	{Upper: 0.5, Level: "very_low", Multiplier: 1.2},
	{Upper: 0.8, Level: "low", Multiplier: 1.1},
	{Upper: 1.3, Inclusive: true, Level: "optimal", Multiplier: 1.0},
	{Upper: 1.5, Inclusive: true, Level: "elevated", Multiplier: 2.0},
	{Upper: 2.0, Inclusive: true, Level: "high", Multiplier: 4.0},
	{Level: "very_high", Multiplier: 5.0},
}

// ClassifyACWR returns the risk band for a ratio. Ratios beyond the last
// bounded band fall into the open-ended one.
func ClassifyACWR(ratio float64) ACWRBand {
	for _, band := range ACWRBands[:len(ACWRBands)-1] {
		if ratio < band.Upper || (band.Inclusive && ratio == band.Upper) {
			return band
		}
	}
	return ACWRBands[len(ACWRBands)-1]
}

// ACWR thresholds the safety gate keys on.
const (
	ACWRCriticalThreshold = 2.0 // mandatory rest above this
	ACWRHighThreshold     = 1.5 // recovery/mobility only above this
	ACWRCautionThreshold  = 1.3 // restricted easy work above this
)

// MonotonySentinel is returned when daily loads have zero variance but a
// nonzero mean: "perfectly monotonous" training.
const MonotonySentinel = 999.0

// Readiness component weights. With wellness present the five weights
// sum to 1.0; without it the remaining four are renormalized.
const (
	WeightSleep       = 0.25
	WeightHRV         = 0.25
	WeightBodyBattery = 0.20
	WeightRestingHR   = 0.10
	WeightWellness    = 0.20

	WeightSleepNoWellness       = 0.30
	WeightHRVNoWellness         = 0.30
	WeightBodyBatteryNoWellness = 0.25
	WeightRestingHRNoWellness   = 0.15
)

// Data-quality tiers cap the composite score: a number computed from
// stale or substituted data must not look like a confident one.
const (
	StaleMetricsMaxAgeDays = 2
	StalePenaltyFactor     = 0.9

	CapMeasured     = 100
	CapStale        = 60
	CapMissingFresh = 40 // no usable record but the gap is short
	CapMissingOld   = 30

	MissingFloorFresh = 40.0
	MissingFloorOld   = 30.0
)

// Readiness recommendation bands.
const (
	ReadyThreshold      = 75
	LightThreshold      = 50
	LightFloorThreshold = 40 // light is still allowed down here with <=1 concern
)

// HRV/wellness conflict override. Only two directions trigger: a high
// HRV reading against very poor subjective wellness forces rest, and a
// low HRV reading against strong wellness downgrades to light. Other
// disagreements pass through untouched.
const (
	ConflictPointGap        = 20
	ConflictHRVHigh         = 80
	ConflictWellnessVeryLow = 40
	ConflictHRVLow          = 60
	ConflictWellnessStrong  = 75
)

// HRV ratio below which the reading counts as suppressed relative to
// baseline, and the lower ratio that is a concern on its own.
const (
	HRVBaselineRatio = 0.85
	HRVRatioLow      = 0.70
)

// Curve is a 3-tier component threshold set for readiness scoring:
// at or above Excellent scores 100, Good-Excellent and Fair-Good map to
// fixed sub-ranges, below Fair the score falls off linearly to zero.
type Curve struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// Component curves. Resting HR is scored on an inverted scale
// (RestingHRInversionBase minus the measured bpm) so that lower heart
// rates score higher through the same curve shape.
var (
	SleepScoreCurve  = Curve{Excellent: 85, Good: 70, Fair: 50}
	BodyBatteryCurve = Curve{Excellent: 80, Good: 60, Fair: 40}
	RestingHRCurve   = Curve{Excellent: 70, Good: 60, Fair: 50}
)

// RestingHRInversionBase converts bpm to the inverted scale the resting
// HR curve scores on.
const RestingHRInversionBase = 120.0

// Concern thresholds.
const (
	MinSleepHours      = 6.0
	ConcernBodyBattery = 40.0
	ConcernWellness    = 40
	ElevatedRHRDelta   = 5.0 // bpm above baseline that counts as elevated
)

// HRV status fallback scores, used when a device reports a status string
// but no RMSSD value to ratio against baseline.
var HRVStatusScores = map[string]float64{
	"balanced":   85,
	"low":        60,
	"unbalanced": 55,
	"poor":       40,
}

// Periodization phase allocation as fractions of the plan length.
const (
	PhaseShareBase  = 0.50
	PhaseShareBuild = 0.30
	PhaseSharePeak  = 0.15
)

// Plan length bounds in weeks.
const (
	DefaultPlanWeeks = 12
	MinPlanWeeks     = 4
	MaxPlanWeeks     = 52
)

// Progressive overload and deload.
const (
	OverloadStepPerWeek = 0.05
	OverloadCap         = 1.15
	DeloadMultiplier    = 0.5
	DeloadIntervalWeeks = 3
	DeloadEarliestWeek  = 3 // never deload in weeks 1-2
)

// Weekly peak-load estimation.
const (
	PeakLoadPercentile = 0.95
	PeakLoadFloor      = 300.0
	PeakLoadDefault    = 500.0
)

// Safety gate thresholds outside the ACWR bands.
const (
	BodyBatteryRestThreshold = 30.0
	GateMaxDurationMinutes   = 30
	GateMaxLoadFactor        = 0.6
	GateMaxAlternatives      = 2
)

// Template scoring.
const (
	ScoreBase          = 50
	ScorePhaseFocus    = 20
	ScoreVarietyBonus  = 10
	ScoreRepeatPenalty = -10
	ScoreDifficultyFit = 10

	SelectorAlternatives = 3
)

// Intensity gating for the selector.
const (
	IntensityReadinessMin    = 75
	IntensityMinRecoveryDays = 2
)
