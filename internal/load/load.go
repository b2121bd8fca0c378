// ABOUTME: Pure training-load math: TRIMP variants, ACWR, monotony, strain.
// ABOUTME: All functions guard bad input with sentinel zero returns, never errors.
package load

import (
	"math"

	"github.com/harperreed/coach/internal/policy"
)

// Banister computes the Banister TRIMP for a steady session:
// duration (min) x HR-reserve ratio x e^(b x ratio), b = 1.92 for men
// and 1.67 for women. Returns 0 for non-positive durations or heart
// rates, or when the heart rates are not ordered rest < max and
// avg <= max.
func Banister(durationMinutes, avgHR, restingHR, maxHR float64, male bool) float64 {
	if durationMinutes <= 0 || avgHR <= 0 || restingHR <= 0 || maxHR <= 0 {
		return 0
	}
	reserve := maxHR - restingHR
	if reserve <= 0 || avgHR > maxHR {
		return 0
	}

	ratio := (avgHR - restingHR) / reserve
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	b := policy.BanisterCoefficientMale
	if !male {
		b = policy.BanisterCoefficientFemale
	}

	return durationMinutes * ratio * math.Exp(b*ratio)
}

// Edwards computes the Edwards zone-weighted load: minutes in zone i
// times i, summed over zones 1-5. minutesInZone[0] is zone 1. Entries
// beyond zone 5 and negative minutes are ignored.
func Edwards(minutesInZone []float64) float64 {
	var total float64
	for i, minutes := range minutesInZone {
		if i >= 5 {
			break
		}
		if minutes <= 0 {
			continue
		}
		total += minutes * float64(i+1)
	}
	return total
}

// SessionRPE computes the session-RPE load: duration (min) x perceived
// exertion on the 1-10 Foster scale. Out-of-range inputs return 0.
func SessionRPE(durationMinutes float64, rpe int) float64 {
	if durationMinutes <= 0 || rpe < 1 || rpe > 10 {
		return 0
	}
	return durationMinutes * float64(rpe)
}

// ACWRResult is the acute:chronic workload ratio with its risk band.
type ACWRResult struct {
	AcuteLoad      float64 // 7-day sum
	ChronicLoad    float64 // 28-day daily mean
	Ratio          float64
	RiskLevel      string
	RiskMultiplier float64
}

// ACWR computes the acute:chronic workload ratio from daily load series.
// A zero or empty chronic window yields ratio 0 and the lowest risk
// band: an athlete with no training base gets a conservative answer, not
// a division-by-zero panic.
func ACWR(acuteDaily, chronicDaily []float64) ACWRResult {
	acute := sum(acuteDaily)
	chronic := mean(chronicDaily)

	result := ACWRResult{AcuteLoad: acute, ChronicLoad: chronic}
	if chronic <= 0 || len(acuteDaily) == 0 {
		result.Ratio = 0
		band := policy.ClassifyACWR(0)
		result.RiskLevel = band.Level
		result.RiskMultiplier = band.Multiplier
		return result
	}

	result.Ratio = acute / chronic
	band := policy.ClassifyACWR(result.Ratio)
	result.RiskLevel = band.Level
	result.RiskMultiplier = band.Multiplier
	return result
}

// Monotony is the mean daily load divided by its standard deviation.
// Identical nonzero loads every day have no variance; that degenerate
// case returns a large sentinel rather than +Inf.
func Monotony(dailyLoads []float64) float64 {
	if len(dailyLoads) == 0 {
		return 0
	}

	m := mean(dailyLoads)
	sd := stddev(dailyLoads, m)
	if sd == 0 {
		if m > 0 {
			return policy.MonotonySentinel
		}
		return 0
	}
	return m / sd
}

// Strain is the weekly load weighted by its monotony.
func Strain(dailyLoads []float64) float64 {
	return sum(dailyLoads) * Monotony(dailyLoads)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func stddev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
