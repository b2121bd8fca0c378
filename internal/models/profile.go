// ABOUTME: AthleteProfile: the static physiology the engine computes against.
// ABOUTME: Loaded from config, with an age-based max-HR fallback.
package models

// AthleteProfile carries the athlete's heart-rate parameters. Measured
// values win; an age estimate fills in when max HR was never tested.
type AthleteProfile struct {
	Age       int
	Male      bool
	MaxHR     Optional[float64]
	RestingHR Optional[float64]
}

// EffectiveMaxHR returns the measured max HR, or the 220-minus-age
// estimate when none is configured.
func (p AthleteProfile) EffectiveMaxHR() float64 {
	if v, ok := p.MaxHR.Value(); ok && v > 0 {
		return v
	}
	age := p.Age
	if age <= 0 {
		age = 35
	}
	return 220 - float64(age)
}

// EffectiveRestingHR returns the configured resting HR or a population
// default.
func (p AthleteProfile) EffectiveRestingHR() float64 {
	if v, ok := p.RestingHR.Value(); ok && v > 0 {
		return v
	}
	return 60
}
