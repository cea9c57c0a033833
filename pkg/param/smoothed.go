package param

import "github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"

// minRampMS is the minimum ramp length enforced to avoid step
// discontinuities, per spec.md §4.4.
const minRampMS = 0.01

// Strategy selects how SmoothedValue interpolates toward its target.
type Strategy int

const (
	// Linear advances current by a fixed additive increment per sample.
	Linear Strategy = iota
	// Multiplicative advances current by a fixed exponential increment:
	// current * exp(ln(target/current)/N).
	Multiplicative
)

// SmoothedValue ramps a value toward a target over a configured length in
// milliseconds, used everywhere a parameter update must not click.
type SmoothedValue[S sample.Type] struct {
	strategy  Strategy
	current   S
	target    S
	increment S
	remaining int
}

// NewSmoothedValue creates a smoother resting at initial. rampMS and
// sampleRate are not stored: each SetTarget call supplies its own ramp
// length (clamped to at least minRampMS) and sample rate.
func NewSmoothedValue[S sample.Type](strategy Strategy, initial S, rampMS float64, sampleRate float64) *SmoothedValue[S] {
	sv := &SmoothedValue[S]{strategy: strategy, current: initial, target: initial}
	sv.setImmediate(initial)
	_ = rampMS
	_ = sampleRate
	return sv
}

func rampSamples(rampMS, sampleRate float64) int {
	if rampMS < minRampMS {
		rampMS = minRampMS
	}
	n := int(rampMS * sampleRate / 1000.0)
	if n < 1 {
		n = 1
	}
	return n
}

// SetTarget begins a new ramp from the current value to target over rampMS
// milliseconds at sampleRate.
func (sv *SmoothedValue[S]) SetTarget(target S, rampMS, sampleRate float64) {
	sv.target = target
	n := rampSamples(rampMS, sampleRate)
	sv.remaining = n
	switch sv.strategy {
	case Multiplicative:
		cur := sv.current
		if cur == 0 {
			cur = sample.FromF64[S](1e-9)
			sv.current = cur
		}
		ratio := sample.ToF64(target) / sample.ToF64(cur)
		if ratio <= 0 {
			ratio = 1e-9
		}
		inc := sample.Ln(sample.FromF64[S](ratio)) / sample.FromF64[S](float64(n))
		sv.increment = inc
	default:
		sv.increment = (target - sv.current) / sample.FromF64[S](float64(n))
	}
}

// GetNextValue advances one sample and returns the new current value,
// clamping on overshoot so the ramp never passes the target.
func (sv *SmoothedValue[S]) GetNextValue() S {
	if sv.remaining <= 0 {
		sv.current = sv.target
		return sv.current
	}
	switch sv.strategy {
	case Multiplicative:
		sv.current = sv.current * sample.Exp(sv.increment)
	default:
		sv.current += sv.increment
	}
	sv.remaining--
	if sv.remaining == 0 || overshot(sv.strategy, sv.current, sv.target, sv.increment) {
		sv.current = sv.target
		sv.remaining = 0
	}
	return sv.current
}

func overshot[S sample.Type](strategy Strategy, current, target, increment S) bool {
	if increment == 0 {
		return true
	}
	if increment > 0 {
		return current >= target
	}
	return current <= target
}

// Skip advances n samples without returning intermediate values.
func (sv *SmoothedValue[S]) Skip(n int) {
	for i := 0; i < n; i++ {
		sv.GetNextValue()
	}
}

// SetImmediate writes both current and target, with zero increment —
// no ramp, the next GetNextValue call returns v directly.
func (sv *SmoothedValue[S]) SetImmediate(v S) { sv.setImmediate(v) }

func (sv *SmoothedValue[S]) setImmediate(v S) {
	sv.current = v
	sv.target = v
	sv.increment = 0
	sv.remaining = 0
}

// Current returns the current value without advancing.
func (sv *SmoothedValue[S]) Current() S { return sv.current }

// Target returns the current target value.
func (sv *SmoothedValue[S]) Target() S { return sv.target }

// IsSmoothing reports whether the value is still ramping.
func (sv *SmoothedValue[S]) IsSmoothing() bool { return sv.remaining > 0 }
