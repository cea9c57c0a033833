// Package polyblep implements PolyBLEP/PolyBLAMP anti-aliasing corrections
// for classic discontinuous waveforms, adapted from the teacher's
// float32-pipeline polyBLEP32 helper in audio_lut.go (generalised here to
// both sample widths and extended with the integrated PolyBLAMP form and a
// branchless 4-lane variant).
package polyblep

import "github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"

// Poly computes the polynomial step correction for phase t in [0,1) with
// phase increment dt. For dt < 0.5 (always true below Nyquist/2) the two
// branches below are mutually exclusive.
func Poly[S sample.Type](t, dt S) S {
	one := sample.OneOf[S]()
	two := one + one
	switch {
	case t < dt:
		t /= dt
		return two*t - t*t - one
	case t > one-dt:
		t = (t - one) / dt
		return t*t + two*t + one
	default:
		return sample.ZeroOf[S]()
	}
}

// Blamp is the integrated form of Poly, used to band-limit the slope
// discontinuities (corners) of triangle waves.
func Blamp[S sample.Type](t, dt S) S {
	one := sample.OneOf[S]()
	third := one / (one + one + one)
	switch {
	case t < dt:
		t = t/dt - one
		return -third * t * t * t
	case t > one-dt:
		t = (t-one)/dt + one
		return third * t * t * t
	default:
		return sample.ZeroOf[S]()
	}
}

// Saw returns one band-limited sample of a [-1,1] sawtooth at phase t with
// phase increment dt.
func Saw[S sample.Type](t, dt S) S {
	one := sample.OneOf[S]()
	two := one + one
	naive := two*t - one
	return naive - Poly(t, dt)
}

// Square returns one band-limited sample of a [-1,1] square wave (50% duty)
// at phase t with phase increment dt.
func Square[S sample.Type](t, dt S) S {
	one := sample.OneOf[S]()
	half := one / (one + one)
	var naive S
	if t < half {
		naive = one
	} else {
		naive = -one
	}
	naive += Poly(t, dt)
	tShift := t + half
	if tShift >= one {
		tShift -= one
	}
	naive -= Poly(tShift, dt)
	return naive
}

// Pulse returns one band-limited sample of a [-1,1] pulse wave with the
// given duty cycle (0,1) at phase t with phase increment dt.
func Pulse[S sample.Type](t, dt, duty S) S {
	one := sample.OneOf[S]()
	var naive S
	if t < duty {
		naive = one
	} else {
		naive = -one
	}
	naive += Poly(t, dt)
	tShift := t - duty
	if tShift < 0 {
		tShift += one
	}
	naive -= Poly(tShift, dt)
	return naive
}

// PolyBlampTriangle returns one band-limited sample of a [-1,1] triangle
// wave at phase t with phase increment dt: the naive (aliased) triangle —
// rising from -1 at t=0 to +1 at t=0.5, falling back to -1 at t=1 — plus
// two Blamp corrections, one at each slope-discontinuity corner (t=0's
// wraparound trough and t=0.5's peak), scaled by 4*dt to match the
// corner's derivative jump. This is the standard PolyBLAMP construction
// spec.md §4.5 names explicitly, and unlike Saw/Square/Pulse's step
// corrections it needs no running integrator state, since it corrects the
// waveform directly rather than integrating a corrected square.
func PolyBlampTriangle[S sample.Type](t, dt S) S {
	one := sample.OneOf[S]()
	two := one + one
	three := two + one
	four := two + two
	half := one / two

	var naive S
	if t < half {
		naive = four*t - one
	} else {
		naive = three - four*t
	}

	// Derivative jumps from -4 to +4 across the t=0 wraparound (a rounded
	// trough); add the correction.
	naive += four * dt * Blamp(t, dt)

	// Derivative jumps from +4 to -4 at t=0.5 (a rounded peak); subtract
	// the correction, mirroring Square's sign convention for its falling
	// edge.
	t2 := t + half
	if t2 >= one {
		t2 -= one
	}
	naive -= four * dt * Blamp(t2, dt)

	return naive
}

// Triangle returns one band-limited sample of a [-1,1] triangle wave at
// phase t with phase increment dt, via PolyBlampTriangle.
func Triangle[S sample.Type](t, dt S) S {
	return PolyBlampTriangle(t, dt)
}
