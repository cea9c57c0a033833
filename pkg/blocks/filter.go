package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

const denormalFloor32 = 1e-15

const (
	minCutoffHz        = 20.0
	maxCutoffHz        = 20000.0
	minQ               = 0.5
	maxQ               = 10.0
	resonancePeakLimit = 2.0
)

// LowPassFilterBlock is a one-pole-pair trapezoidal (TPT/ZDF) state-variable
// filter run in its low-pass configuration, per spec.md §4.6. cutoffHz and
// q are control-rate parameters; the two integrator states are flushed to
// zero whenever they fall below a denormal floor to avoid the FPU penalty
// that subnormal values cause on a processing path with no other
// protection against long silent passages.
type LowPassFilterBlock[S sample.Type] struct {
	cutoff param.Parameter[S]
	q      param.Parameter[S]

	ic1eq S
	ic2eq S
}

// NewLowPassFilterBlock creates a filter at the given cutoff (Hz) and
// resonance (Q, 0.5 is critically damped, ~0.707 is Butterworth, higher rings).
func NewLowPassFilterBlock[S sample.Type](cutoffHz, q float64) *LowPassFilterBlock[S] {
	return &LowPassFilterBlock[S]{
		cutoff: param.Constant(sample.FromF64[S](cutoffHz)),
		q:      param.Constant(sample.FromF64[S](q)),
	}
}

func (f *LowPassFilterBlock[S]) InputCount() int  { return 1 }
func (f *LowPassFilterBlock[S]) OutputCount() int { return 1 }

func (f *LowPassFilterBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (f *LowPassFilterBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (f *LowPassFilterBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	switch name {
	case "cutoff":
		f.cutoff = p
	case "q":
		f.q = p
	default:
		return errUnknownParam
	}
	return nil
}

func (f *LowPassFilterBlock[S]) Reset() {
	f.ic1eq = sample.ZeroOf[S]()
	f.ic2eq = sample.ZeroOf[S]()
}

func flushDenormal[S sample.Type](v S) S {
	if v > -denormalFloor32 && v < denormalFloor32 {
		return sample.ZeroOf[S]()
	}
	return v
}

func (f *LowPassFilterBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	out := outputs[0]

	cutoff := sample.Clamp(f.cutoff.GetValue(modulationValues), sample.FromF64[S](minCutoffHz), sample.FromF64[S](maxCutoffHz))
	q := sample.Clamp(f.q.GetValue(modulationValues), sample.FromF64[S](minQ), sample.FromF64[S](maxQ))

	sr := sample.FromF64[S](ctx.SampleRate)
	nyquist := sr * sample.FromF64[S](0.5*0.999)
	if cutoff > nyquist {
		cutoff = nyquist
	}

	g := sample.Tan(sample.FromF64[S](3.141592653589793) * cutoff / sr)
	k := sample.OneOf[S]() / q
	a1 := sample.OneOf[S]() / (sample.OneOf[S]() + g*(g+k))
	a2 := g * a1
	a3 := g * a2

	// The SVF's resonant peak gain grows roughly linearly with Q past the
	// critically-damped point (Q=0.5); compensate so peak gain is capped
	// near 2x regardless of how high Q is pushed within its clamped range.
	compensation := sample.OneOf[S]()
	peakLimit := sample.FromF64[S](resonancePeakLimit)
	if q > peakLimit {
		compensation = peakLimit / q
	}

	for i := range in {
		x := in[i]
		v3 := x - f.ic2eq
		v1 := a1*f.ic1eq + a2*v3
		v2 := f.ic2eq + a2*f.ic1eq + a3*v3

		f.ic1eq = sample.FromF64[S](2)*v1 - f.ic1eq
		f.ic2eq = sample.FromF64[S](2)*v2 - f.ic2eq
		f.ic1eq = flushDenormal(f.ic1eq)
		f.ic2eq = flushDenormal(f.ic2eq)

		out[i] = v2 * compensation
	}
}
