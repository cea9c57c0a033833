// Package blocks implements the canonical blocks used to validate the
// graph runtime's contracts: oscillator, envelope, filter, VCA, gain,
// panner, LFO, mixer, router and friends. Each is grounded in the
// equivalent generation code in the teacher's audio_chip.go Channel type,
// generalised from a fixed 4-channel chip to the graph's uniform
// block.Block[S] contract.
package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/polyblep"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// Waveform selects the oscillator's generation algorithm.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSaw
	WaveSquare
	WaveTriangle
)

// oscillatorMaxModSources bounds how many simultaneous modulators (e.g. an
// LFO plus a MIDI pitch-bend source) may drive one oscillator's frequency.
const oscillatorMaxModSources = 4

// OscillatorBlock is a band-limited oscillator: sine, saw, square or
// triangle, with an optional random-phase start. It has no inputs and one
// output. Frequency is a param.ModulatableParam: a MIDI-driven base
// frequency update (via BindParameter/SetConstant) replaces only the base,
// and whatever modulation sources are wired in via AddModulation continue
// to sum on top of it (spec.md §4.6).
type OscillatorBlock[S sample.Type] struct {
	waveform   Waveform
	freq       *param.ModulatableParam[S]
	phase      S
	startPhase S
}

// NewOscillatorBlock creates an oscillator of the given waveform at the
// given starting phase in [0,1) (0 for deterministic start, a caller-
// supplied pseudo-random value for the "optional seed" behaviour spec.md
// §4.6 mentions).
func NewOscillatorBlock[S sample.Type](waveform Waveform, freq float64, startPhase float64) *OscillatorBlock[S] {
	start := wrapPhase(sample.FromF64[S](startPhase))
	return &OscillatorBlock[S]{
		waveform:   waveform,
		freq:       param.NewModulatableParam(sample.FromF64[S](freq), oscillatorMaxModSources),
		phase:      start,
		startPhase: start,
	}
}

func wrapPhase[S sample.Type](p S) S {
	one := sample.OneOf[S]()
	for p < 0 {
		p += one
	}
	for p >= one {
		p -= one
	}
	return p
}

func (o *OscillatorBlock[S]) InputCount() int  { return 0 }
func (o *OscillatorBlock[S]) OutputCount() int { return 1 }

func (o *OscillatorBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (o *OscillatorBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

// BindParameter supports the single "frequency" parameter. A Constant
// value updates only freq's base, leaving any modulation sources already
// added via AddModulation in place; any other Parameter variant (External,
// or a single Modulated source from a caller still using the
// ParameterBinder path) replaces the base wholesale, matching the old
// single-source behaviour for that one slot.
func (o *OscillatorBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	switch name {
	case "frequency":
		if p.Kind() == param.KindConstant {
			o.freq.SetBase(p.GetValue(nil))
		} else {
			o.freq.BindExternal(p)
		}
		return nil
	default:
		return errUnknownParam
	}
}

// AddModulation implements block.ModulationAdder, summing source onto
// freq's base with the given depth (spec.md §3's up-to-N-sources
// invariant) instead of replacing it.
func (o *OscillatorBlock[S]) AddModulation(name string, source param.BlockID, depth S) error {
	if name != "frequency" {
		return errUnknownParam
	}
	o.freq.AddModulation(source, depth)
	return nil
}

// RemoveModulation implements block.ModulationAdder.
func (o *OscillatorBlock[S]) RemoveModulation(name string, source param.BlockID) error {
	if name != "frequency" {
		return errUnknownParam
	}
	o.freq.RemoveModulation(source)
	return nil
}

// Reset returns the oscillator to its construction-time start phase,
// matching bbx_graph_reset.
func (o *OscillatorBlock[S]) Reset() {
	o.phase = o.startPhase
}

func (o *OscillatorBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	out := outputs[0]
	sr := sample.FromF64[S](ctx.SampleRate)
	freq := o.freq.Evaluate(modulationValues)

	for i := range out {
		dt := freq / sr
		var v S
		switch o.waveform {
		case WaveSine:
			v = sample.Sin(o.phase * sample.FromF64[S](6.283185307179586))
		case WaveSaw:
			v = polyblep.Saw(o.phase, dt)
		case WaveSquare:
			v = polyblep.Square(o.phase, dt)
		case WaveTriangle:
			v = polyblep.Triangle(o.phase, dt)
		}
		out[i] = v

		o.phase += dt
		o.phase = wrapPhase(o.phase)
	}
}
