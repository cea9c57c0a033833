package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// LfoBlock is a control-rate modulator: it computes one value per buffer
// (the first output sample) and repeats it across the rest of the output
// slice, per spec.md §4.6. Process clamps its frequency every buffer so the
// effective control rate never exceeds half the buffer rate.
type LfoBlock[S sample.Type] struct {
	waveform   Waveform
	freq       param.Parameter[S]
	depth      param.Parameter[S]
	phase      S
	bufferRate float64 // not written; Process derives the buffer rate from ctx each call
}

// NewLfoBlock creates an LFO at freqHz with modulation depth depth. freqHz
// is not yet clamped here since the buffer rate isn't known until the
// first Process call; Process clamps it every buffer, which is cheap and
// keeps the block's constructor free of a DspContext dependency.
func NewLfoBlock[S sample.Type](waveform Waveform, freqHz, depth float64) *LfoBlock[S] {
	return &LfoBlock[S]{
		waveform: waveform,
		freq:     param.Constant(sample.FromF64[S](freqHz)),
		depth:    param.Constant(sample.FromF64[S](depth)),
	}
}

func (l *LfoBlock[S]) InputCount() int  { return 0 }
func (l *LfoBlock[S]) OutputCount() int { return 1 }

func (l *LfoBlock[S]) ModulationOutputs() []block.ModulationOutput {
	return []block.ModulationOutput{{Name: "lfo", Min: -1, Max: 1}}
}
func (l *LfoBlock[S]) ChannelConfig() block.ChannelConfig { return block.Parallel }

func (l *LfoBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	switch name {
	case "frequency":
		l.freq = p
	case "depth":
		l.depth = p
	default:
		return errUnknownParam
	}
	return nil
}

func (l *LfoBlock[S]) Reset() { l.phase = sample.ZeroOf[S]() }

func (l *LfoBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	out := outputs[0]
	if ctx.BufferSize == 0 {
		return
	}

	bufferRate := ctx.SampleRate / float64(ctx.BufferSize)
	maxFreq := bufferRate / 2

	freq := sample.ToF64(l.freq.GetValue(modulationValues))
	if freq > maxFreq {
		freq = maxFreq
	}
	if freq < 0 {
		freq = 0
	}
	depth := l.depth.GetValue(modulationValues)

	var waveVal S
	switch l.waveform {
	case WaveSine:
		waveVal = sample.Sin(l.phase * sample.FromF64[S](6.283185307179586))
	case WaveSaw:
		waveVal = sample.FromF64[S](2)*l.phase - sample.OneOf[S]()
	case WaveSquare:
		if l.phase < sample.FromF64[S](0.5) {
			waveVal = sample.OneOf[S]()
		} else {
			waveVal = -sample.OneOf[S]()
		}
	case WaveTriangle:
		waveVal = sample.FromF64[S](4)*sample.Abs(l.phase-sample.FromF64[S](0.5)) - sample.OneOf[S]()
	}

	value := waveVal * depth
	for i := range out {
		out[i] = value
	}

	l.phase += sample.FromF64[S](freq / ctx.SampleRate * float64(ctx.BufferSize))
	l.phase = wrapPhase(l.phase)
}
