package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// NoiseMode selects the LFSR tap configuration NoiseBlock advances on each
// generated step.
type NoiseMode int

const (
	NoiseWhite NoiseMode = iota
	NoisePeriodic
	NoiseMetallic
)

const (
	noiseLfsrSeed = 0x7FFFFF // 23-bit LFSR seed, never zero
	noiseLfsrMask = 0x7FFFFF
	noiseLfsrBits = 23

	noiseTap1 = 22
	noiseTap2 = 17
	metalTap1 = 22
	metalTap2 = 14

	noiseFilterOld = 0.95
	noiseFilterNew = 0.05
)

// NoiseBlock is a linear-feedback-shift-register noise source with three
// tap configurations: dense white noise, a periodic variant that repeats a
// shorter sequence, and a "metallic" tap spacing tuned for brighter,
// ring-like noise. A one-pole smoothing filter over the raw bit stream
// takes the edge off the tiniest register, matching the chip's per-step
// noiseFilterState smoothing.
type NoiseBlock[S sample.Type] struct {
	mode NoiseMode
	freq param.Parameter[S]

	phase       S
	sr          uint32
	filterState S
}

// NewNoiseBlock creates a noise generator clocked at freqHz LFSR steps per
// second (a rate, not a pitch — higher values sound brighter/denser).
func NewNoiseBlock[S sample.Type](mode NoiseMode, freqHz float64) *NoiseBlock[S] {
	return &NoiseBlock[S]{
		mode: mode,
		freq: param.Constant(sample.FromF64[S](freqHz)),
		sr:   noiseLfsrSeed,
	}
}

func (n *NoiseBlock[S]) InputCount() int  { return 0 }
func (n *NoiseBlock[S]) OutputCount() int { return 1 }

func (n *NoiseBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (n *NoiseBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (n *NoiseBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	if name != "frequency" {
		return errUnknownParam
	}
	n.freq = p
	return nil
}

func (n *NoiseBlock[S]) Reset() {
	n.phase = sample.ZeroOf[S]()
	n.sr = noiseLfsrSeed
	n.filterState = sample.ZeroOf[S]()
}

func (n *NoiseBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	out := outputs[0]
	sr := sample.FromF64[S](ctx.SampleRate)
	freq := n.freq.GetValue(modulationValues)

	for i := range out {
		dt := freq / sr
		n.phase += dt
		steps := int(sample.Floor(n.phase))
		n.phase -= sample.FromF64[S](float64(steps))

		for s := 0; s < steps; s++ {
			switch n.mode {
			case NoisePeriodic:
				n.sr = ((n.sr >> 1) | ((n.sr & 1) << (noiseLfsrBits - 1))) & noiseLfsrMask
			case NoiseMetallic:
				bit := ((n.sr >> metalTap1) ^ (n.sr >> metalTap2)) & 1
				n.sr = ((n.sr << 1) | bit) & noiseLfsrMask
			default:
				bit := ((n.sr >> noiseTap1) ^ (n.sr >> noiseTap2)) & 1
				n.sr = ((n.sr << 1) | bit) & noiseLfsrMask
			}
		}

		raw := sample.FromF64[S](float64(n.sr&1)*2 - 1)
		n.filterState = sample.FromF64[S](noiseFilterOld)*n.filterState + sample.FromF64[S](noiseFilterNew)*raw
		out[i] = flushDenormal(n.filterState)
	}
}
