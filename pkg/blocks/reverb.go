package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

const (
	reverbPreDelaySamples = 353 // ~8ms at 44100Hz, the chip's reference rate
	reverbAllpassCoef     = 0.5
	reverbAttenuation     = 0.3
)

var reverbCombDelays = [4]int{1687, 1601, 2053, 2251}
var reverbCombDecays = [4]float64{0.97, 0.95, 0.93, 0.91}
var reverbAllpassDelays = [2]int{389, 307}

type combLine[S sample.Type] struct {
	buf   []S
	decay S
	pos   int
}

type allpassLine[S sample.Type] struct {
	buf []S
	pos int
}

// ReverbBlock is a Schroeder reverberator: an 8ms pre-delay feeding four
// parallel comb filters with prime-length, independently-decaying delay
// lines, summed into two series allpass diffusion stages. The delay lengths
// avoid small-integer ratios that would otherwise ring with a metallic
// coloration. mix is the wet/dry ratio in [0,1].
type ReverbBlock[S sample.Type] struct {
	mix param.Parameter[S]

	preDelay    []S
	preDelayPos int

	combs   [4]combLine[S]
	allpass [2]allpassLine[S]
}

// NewReverbBlock creates a reverb at the given wet/dry mix in [0,1].
func NewReverbBlock[S sample.Type](mix float64) *ReverbBlock[S] {
	r := &ReverbBlock[S]{
		mix:      param.Constant(sample.FromF64[S](mix)),
		preDelay: make([]S, reverbPreDelaySamples),
	}
	for i, length := range reverbCombDelays {
		r.combs[i] = combLine[S]{
			buf:   make([]S, length),
			decay: sample.FromF64[S](reverbCombDecays[i]),
		}
	}
	for i, length := range reverbAllpassDelays {
		r.allpass[i] = allpassLine[S]{buf: make([]S, length)}
	}
	return r
}

func (r *ReverbBlock[S]) InputCount() int  { return 1 }
func (r *ReverbBlock[S]) OutputCount() int { return 1 }

func (r *ReverbBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (r *ReverbBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (r *ReverbBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	if name != "mix" {
		return errUnknownParam
	}
	r.mix = p
	return nil
}

// Reset clears every delay line back to silence without reallocating, so
// a reverb tail doesn't survive a graph.Graph[S].Reset() call.
func (r *ReverbBlock[S]) Reset() {
	zero := sample.ZeroOf[S]()
	for i := range r.preDelay {
		r.preDelay[i] = zero
	}
	r.preDelayPos = 0
	for c := range r.combs {
		for i := range r.combs[c].buf {
			r.combs[c].buf[i] = zero
		}
		r.combs[c].pos = 0
	}
	for a := range r.allpass {
		for i := range r.allpass[a].buf {
			r.allpass[a].buf[i] = zero
		}
		r.allpass[a].pos = 0
	}
}

func (r *ReverbBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	out := outputs[0]
	mix := r.mix.GetValue(modulationValues)
	one := sample.OneOf[S]()

	for i, x := range in {
		wet := r.tick(x)
		out[i] = x*(one-mix) + wet*mix
	}
}

func (r *ReverbBlock[S]) tick(input S) S {
	delayed := r.preDelay[r.preDelayPos]
	r.preDelay[r.preDelayPos] = input
	r.preDelayPos = (r.preDelayPos + 1) % len(r.preDelay)

	var sum S
	for c := range r.combs {
		comb := &r.combs[c]
		delayedSample := comb.buf[comb.pos]
		comb.buf[comb.pos] = flushDenormal(delayed + delayedSample*comb.decay)
		sum += delayedSample
		comb.pos = (comb.pos + 1) % len(comb.buf)
	}

	coef := sample.FromF64[S](reverbAllpassCoef)
	for a := range r.allpass {
		ap := &r.allpass[a]
		delayedSample := ap.buf[ap.pos]
		ap.buf[ap.pos] = flushDenormal(sum + delayedSample*coef)
		sum = delayedSample - sum
		ap.pos = (ap.pos + 1) % len(ap.buf)
	}

	return sum * sample.FromF64[S](reverbAttenuation)
}
