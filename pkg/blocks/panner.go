package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

const quarterPi = 0.7853981633974483

// PannerBlock takes one mono input and produces an equal-power stereo pair.
// pan runs from -1 (full left) through 0 (center) to +1 (full right); the
// left/right gains are cos/sin of (pan+1)*pi/4 so that left^2+right^2 == 1
// for every pan value, per spec.md §4.6.
type PannerBlock[S sample.Type] struct {
	pan param.Parameter[S]
}

// NewPannerBlock creates a panner at the given initial pan position.
func NewPannerBlock[S sample.Type](pan float64) *PannerBlock[S] {
	return &PannerBlock[S]{pan: param.Constant(sample.FromF64[S](pan))}
}

func (p *PannerBlock[S]) InputCount() int  { return 1 }
func (p *PannerBlock[S]) OutputCount() int { return 2 }

func (p *PannerBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (p *PannerBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (p *PannerBlock[S]) BindParameter(name string, par param.Parameter[S]) error {
	if name != "pan" {
		return errUnknownParam
	}
	p.pan = par
	return nil
}

func (p *PannerBlock[S]) Reset() {}

func (p *PannerBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	left := outputs[0]
	right := outputs[1]

	panVal := sample.Clamp(p.pan.GetValue(modulationValues), sample.FromF64[S](-1), sample.OneOf[S]())
	theta := (panVal + sample.OneOf[S]()) * sample.FromF64[S](quarterPi)
	leftGain := sample.Cos(theta)
	rightGain := sample.Sin(theta)

	for i := range in {
		left[i] = in[i] * leftGain
		right[i] = in[i] * rightGain
	}
}
