package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

const defaultDcBlockerR = 0.995

// DcBlockerBlock is the classic one-pole DC-blocking filter
// y[n] = x[n] - x[n-1] + R*y[n-1], R close to but below 1. Useful after a
// ring-modulator or any block whose output can carry a DC offset before it
// reaches a speaker or another oscillator's frequency input.
type DcBlockerBlock[S sample.Type] struct {
	r     param.Parameter[S]
	xPrev S
	yPrev S
}

// NewDcBlockerBlock creates a DC blocker at the given pole radius r
// (0 < r < 1; closer to 1 means a lower cutoff and slower settling).
func NewDcBlockerBlock[S sample.Type](r float64) *DcBlockerBlock[S] {
	if r <= 0 || r >= 1 {
		r = defaultDcBlockerR
	}
	return &DcBlockerBlock[S]{r: param.Constant(sample.FromF64[S](r))}
}

func (d *DcBlockerBlock[S]) InputCount() int  { return 1 }
func (d *DcBlockerBlock[S]) OutputCount() int { return 1 }

func (d *DcBlockerBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (d *DcBlockerBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (d *DcBlockerBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	if name != "r" {
		return errUnknownParam
	}
	d.r = p
	return nil
}

func (d *DcBlockerBlock[S]) Reset() {
	d.xPrev = sample.ZeroOf[S]()
	d.yPrev = sample.ZeroOf[S]()
}

func (d *DcBlockerBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	out := outputs[0]
	r := d.r.GetValue(modulationValues)

	for i, x := range in {
		y := x - d.xPrev + r*d.yPrev
		out[i] = y
		d.xPrev = x
		d.yPrev = flushDenormal(y)
	}
}
