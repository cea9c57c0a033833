package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

const maxOverdriveGain = 4.0

// OverdriveBlock is a tanh waveshaper: it drives the input by a gain stage
// of up to 4x and saturates the result, the same soft-clipping distortion
// the chip's global overdrive stage applies before its final mix.
type OverdriveBlock[S sample.Type] struct {
	drive param.Parameter[S]
}

// NewOverdriveBlock creates an overdrive stage at the given drive amount in
// [0, maxOverdriveGain]; 0 is a transparent passthrough.
func NewOverdriveBlock[S sample.Type](drive float64) *OverdriveBlock[S] {
	if drive < 0 {
		drive = 0
	}
	if drive > maxOverdriveGain {
		drive = maxOverdriveGain
	}
	return &OverdriveBlock[S]{drive: param.Constant(sample.FromF64[S](drive))}
}

func (o *OverdriveBlock[S]) InputCount() int  { return 1 }
func (o *OverdriveBlock[S]) OutputCount() int { return 1 }

func (o *OverdriveBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (o *OverdriveBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (o *OverdriveBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	if name != "drive" {
		return errUnknownParam
	}
	o.drive = p
	return nil
}

func (o *OverdriveBlock[S]) Reset() {}

func (o *OverdriveBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	out := outputs[0]
	drive := o.drive.GetValue(modulationValues)

	zero := sample.ZeroOf[S]()
	for i, x := range in {
		if drive <= zero {
			out[i] = x
			continue
		}
		out[i] = sample.Tanh(x * drive)
	}
}
