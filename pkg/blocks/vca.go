package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// VcaBlock multiplies one audio input by a control-rate "cv" parameter,
// typically bound to an EnvelopeBlock's modulation output. Single channel
// in, single channel out, Parallel config so the graph may instantiate one
// per physical channel.
type VcaBlock[S sample.Type] struct {
	cv param.Parameter[S]
}

// NewVcaBlock creates a VCA with a fixed initial gain (normally overridden
// by Modulate-binding cv to an envelope).
func NewVcaBlock[S sample.Type](initialGain float64) *VcaBlock[S] {
	return &VcaBlock[S]{cv: param.Constant(sample.FromF64[S](initialGain))}
}

func (v *VcaBlock[S]) InputCount() int  { return 1 }
func (v *VcaBlock[S]) OutputCount() int { return 1 }

func (v *VcaBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (v *VcaBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (v *VcaBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	if name != "cv" {
		return errUnknownParam
	}
	v.cv = p
	return nil
}

func (v *VcaBlock[S]) Reset() {}

func (v *VcaBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	out := outputs[0]
	gain := v.cv.GetValue(modulationValues)
	for i := range out {
		out[i] = in[i] * gain
	}
}
