package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// OutputBlock is a channelCount-wide identity passthrough marking where a
// graph's final mix is taken from. The config loader registers it with
// graph.RegisterOutput automatically; it exists as a block (rather than
// RegisterOutput pointing directly at an arbitrary upstream block) so a
// JSON graph's "output" entry has somewhere explicit to connect into.
type OutputBlock[S sample.Type] struct {
	channelCount int
}

// NewOutputBlock creates a passthrough with channelCount input/output
// ports.
func NewOutputBlock[S sample.Type](channelCount int) *OutputBlock[S] {
	return &OutputBlock[S]{channelCount: channelCount}
}

func (o *OutputBlock[S]) InputCount() int  { return o.channelCount }
func (o *OutputBlock[S]) OutputCount() int { return o.channelCount }

func (o *OutputBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (o *OutputBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (o *OutputBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (o *OutputBlock[S]) Reset() {}

func (o *OutputBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	for i := range outputs {
		copy(outputs[i], inputs[i])
	}
}

// InputBlock stands in for host-fed external audio input. The core graph
// has no generic mechanism for a host to inject live audio into an
// arbitrary named block (only Parameter::External for control values, per
// spec.md §4.4), so this is a documented stub producing silence on every
// channel rather than a full audio-input path.
type InputBlock[S sample.Type] struct {
	channelCount int
}

// NewInputBlock creates a silent stand-in input with channelCount outputs.
func NewInputBlock[S sample.Type](channelCount int) *InputBlock[S] {
	return &InputBlock[S]{channelCount: channelCount}
}

func (i *InputBlock[S]) InputCount() int  { return 0 }
func (i *InputBlock[S]) OutputCount() int { return i.channelCount }

func (i *InputBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (i *InputBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (i *InputBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (i *InputBlock[S]) Reset() {}

func (i *InputBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	for _, out := range outputs {
		clear(out)
	}
}
