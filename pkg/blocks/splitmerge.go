package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// ChannelSplitterBlock fans one input out to outputCount identical copies,
// letting a single upstream signal feed several independent downstream
// chains (e.g. a send to both a panner and a filtered aux bus).
type ChannelSplitterBlock[S sample.Type] struct {
	outputCount int
}

// NewChannelSplitterBlock creates a splitter with outputCount >= 1 copies.
func NewChannelSplitterBlock[S sample.Type](outputCount int) (*ChannelSplitterBlock[S], error) {
	if outputCount < 1 {
		return nil, bbxerr.NewConfigurationError("splitter: output count must be >= 1, got %d", outputCount)
	}
	return &ChannelSplitterBlock[S]{outputCount: outputCount}, nil
}

func (c *ChannelSplitterBlock[S]) InputCount() int  { return 1 }
func (c *ChannelSplitterBlock[S]) OutputCount() int { return c.outputCount }

func (c *ChannelSplitterBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (c *ChannelSplitterBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (c *ChannelSplitterBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (c *ChannelSplitterBlock[S]) Reset() {}

func (c *ChannelSplitterBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	for _, out := range outputs {
		copy(out, in)
	}
}

// ChannelMergerBlock is MixerBlock's twin with a different grounding name:
// spec.md §4.6 lists "merger" as the channel-count-changing counterpart to
// splitter, summing inputCount channels down to one. The behaviour is an
// unweighted sum (MixSum); use MixerBlock directly for averaged/
// constant-power merges.
type ChannelMergerBlock[S sample.Type] struct {
	inner *MixerBlock[S]
}

// NewChannelMergerBlock creates a merger of inputCount channels.
func NewChannelMergerBlock[S sample.Type](inputCount int) (*ChannelMergerBlock[S], error) {
	inner, err := NewMixerBlock[S](inputCount, 1, MixSum)
	if err != nil {
		return nil, err
	}
	return &ChannelMergerBlock[S]{inner: inner}, nil
}

func (c *ChannelMergerBlock[S]) InputCount() int  { return c.inner.InputCount() }
func (c *ChannelMergerBlock[S]) OutputCount() int { return 1 }

func (c *ChannelMergerBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (c *ChannelMergerBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (c *ChannelMergerBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (c *ChannelMergerBlock[S]) Reset() { c.inner.Reset() }

func (c *ChannelMergerBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	c.inner.Process(inputs, outputs, modulationValues, ctx)
}
