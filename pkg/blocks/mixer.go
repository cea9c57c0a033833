package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// MixNormalization selects how MixerBlock scales its summed inputs.
type MixNormalization int

const (
	// MixConstantPower divides by sqrt(groupCount), preserving perceived
	// loudness when every source group is uncorrelated noise/signal. This
	// is the spec-documented default.
	MixConstantPower MixNormalization = iota
	// MixAverage divides the sum by the group count.
	MixAverage
	// MixSum adds every group with no scaling.
	MixSum
)

// MixerBlock sums groupCount source groups, each contributing
// channelsPerGroup channels, into channelsPerGroup output channels: input
// port g*channelsPerGroup+c feeds output channel c for every group g, per
// spec.md §4.6. channelsPerGroup=1 is the mono-groups case (N independent
// mono sources summed to one mono output).
type MixerBlock[S sample.Type] struct {
	groupCount       int
	channelsPerGroup int
	norm             MixNormalization
	scale            S
}

// NewMixerBlock creates a mixer over groupCount groups (must be >= 1) of
// channelsPerGroup channels each (must be >= 1).
func NewMixerBlock[S sample.Type](groupCount, channelsPerGroup int, norm MixNormalization) (*MixerBlock[S], error) {
	if groupCount < 1 {
		return nil, bbxerr.NewConfigurationError("mixer: group count must be >= 1, got %d", groupCount)
	}
	if channelsPerGroup < 1 {
		return nil, bbxerr.NewConfigurationError("mixer: channels per group must be >= 1, got %d", channelsPerGroup)
	}
	m := &MixerBlock[S]{groupCount: groupCount, channelsPerGroup: channelsPerGroup, norm: norm}
	switch norm {
	case MixAverage:
		m.scale = sample.OneOf[S]() / sample.FromF64[S](float64(groupCount))
	case MixSum:
		m.scale = sample.OneOf[S]()
	default:
		m.scale = sample.OneOf[S]() / sample.Sqrt(sample.FromF64[S](float64(groupCount)))
	}
	return m, nil
}

func (m *MixerBlock[S]) InputCount() int  { return m.groupCount * m.channelsPerGroup }
func (m *MixerBlock[S]) OutputCount() int { return m.channelsPerGroup }

func (m *MixerBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (m *MixerBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (m *MixerBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (m *MixerBlock[S]) Reset() {}

func (m *MixerBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	for _, out := range outputs {
		clear(out)
	}
	for g := 0; g < m.groupCount; g++ {
		for c := 0; c < m.channelsPerGroup; c++ {
			in := inputs[g*m.channelsPerGroup+c]
			out := outputs[c]
			for i, v := range in {
				out[i] += v
			}
		}
	}
	if m.norm != MixSum {
		for _, out := range outputs {
			for i := range out {
				out[i] *= m.scale
			}
		}
	}
}
