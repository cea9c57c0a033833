package blocks_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/blocks"
)

func TestNoiseBlockStaysInUnitRange(t *testing.T) {
	n := blocks.NewNoiseBlock[float64](blocks.NoiseWhite, 22050)
	ctx := block.DspContext{SampleRate: 44100, BufferSize: 1024, ChannelCount: 1}
	out := make([]float64, 1024)
	n.Process(nil, [][]float64{out}, nil, &ctx)

	for _, v := range out {
		require.LessOrEqual(t, v, 1.0)
		require.GreaterOrEqual(t, v, -1.0)
	}
}

func TestNoiseBlockModesProduceDifferentSequences(t *testing.T) {
	ctx := block.DspContext{SampleRate: 44100, BufferSize: 256, ChannelCount: 1}

	white := blocks.NewNoiseBlock[float64](blocks.NoiseWhite, 44100)
	metallic := blocks.NewNoiseBlock[float64](blocks.NoiseMetallic, 44100)

	whiteOut := make([]float64, 256)
	metallicOut := make([]float64, 256)
	white.Process(nil, [][]float64{whiteOut}, nil, &ctx)
	metallic.Process(nil, [][]float64{metallicOut}, nil, &ctx)

	require.NotEqual(t, whiteOut, metallicOut)
}

func TestNoiseBlockResetReturnsToSeedSequence(t *testing.T) {
	ctx := block.DspContext{SampleRate: 44100, BufferSize: 64, ChannelCount: 1}
	n := blocks.NewNoiseBlock[float64](blocks.NoiseWhite, 44100)

	first := make([]float64, 64)
	n.Process(nil, [][]float64{first}, nil, &ctx)

	n.Reset()
	second := make([]float64, 64)
	n.Process(nil, [][]float64{second}, nil, &ctx)

	require.Equal(t, first, second)
}

func TestOverdriveIsTransparentAtZeroDrive(t *testing.T) {
	o := blocks.NewOverdriveBlock[float64](0)
	in := []float64{0.1, -0.2, 0.9, -0.9}
	out := make([]float64, len(in))
	o.Process([][]float64{in}, [][]float64{out}, nil, &block.DspContext{})
	require.Equal(t, in, out)
}

func TestOverdriveSaturatesTowardsUnity(t *testing.T) {
	o := blocks.NewOverdriveBlock[float64](4.0)
	in := []float64{1.0, -1.0}
	out := make([]float64, len(in))
	o.Process([][]float64{in}, [][]float64{out}, nil, &block.DspContext{})

	require.InDelta(t, math.Tanh(4.0), out[0], 1e-9)
	require.InDelta(t, -math.Tanh(4.0), out[1], 1e-9)
	require.Less(t, out[0], 1.0)
}

func TestOverdriveClampsDriveAtConstruction(t *testing.T) {
	o := blocks.NewOverdriveBlock[float64](100)
	in := []float64{1.0}
	out := make([]float64, 1)
	o.Process([][]float64{in}, [][]float64{out}, nil, &block.DspContext{})
	require.InDelta(t, math.Tanh(4.0), out[0], 1e-9)
}

func TestReverbDryAtZeroMix(t *testing.T) {
	r := blocks.NewReverbBlock[float64](0)
	in := make([]float64, 512)
	in[0] = 1.0
	out := make([]float64, 512)
	r.Process([][]float64{in}, [][]float64{out}, nil, &block.DspContext{})
	require.Equal(t, in, out)
}

func TestReverbProducesTailAfterImpulse(t *testing.T) {
	r := blocks.NewReverbBlock[float64](1.0)
	in := make([]float64, 4000)
	in[0] = 1.0
	out := make([]float64, 4000)
	r.Process([][]float64{in}, [][]float64{out}, nil, &block.DspContext{})

	// Energy should appear well after the impulse, since every delay line
	// is at least a few hundred samples long.
	var tailEnergy float64
	for _, v := range out[2000:] {
		tailEnergy += v * v
	}
	require.Greater(t, tailEnergy, 0.0)
}

func TestReverbResetClearsTail(t *testing.T) {
	r := blocks.NewReverbBlock[float64](1.0)
	in := make([]float64, 3000)
	in[0] = 1.0
	out := make([]float64, 3000)
	r.Process([][]float64{in}, [][]float64{out}, nil, &block.DspContext{})

	r.Reset()

	silence := make([]float64, 3000)
	afterReset := make([]float64, 3000)
	r.Process([][]float64{silence}, [][]float64{afterReset}, nil, &block.DspContext{})
	for _, v := range afterReset {
		require.Equal(t, 0.0, v)
	}
}
