package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/blocks"
)

func TestPannerEqualPowerAtCenter(t *testing.T) {
	p := blocks.NewPannerBlock[float64](0)
	ctx := &block.DspContext{SampleRate: 48000, BufferSize: 1, ChannelCount: 1}
	in := []float64{1}
	left := make([]float64, 1)
	right := make([]float64, 1)
	p.Process([][]float64{in}, [][]float64{left, right}, nil, ctx)

	require.InDelta(t, left[0], right[0], 1e-9)
	require.InDelta(t, 1.0, left[0]*left[0]+right[0]*right[0], 1e-9)
}

func TestPannerFullLeftSilencesRight(t *testing.T) {
	p := blocks.NewPannerBlock[float64](-1)
	ctx := &block.DspContext{SampleRate: 48000, BufferSize: 1, ChannelCount: 1}
	in := []float64{1}
	left := make([]float64, 1)
	right := make([]float64, 1)
	p.Process([][]float64{in}, [][]float64{left, right}, nil, ctx)

	require.InDelta(t, 1.0, left[0], 1e-9)
	require.InDelta(t, 0.0, right[0], 1e-9)
}

func TestPannerClampsOutOfRangePan(t *testing.T) {
	p := blocks.NewPannerBlock[float64](5) // clamped to +1 (full right)
	ctx := &block.DspContext{SampleRate: 48000, BufferSize: 1, ChannelCount: 1}
	in := []float64{1}
	left := make([]float64, 1)
	right := make([]float64, 1)
	p.Process([][]float64{in}, [][]float64{left, right}, nil, ctx)

	require.InDelta(t, 0.0, left[0], 1e-9)
	require.InDelta(t, 1.0, right[0], 1e-9)
}

func TestPannerPowerConservedAcrossSweep(t *testing.T) {
	ctx := &block.DspContext{SampleRate: 48000, BufferSize: 1, ChannelCount: 1}
	in := []float64{1}
	for _, pan := range []float64{-1, -0.5, -0.25, 0, 0.25, 0.5, 1} {
		p := blocks.NewPannerBlock[float64](pan)
		left := make([]float64, 1)
		right := make([]float64, 1)
		p.Process([][]float64{in}, [][]float64{left, right}, nil, ctx)
		power := left[0]*left[0] + right[0]*right[0]
		require.InDeltaf(t, 1.0, power, 1e-9, "pan=%v", pan)
	}
}
