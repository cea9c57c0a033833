package blocks_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/blocks"
)

func genSine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

// TestLowPassFilterAttenuatesAboveCutoff matches spec.md §8 scenario 3: a
// filter at fc=1000Hz, Q=0.707, sample_rate=44100, fed a 10kHz sine at
// amplitude 1; after 1024 samples of settling, the peak magnitude must be
// below 0.2.
func TestLowPassFilterAttenuatesAboveCutoff(t *testing.T) {
	const sampleRate = 44100.0
	f := blocks.NewLowPassFilterBlock[float64](1000, 0.707)
	ctx := &block.DspContext{SampleRate: sampleRate, BufferSize: 2048, ChannelCount: 1}

	in := genSine(10000, sampleRate, 2048)
	out := make([]float64, 2048)
	f.Process([][]float64{in}, [][]float64{out}, nil, ctx)

	var peak float64
	for _, v := range out[1024:] {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	require.Less(t, peak, 0.2)
}

// TestLowPassFilterPassesBelowCutoff matches the second half of spec.md
// §8 scenario 3: the same filter fed a 100Hz sine must pass it with
// magnitude within 10% of 1.0.
func TestLowPassFilterPassesBelowCutoff(t *testing.T) {
	const sampleRate = 44100.0
	f := blocks.NewLowPassFilterBlock[float64](1000, 0.707)
	ctx := &block.DspContext{SampleRate: sampleRate, BufferSize: 4096, ChannelCount: 1}

	in := genSine(100, sampleRate, 4096)
	out := make([]float64, 4096)
	f.Process([][]float64{in}, [][]float64{out}, nil, ctx)

	var peak float64
	for _, v := range out[1024:] {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	require.InDelta(t, 1.0, peak, 0.1)
}

// TestLowPassFilterClampsCutoffToSpecRange matches spec.md §4.6's literal
// [20, 20000] Hz cutoff clamp: a cutoff below 20 behaves identically to
// exactly 20, and a cutoff above 20000 behaves identically to exactly
// 20000, given the same input.
func TestLowPassFilterClampsCutoffToSpecRange(t *testing.T) {
	const sampleRate = 48000.0
	ctx := &block.DspContext{SampleRate: sampleRate, BufferSize: 256, ChannelCount: 1}
	in := genSine(1000, sampleRate, 256)

	below := blocks.NewLowPassFilterBlock[float64](5, 0.707)
	atMin := blocks.NewLowPassFilterBlock[float64](20, 0.707)
	outBelow := make([]float64, 256)
	outAtMin := make([]float64, 256)
	below.Process([][]float64{in}, [][]float64{outBelow}, nil, ctx)
	atMin.Process([][]float64{in}, [][]float64{outAtMin}, nil, ctx)
	require.Equal(t, outAtMin, outBelow)

	above := blocks.NewLowPassFilterBlock[float64](50000, 0.707)
	atMax := blocks.NewLowPassFilterBlock[float64](20000, 0.707)
	outAbove := make([]float64, 256)
	outAtMax := make([]float64, 256)
	above.Process([][]float64{in}, [][]float64{outAbove}, nil, ctx)
	atMax.Process([][]float64{in}, [][]float64{outAtMax}, nil, ctx)
	require.Equal(t, outAtMax, outAbove)
}

// TestLowPassFilterClampsQToSpecRange matches spec.md §4.6's literal
// [0.5, 10] Q clamp.
func TestLowPassFilterClampsQToSpecRange(t *testing.T) {
	const sampleRate = 48000.0
	ctx := &block.DspContext{SampleRate: sampleRate, BufferSize: 256, ChannelCount: 1}
	in := genSine(1000, sampleRate, 256)

	below := blocks.NewLowPassFilterBlock[float64](1000, 0.1)
	atMin := blocks.NewLowPassFilterBlock[float64](1000, 0.5)
	outBelow := make([]float64, 256)
	outAtMin := make([]float64, 256)
	below.Process([][]float64{in}, [][]float64{outBelow}, nil, ctx)
	atMin.Process([][]float64{in}, [][]float64{outAtMin}, nil, ctx)
	require.Equal(t, outAtMin, outBelow)

	above := blocks.NewLowPassFilterBlock[float64](1000, 50)
	atMax := blocks.NewLowPassFilterBlock[float64](1000, 10)
	outAbove := make([]float64, 256)
	outAtMax := make([]float64, 256)
	above.Process([][]float64{in}, [][]float64{outAbove}, nil, ctx)
	atMax.Process([][]float64{in}, [][]float64{outAtMax}, nil, ctx)
	require.Equal(t, outAtMax, outAbove)
}

// TestLowPassFilterResonantPeakStaysNearTwoX matches spec.md §4.6's "a
// compensation factor limits resonant peak to ~2x": driving the filter at
// its own cutoff frequency with an out-of-spec-range Q request (50, clamped
// to 10) must not let the steady-state output exceed roughly double the
// input amplitude, even though an uncompensated SVF at Q=10 would ring far
// harder than that.
func TestLowPassFilterResonantPeakStaysNearTwoX(t *testing.T) {
	const sampleRate = 48000.0
	const cutoff = 1000.0
	f := blocks.NewLowPassFilterBlock[float64](cutoff, 50)
	ctx := &block.DspContext{SampleRate: sampleRate, BufferSize: 8192, ChannelCount: 1}

	in := genSine(cutoff, sampleRate, 8192)
	out := make([]float64, 8192)
	f.Process([][]float64{in}, [][]float64{out}, nil, ctx)

	var peak float64
	for _, v := range out[4096:] {
		if math.Abs(v) > peak {
			peak = math.Abs(v)
		}
	}
	require.Less(t, peak, 2.5, "resonant peak should stay near the ~2x compensation ceiling, not ring unchecked at Q=10")
}

func TestLowPassFilterResetClearsState(t *testing.T) {
	f := blocks.NewLowPassFilterBlock[float32](500, 0.707)
	ctx := &block.DspContext{SampleRate: 48000, BufferSize: 64, ChannelCount: 1}
	in := make([]float32, 64)
	for i := range in {
		in[i] = 1
	}
	out := make([]float32, 64)
	f.Process([][]float32{in}, [][]float32{out}, nil, ctx)
	require.NotEqual(t, float32(0), out[63])

	f.Reset()
	out2 := make([]float32, 64)
	f.Process([][]float32{in}, [][]float32{out2}, nil, ctx)
	require.Equal(t, out[0], out2[0])
}
