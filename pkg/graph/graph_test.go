package graph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/blocks"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/graph"
)

func testCtx() block.DspContext {
	return block.DspContext{SampleRate: 48000, BufferSize: 8, ChannelCount: 1}
}

func TestThreeBlockChainTopologicalOrder(t *testing.T) {
	g := graph.New[float64](testCtx())
	osc := g.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))
	gain := g.AddBlock("gain", blocks.NewGainBlock[float64](0.5))
	out := g.AddBlock("out", blocks.NewOutputBlock[float64](1))

	require.NoError(t, g.Connect(osc, 0, gain, 0))
	require.NoError(t, g.Connect(gain, 0, out, 0))
	require.NoError(t, g.RegisterOutput(out))

	require.NoError(t, g.PrepareForPlayback())
	require.True(t, g.IsPrepared())

	buf := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{buf}))

	// osc amplitude is at most 1, scaled by gain 0.5.
	for _, v := range buf {
		require.LessOrEqual(t, v, 0.5+1e-9)
		require.GreaterOrEqual(t, v, -0.5-1e-9)
	}
}

func TestCycleDetectionLeavesGraphUnprepared(t *testing.T) {
	g := graph.New[float64](testCtx())
	a := g.AddBlock("a", blocks.NewGainBlock[float64](1))
	b := g.AddBlock("b", blocks.NewGainBlock[float64](1))

	require.NoError(t, g.Connect(a, 0, b, 0))
	require.NoError(t, g.Connect(b, 0, a, 0))

	err := g.PrepareForPlayback()
	require.Error(t, err)
	var cycleErr *bbxerr.CycleDetectedError
	require.True(t, errors.As(err, &cycleErr))
	require.Equal(t, 2, cycleErr.Remaining)
	require.False(t, g.IsPrepared())
}

func TestProcessBuffersRefusesWhenNotPrepared(t *testing.T) {
	g := graph.New[float64](testCtx())
	g.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))
	buf := make([]float64, 8)
	err := g.ProcessBuffers([][]float64{buf})
	require.ErrorIs(t, err, graph.ErrNotPrepared)
}

func TestProcessBuffersIsDeterministic(t *testing.T) {
	g := graph.New[float64](testCtx())
	osc := g.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 220, 0))
	out := g.AddBlock("out", blocks.NewOutputBlock[float64](1))
	require.NoError(t, g.Connect(osc, 0, out, 0))
	require.NoError(t, g.RegisterOutput(out))
	require.NoError(t, g.PrepareForPlayback())

	bufA := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{bufA}))

	g.Reset()
	bufB := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{bufB}))

	require.Equal(t, bufA, bufB)
}

func TestMultipleRegisteredOutputsAreSummed(t *testing.T) {
	g := graph.New[float64](testCtx())
	a := g.AddBlock("a", blocks.NewGainBlock[float64](1))
	b := g.AddBlock("b", blocks.NewGainBlock[float64](1))
	src := g.AddBlock("src", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))

	require.NoError(t, g.Connect(src, 0, a, 0))
	require.NoError(t, g.Connect(src, 0, b, 0))
	require.NoError(t, g.RegisterOutput(a))
	require.NoError(t, g.RegisterOutput(b))
	require.NoError(t, g.PrepareForPlayback())

	bufSum := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{bufSum}))

	g2 := graph.New[float64](testCtx())
	a2 := g2.AddBlock("a", blocks.NewGainBlock[float64](1))
	src2 := g2.AddBlock("src", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))
	require.NoError(t, g2.Connect(src2, 0, a2, 0))
	require.NoError(t, g2.RegisterOutput(a2))
	require.NoError(t, g2.PrepareForPlayback())
	bufSingle := make([]float64, 8)
	require.NoError(t, g2.ProcessBuffers([][]float64{bufSingle}))

	for i := range bufSum {
		require.InDelta(t, bufSingle[i]*2, bufSum[i], 1e-9)
	}
}

func TestLastConnectionWinsOnSameInputPort(t *testing.T) {
	g := graph.New[float64](testCtx())
	oscA := g.AddBlock("oscA", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))
	out := g.AddBlock("out", blocks.NewOutputBlock[float64](1))

	// Connect oscA to the output port first, then overwrite it with a
	// silent source — the graph must honour the later connection.
	require.NoError(t, g.Connect(oscA, 0, out, 0))

	silent := g.AddBlock("silent", blocks.NewInputBlock[float64](1))
	require.NoError(t, g.Connect(silent, 0, out, 0))

	require.NoError(t, g.RegisterOutput(out))
	require.NoError(t, g.PrepareForPlayback())

	buf := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{buf}))
	for _, v := range buf {
		require.Equal(t, 0.0, v)
	}
}

func TestResetZeroesStateAndPool(t *testing.T) {
	g := graph.New[float64](testCtx())
	osc := g.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSaw, 1000, 0.5))
	out := g.AddBlock("out", blocks.NewOutputBlock[float64](1))
	require.NoError(t, g.Connect(osc, 0, out, 0))
	require.NoError(t, g.RegisterOutput(out))
	require.NoError(t, g.PrepareForPlayback())

	buf := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{buf}))
	require.NoError(t, g.ProcessBuffers([][]float64{buf}))

	g.Reset()
	require.Equal(t, uint64(0), g.Context().CurrentSample)

	bufAfterReset := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{bufAfterReset}))

	bufFresh := make([]float64, 8)
	fresh := graph.New[float64](testCtx())
	oscFresh := fresh.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSaw, 1000, 0.5))
	outFresh := fresh.AddBlock("out", blocks.NewOutputBlock[float64](1))
	require.NoError(t, fresh.Connect(oscFresh, 0, outFresh, 0))
	require.NoError(t, fresh.RegisterOutput(outFresh))
	require.NoError(t, fresh.PrepareForPlayback())
	require.NoError(t, fresh.ProcessBuffers([][]float64{bufFresh}))

	require.Equal(t, bufFresh, bufAfterReset)
}

// TestModulateSumsOntoOscillatorBase exercises spec.md §8 scenario 4's
// base-plus-LFO modulation path through the real graph.Modulate call (not
// a hand-summed buffer): an LFO's modulation output is wired onto the
// oscillator's frequency, and the modulated output must differ from an
// unmodulated 440 Hz oscillator's. A square LFO is used because it already
// outputs +depth at phase 0, so the first buffer carries the +100 Hz (a
// sine LFO outputs 0 there).
func TestModulateSumsOntoOscillatorBase(t *testing.T) {
	g := graph.New[float64](testCtx())
	lfo := g.AddBlock("lfo", blocks.NewLfoBlock[float64](blocks.WaveSquare, 5, 100))
	osc := g.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))
	out := g.AddBlock("out", blocks.NewOutputBlock[float64](1))

	require.NoError(t, g.Connect(osc, 0, out, 0))
	require.NoError(t, g.RegisterOutput(out))
	require.NoError(t, g.Modulate(lfo, osc, "frequency"))
	require.NoError(t, g.PrepareForPlayback())

	buf := make([]float64, 8)
	require.NoError(t, g.ProcessBuffers([][]float64{buf}))

	g2 := graph.New[float64](testCtx())
	osc2 := g2.AddBlock("osc", blocks.NewOscillatorBlock[float64](blocks.WaveSine, 440, 0))
	out2 := g2.AddBlock("out", blocks.NewOutputBlock[float64](1))
	require.NoError(t, g2.Connect(osc2, 0, out2, 0))
	require.NoError(t, g2.RegisterOutput(out2))
	require.NoError(t, g2.PrepareForPlayback())

	buf2 := make([]float64, 8)
	require.NoError(t, g2.ProcessBuffers([][]float64{buf2}))

	require.NotEqual(t, buf2, buf, "LFO modulation should change the oscillator's output versus an unmodulated 440Hz source")

	require.Error(t, g.Modulate(lfo, osc, "bogus"))
}
