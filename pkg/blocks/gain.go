package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// GainBlock scales one audio channel by a single gain parameter. It is the
// same shape as VcaBlock but intended for a static/automated mix gain
// rather than an envelope-driven cv, and takes the SIMD fast path when S is
// float32.
type GainBlock[S sample.Type] struct {
	gain param.Parameter[S]
}

// NewGainBlock creates a gain stage at the given linear gain.
func NewGainBlock[S sample.Type](gain float64) *GainBlock[S] {
	return &GainBlock[S]{gain: param.Constant(sample.FromF64[S](gain))}
}

func (g *GainBlock[S]) InputCount() int  { return 1 }
func (g *GainBlock[S]) OutputCount() int { return 1 }

// ModulationOutputs reports a single generic output so a GainBlock can
// double as the depth scaler the config loader inserts for a modulation
// entry's optional "depth" field: scaling a control signal is the same
// multiply as scaling audio, just read as a control-rate value instead.
func (g *GainBlock[S]) ModulationOutputs() []block.ModulationOutput {
	return []block.ModulationOutput{{Name: "out", Min: -1, Max: 1}}
}
func (g *GainBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Parallel }

func (g *GainBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	if name != "gain" {
		return errUnknownParam
	}
	g.gain = p
	return nil
}

func (g *GainBlock[S]) Reset() {}

func (g *GainBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	in := inputs[0]
	out := outputs[0]
	gainVal := g.gain.GetValue(modulationValues)

	// Go generics give us no way to express "S is float32" at compile time,
	// so the Vec4 fast path is reached via a runtime type assertion on the
	// concrete slice/scalar types rather than a specialisation the compiler
	// picks statically.
	if inF32, ok := any(in).([]float32); ok {
		outF32 := any(out).([]float32)
		gainF32 := any(gainVal).(float32)
		gainGainVec4(inF32, outF32, gainF32)
		return
	}

	for i := range out {
		out[i] = in[i] * gainVal
	}
}

func gainGainVec4(in, out []float32, gain float32) {
	gv := sample.SplatVec4(gain)
	n := len(out)
	i := 0
	for ; i+4 <= n; i += 4 {
		v := sample.LoadVec4(in[i : i+4])
		r := v.Mul(gv)
		arr := r.ToArray()
		copy(out[i:i+4], arr[:])
	}
	for ; i < n; i++ {
		out[i] = in[i] * gain
	}
}
