package config

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/blocks"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

func getFloat(params map[string]any, key string, def float64) float64 {
	if params == nil {
		return def
	}
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

func getInt(params map[string]any, key string, def int) int {
	return int(getFloat(params, key, float64(def)))
}

func getString(params map[string]any, key, def string) string {
	if params == nil {
		return def
	}
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func getMatrix(params map[string]any, key string) ([][]float64, bool) {
	if params == nil {
		return nil, false
	}
	raw, ok := params[key]
	if !ok {
		return nil, false
	}
	rows, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	matrix := make([][]float64, len(rows))
	for i, r := range rows {
		cols, ok := r.([]any)
		if !ok {
			return nil, false
		}
		row := make([]float64, len(cols))
		for j, c := range cols {
			f, ok := c.(float64)
			if !ok {
				return nil, false
			}
			row[j] = f
		}
		matrix[i] = row
	}
	return matrix, true
}

func parseWaveform(s string) blocks.Waveform {
	switch s {
	case "saw":
		return blocks.WaveSaw
	case "square":
		return blocks.WaveSquare
	case "triangle":
		return blocks.WaveTriangle
	default:
		return blocks.WaveSine
	}
}

func parseNormalization(s string) blocks.MixNormalization {
	switch s {
	case "average":
		return blocks.MixAverage
	case "sum":
		return blocks.MixSum
	default:
		return blocks.MixConstantPower
	}
}

func parseNoiseMode(s string) blocks.NoiseMode {
	switch s {
	case "periodic":
		return blocks.NoisePeriodic
	case "metallic":
		return blocks.NoiseMetallic
	default:
		return blocks.NoiseWhite
	}
}

func parseRouteMode(s string) blocks.RouteMode {
	switch s {
	case "left":
		return blocks.RouteLeft
	case "right":
		return blocks.RouteRight
	case "swap":
		return blocks.RouteSwap
	case "mono_sum":
		return blocks.RouteMonoSum
	case "invert":
		return blocks.RouteInvert
	default:
		return blocks.RouteStereo
	}
}

// buildBlock dispatches bs.Type to the matching constructor in package
// blocks, applying the documented default for every missing param. Unknown
// types are a *bbxerr.ConfigurationError, per spec.md §6.
func buildBlock[S sample.Type](bs BlockSpec, ctx block.DspContext) (block.Block[S], error) {
	p := bs.Params

	switch bs.Type {
	case "oscillator":
		return blocks.NewOscillatorBlock[S](parseWaveform(getString(p, "waveform", "sine")), getFloat(p, "frequency", 440), getFloat(p, "start_phase", 0)), nil
	case "lfo":
		return blocks.NewLfoBlock[S](parseWaveform(getString(p, "waveform", "sine")), getFloat(p, "frequency", 5), getFloat(p, "depth", 1)), nil
	case "envelope":
		return blocks.NewEnvelopeBlock[S](
			getFloat(p, "attack", 0.01),
			getFloat(p, "decay", 0.1),
			getFloat(p, "sustain", 0.7),
			getFloat(p, "release", 0.2),
		), nil
	case "vca":
		return blocks.NewVcaBlock[S](getFloat(p, "gain", 1.0)), nil
	case "gain":
		return blocks.NewGainBlock[S](getFloat(p, "gain", 1.0)), nil
	case "panner":
		return blocks.NewPannerBlock[S](getFloat(p, "pan", 0.0)), nil
	case "filter", "low_pass_filter":
		return blocks.NewLowPassFilterBlock[S](getFloat(p, "cutoff", 1000), getFloat(p, "q", 0.707)), nil
	case "mixer":
		return blocks.NewMixerBlock[S](
			getInt(p, "input_count", 2),
			getInt(p, "channel_count", 1),
			parseNormalization(getString(p, "normalization", "constant_power")),
		)
	case "router":
		return blocks.NewChannelRouterBlock[S](parseRouteMode(getString(p, "mode", "stereo"))), nil
	case "matrix_mixer":
		inCount := getInt(p, "input_count", 0)
		outCount := getInt(p, "output_count", 0)
		matrix, ok := getMatrix(p, "matrix")
		if !ok {
			return nil, bbxerr.NewConfigurationError("config: matrix_mixer block %d missing or malformed \"matrix\" param", bs.ID)
		}
		return blocks.NewMatrixMixerBlock[S](inCount, outCount, matrix)
	case "dc_blocker":
		return blocks.NewDcBlockerBlock[S](getFloat(p, "r", 0.995)), nil
	case "noise":
		return blocks.NewNoiseBlock[S](parseNoiseMode(getString(p, "mode", "white")), getFloat(p, "frequency", ctx.SampleRate)), nil
	case "overdrive":
		return blocks.NewOverdriveBlock[S](getFloat(p, "drive", 1.0)), nil
	case "reverb":
		return blocks.NewReverbBlock[S](getFloat(p, "mix", 0.3)), nil
	case "output":
		return blocks.NewOutputBlock[S](getInt(p, "channel_count", ctx.ChannelCount)), nil
	case "input":
		return blocks.NewInputBlock[S](getInt(p, "channel_count", ctx.ChannelCount)), nil
	default:
		return nil, bbxerr.NewConfigurationError("config: unknown block type %q for block %d", bs.Type, bs.ID)
	}
}
