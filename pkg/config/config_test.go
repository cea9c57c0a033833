package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/config"
)

func testCtx() block.DspContext {
	return block.DspContext{SampleRate: 48000, BufferSize: 16, ChannelCount: 1}
}

func TestLoadSimpleOscillatorGainOutputGraph(t *testing.T) {
	data := []byte(`{
		"blocks": [
			{"id": 0, "type": "oscillator", "params": {"frequency": 440}},
			{"id": 1, "type": "gain", "params": {"gain": 0.5}},
			{"id": 2, "type": "output"}
		],
		"connections": [
			{"from": [0, 0], "to": [1, 0]},
			{"from": [1, 0], "to": [2, 0]}
		]
	}`)

	result, err := config.Load[float64](data, testCtx())
	require.NoError(t, err)
	require.True(t, result.Graph.IsPrepared())

	out := make([]float64, 16)
	require.NoError(t, result.Graph.ProcessBuffers([][]float64{out}))
	for _, v := range out {
		require.LessOrEqual(t, v, 0.5+1e-9)
		require.GreaterOrEqual(t, v, -0.5-1e-9)
	}
}

func TestLoadRejectsUnknownBlockType(t *testing.T) {
	data := []byte(`{"blocks": [{"id": 0, "type": "nonexistent"}]}`)
	_, err := config.Load[float64](data, testCtx())
	require.Error(t, err)
}

func TestLoadRejectsConnectionToUnknownBlock(t *testing.T) {
	data := []byte(`{
		"blocks": [{"id": 0, "type": "oscillator"}],
		"connections": [{"from": [0, 0], "to": [99, 0]}]
	}`)
	_, err := config.Load[float64](data, testCtx())
	require.Error(t, err)
}

func TestLoadRejectsInvalidUUID(t *testing.T) {
	data := []byte(`{"blocks": [{"id": 0, "type": "oscillator", "uuid": "not-a-uuid"}]}`)
	_, err := config.Load[float64](data, testCtx())
	require.Error(t, err)
}

func TestLoadGeneratesUUIDWhenAbsent(t *testing.T) {
	data := []byte(`{"blocks": [{"id": 0, "type": "oscillator"}]}`)
	result, err := config.Load[float64](data, testCtx())
	require.NoError(t, err)
	require.Len(t, result.BlockUUIDs, 1)
}

func TestLoadParameterBindingPublishesExternal(t *testing.T) {
	data := []byte(`{
		"blocks": [{"id": 0, "type": "gain"}],
		"parameter_bindings": {"master_gain": {"block": 0, "param": "gain"}}
	}`)
	result, err := config.Load[float64](data, testCtx())
	require.NoError(t, err)
	require.Contains(t, result.Externals, "master_gain")
}

func TestLoadModulationWithNonUnityDepthInsertsScaler(t *testing.T) {
	data := []byte(`{
		"blocks": [
			{"id": 0, "type": "lfo", "params": {"frequency": 5, "depth": 1}},
			{"id": 1, "type": "oscillator"}
		],
		"modulations": [
			{"source": 0, "target": 1, "param": "frequency", "depth": 0.5}
		]
	}`)
	result, err := config.Load[float64](data, testCtx())
	require.NoError(t, err)
	// The scaler is an extra, unaddressed block; the graph should still
	// have more blocks than the two declared ones.
	require.Greater(t, result.Graph.BlockCount(), 2)
}

func TestLoadModulationWithUnityDepthSkipsScaler(t *testing.T) {
	data := []byte(`{
		"blocks": [
			{"id": 0, "type": "lfo"},
			{"id": 1, "type": "oscillator"}
		],
		"modulations": [
			{"source": 0, "target": 1, "param": "frequency"}
		]
	}`)
	result, err := config.Load[float64](data, testCtx())
	require.NoError(t, err)
	require.Equal(t, 2, result.Graph.BlockCount())
}

func TestLoadRejectsMatrixMixerMissingMatrix(t *testing.T) {
	data := []byte(`{"blocks": [{"id": 0, "type": "matrix_mixer", "params": {"input_count": 2, "output_count": 2}}]}`)
	_, err := config.Load[float64](data, testCtx())
	require.Error(t, err)
}

func TestLoadInvalidJSONIsConfigurationError(t *testing.T) {
	_, err := config.Load[float64]([]byte(`not json`), testCtx())
	require.Error(t, err)
}
