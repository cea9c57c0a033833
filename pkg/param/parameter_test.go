package param_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
)

func TestConstantParameterIgnoresModulationValues(t *testing.T) {
	p := param.Constant[float32](3.5)
	require.Equal(t, param.KindConstant, p.Kind())
	require.Equal(t, float32(3.5), p.GetValue(nil))
	require.Equal(t, float32(3.5), p.GetValue([]float32{99, 99}))
}

func TestModulatedParameterReadsSourceSlot(t *testing.T) {
	p := param.Modulated[float32](2)
	mods := []float32{0, 0, 7.25, 0}
	require.Equal(t, float32(7.25), p.GetValue(mods))
}

func TestModulatedParameterOutOfRangeReturnsZero(t *testing.T) {
	p := param.Modulated[float32](5)
	require.Equal(t, float32(0), p.GetValue([]float32{1, 2}))
}

func TestExternalParameterReadsAtomic(t *testing.T) {
	var bits atomic.Uint32
	param.StoreExternal(&bits, 1.25)
	p := param.External[float32](&bits)
	require.Equal(t, float32(1.25), p.GetValue(nil))
}

func TestExternalParameterNilPointerIsSilence(t *testing.T) {
	p := param.External[float32](nil)
	require.Equal(t, float32(0), p.GetValue(nil))
}

func TestModulatableParamSumsSlots(t *testing.T) {
	mp := param.NewModulatableParam[float32](1.0, 2)
	require.True(t, mp.AddModulation(0, 0.5))
	require.True(t, mp.AddModulation(1, 0.25))
	require.False(t, mp.AddModulation(2, 1.0), "third slot should be rejected with maxSlots=2")

	mods := []float32{2, 4}
	// base(1) + 2*0.5 + 4*0.25 = 1 + 1 + 1 = 3
	require.Equal(t, float32(3), mp.Evaluate(mods))
}

func TestModulatableParamRemoveModulation(t *testing.T) {
	mp := param.NewModulatableParam[float32](0, 2)
	mp.AddModulation(0, 1.0)
	mp.RemoveModulation(0)
	require.Equal(t, float32(0), mp.Evaluate([]float32{10}))
}

func TestModulatableParamSetDepth(t *testing.T) {
	mp := param.NewModulatableParam[float32](0, 1)
	mp.AddModulation(0, 1.0)
	require.True(t, mp.SetDepth(0, 2.0))
	require.Equal(t, float32(10), mp.Evaluate([]float32{5}))
	require.False(t, mp.SetDepth(7, 1.0), "no slot bound to source 7")
}
