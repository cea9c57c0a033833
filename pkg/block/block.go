// Package block defines the uniform processing contract every DSP node in
// bbx implements, plus the per-buffer context blocks read from.
package block

import "github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"

// ChannelConfig tells the graph how a block handles its channels.
// Parallel blocks process nin == nout channels independently, so the graph
// may iterate per-channel identically; Explicit blocks implement their own
// internal routing (panners, mixers, matrix mixers, routers).
type ChannelConfig int

const (
	Parallel ChannelConfig = iota
	Explicit
)

// ModulationOutput describes one control-rate output a block exposes for
// other blocks' parameters to read.
type ModulationOutput struct {
	Name string
	Min  float64
	Max  float64
}

// DspContext carries the per-buffer runtime state every block reads:
// sample rate, buffer size, channel layout, and a monotonically advancing
// sample counter.
type DspContext struct {
	SampleRate    float64
	BufferSize    int
	ChannelCount  int
	CurrentSample uint64
}

// Advance moves CurrentSample forward by exactly BufferSize, matching the
// invariant that current_sample increases by exactly buffer_size between
// successive process_buffers calls.
func (c *DspContext) Advance() { c.CurrentSample += uint64(c.BufferSize) }

// Block is the contract every processing node implements. process must not
// allocate and must not read past the declared port counts; inputs[i] and
// outputs[j] slices are always exactly ctx.BufferSize long.
type Block[S sample.Type] interface {
	Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *DspContext)
	InputCount() int
	OutputCount() int
	ModulationOutputs() []ModulationOutput
	ChannelConfig() ChannelConfig
}
