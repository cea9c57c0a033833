package blocks

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// RouteMode selects ChannelRouterBlock's stereo routing behaviour.
type RouteMode int

const (
	RouteStereo RouteMode = iota // pass through unchanged
	RouteLeft                    // duplicate left onto both outputs
	RouteRight                   // duplicate right onto both outputs
	RouteSwap                    // exchange left and right
	RouteMonoSum                 // (left+right)/2 on both outputs
	RouteInvert                  // pass through with polarity inverted
)

// ChannelRouterBlock reroutes a stereo pair per mode, per spec.md §4.6.
type ChannelRouterBlock[S sample.Type] struct {
	mode RouteMode
}

// NewChannelRouterBlock creates a router fixed to mode.
func NewChannelRouterBlock[S sample.Type](mode RouteMode) *ChannelRouterBlock[S] {
	return &ChannelRouterBlock[S]{mode: mode}
}

func (r *ChannelRouterBlock[S]) InputCount() int  { return 2 }
func (r *ChannelRouterBlock[S]) OutputCount() int { return 2 }

func (r *ChannelRouterBlock[S]) ModulationOutputs() []block.ModulationOutput { return nil }
func (r *ChannelRouterBlock[S]) ChannelConfig() block.ChannelConfig          { return block.Explicit }

func (r *ChannelRouterBlock[S]) BindParameter(name string, p param.Parameter[S]) error {
	return errUnknownParam
}

func (r *ChannelRouterBlock[S]) Reset() {}

func (r *ChannelRouterBlock[S]) Process(inputs [][]S, outputs [][]S, modulationValues []S, ctx *block.DspContext) {
	left := inputs[0]
	right := inputs[1]
	outL := outputs[0]
	outR := outputs[1]

	switch r.mode {
	case RouteStereo:
		copy(outL, left)
		copy(outR, right)
	case RouteLeft:
		copy(outL, left)
		copy(outR, left)
	case RouteRight:
		copy(outL, right)
		copy(outR, right)
	case RouteSwap:
		copy(outL, right)
		copy(outR, left)
	case RouteMonoSum:
		half := sample.FromF64[S](0.5)
		for i := range left {
			sum := (left[i] + right[i]) * half
			outL[i] = sum
			outR[i] = sum
		}
	case RouteInvert:
		for i := range left {
			outL[i] = -left[i]
			outR[i] = -right[i]
		}
	}
}
