package block

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// ParameterBinder is implemented by blocks whose parameters can be rebound
// by name — the mechanism graph.Graph.Modulate and graph.Graph.BindParameter
// use to reach into a concrete block without the graph needing to know
// every block type. Returning an error (rather than panicking) on an
// unknown name is what lets the builder surface a BindingError as a soft
// diagnostic instead of a fatal one.
type ParameterBinder[S sample.Type] interface {
	BindParameter(name string, p param.Parameter[S]) error
}

// ModulationAdder is implemented by blocks whose named parameter is backed
// by a param.ModulatableParam rather than a plain param.Parameter —
// spec.md §3's "a single parameter may be driven by up to N modulation
// sources, each with a signed depth coefficient" invariant needs a
// modulation source to sum onto the parameter's base, not replace it.
// graph.Graph.Modulate prefers this over ParameterBinder when a block
// implements both, falling back to ParameterBinder's wholesale-replace
// Parameter::Modulated semantics for blocks that only ever had one
// modulation source to begin with.
type ModulationAdder[S sample.Type] interface {
	AddModulation(name string, source param.BlockID, depth S) error
	RemoveModulation(name string, source param.BlockID) error
}
