package graph

import (
	"sync/atomic"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// Modulate asks the target block to sum source onto paramName's base with
// unity depth — the "up to N modulation sources" path for a block whose
// named parameter is backed by a param.ModulatableParam (block.
// ModulationAdder). Blocks that only support a single wholesale-replace
// modulation source (block.ParameterBinder's Parameter::Modulated) are
// still handled, as a fallback, for parameters no block has generalised
// yet. Unknown parameter names are reported as a BindingError (a soft
// error the builder surfaces), never a panic.
func (g *Graph[S]) Modulate(source BlockID, target BlockID, paramName string) error {
	if err := g.checkBlockID(source); err != nil {
		return err
	}
	if err := g.checkBlockID(target); err != nil {
		return err
	}
	if adder, ok := g.blocks[target].b.(block.ModulationAdder[S]); ok {
		if err := adder.AddModulation(paramName, source, sample.OneOf[S]()); err != nil {
			return bbxerr.NewBindingError(g.blocks[target].name, paramName)
		}
		g.prepared = false
		return nil
	}
	binder, ok := g.blocks[target].b.(block.ParameterBinder[S])
	if !ok {
		return bbxerr.NewBindingError(g.blocks[target].name, paramName)
	}
	if err := binder.BindParameter(paramName, param.Modulated[S](source)); err != nil {
		return bbxerr.NewBindingError(g.blocks[target].name, paramName)
	}
	g.prepared = false
	return nil
}

// BindParameter replaces the named Parameter on target with
// Parameter::External(ptr). The graph never owns or frees the pointed-to
// atomic; the host guarantees its lifetime outlives the graph.
func (g *Graph[S]) BindParameter(target BlockID, paramName string, ptr *atomic.Uint32) error {
	if err := g.checkBlockID(target); err != nil {
		return err
	}
	binder, ok := g.blocks[target].b.(block.ParameterBinder[S])
	if !ok {
		return bbxerr.NewBindingError(g.blocks[target].name, paramName)
	}
	if err := binder.BindParameter(paramName, param.External[S](ptr)); err != nil {
		return bbxerr.NewBindingError(g.blocks[target].name, paramName)
	}
	return nil
}

// SetConstant replaces the named Parameter on target with a constant
// value — used by the OSC dispatcher's direct-set path (never from the
// audio thread).
func (g *Graph[S]) SetConstant(target BlockID, paramName string, value S) error {
	if err := g.checkBlockID(target); err != nil {
		return err
	}
	binder, ok := g.blocks[target].b.(block.ParameterBinder[S])
	if !ok {
		return bbxerr.NewBindingError(g.blocks[target].name, paramName)
	}
	if err := binder.BindParameter(paramName, param.Constant[S](value)); err != nil {
		return bbxerr.NewBindingError(g.blocks[target].name, paramName)
	}
	return nil
}
