// Package param implements the parameter model: simple constant/modulated/
// external parameters, multi-source modulatable parameters, and smoothed
// values for click-free updates.
package param

import (
	"math"
	"sync/atomic"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// BlockID is a dense index into a graph's block table. Defined here rather
// than imported from package graph to avoid a dependency cycle — param has
// no other reason to know about the graph.
type BlockID int

// Kind discriminates the three Parameter variants.
type Kind int

const (
	KindConstant Kind = iota
	KindModulated
	KindExternal
)

// Parameter is the simple triple-variant parameter of spec.md §4.4.
// External stores a pointer to a float32 the host owns; the graph never
// writes through it.
type Parameter[S sample.Type] struct {
	kind     Kind
	constant S
	source   BlockID
	external *atomic.Uint32 // bit-cast float32, host-owned
}

// Constant builds a Parameter fixed at v.
func Constant[S sample.Type](v S) Parameter[S] {
	return Parameter[S]{kind: KindConstant, constant: v}
}

// Modulated builds a Parameter that reads the first output of source as a
// one-sample-per-buffer control signal.
func Modulated[S sample.Type](source BlockID) Parameter[S] {
	return Parameter[S]{kind: KindModulated, source: source}
}

// External builds a Parameter bound to a host-owned atomic float32. ptr may
// be nil, in which case GetValue returns zero (silence), matching the
// "null pointer returns ZERO" rule.
func External[S sample.Type](ptr *atomic.Uint32) Parameter[S] {
	return Parameter[S]{kind: KindExternal, external: ptr}
}

// GetValue resolves the parameter's current value. modulationValues is the
// graph's per-buffer control vector, indexed by BlockID. This call never
// allocates and never fails.
func (p Parameter[S]) GetValue(modulationValues []S) S {
	switch p.kind {
	case KindModulated:
		if int(p.source) < len(modulationValues) {
			return modulationValues[p.source]
		}
		return sample.ZeroOf[S]()
	case KindExternal:
		if p.external == nil {
			return sample.ZeroOf[S]()
		}
		bits := p.external.Load()
		return S(math.Float32frombits(bits))
	default:
		return p.constant
	}
}

// Kind reports which variant p holds.
func (p Parameter[S]) Kind() Kind { return p.kind }

// StoreExternal bit-casts v into ptr. Hosts use this to publish values the
// audio thread will read via Parameter.External — writes are Relaxed since
// parameter values are idempotent and eventually-consistent is acceptable
// (spec.md §5).
func StoreExternal(ptr *atomic.Uint32, v float32) {
	ptr.Store(math.Float32bits(v))
}
