// Package graph implements the acyclic block graph: topological scheduling,
// the pre-allocated inter-block buffer pool, and the per-buffer process
// loop described in spec.md §4.7.
package graph

import (
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// BlockID is an opaque index into the graph's block table, stable from
// AddBlock until the graph is dropped.
type BlockID = param.BlockID

// Connection is (fromBlock, fromOutputPort, toBlock, toInputPort). Both
// endpoints must exist and the port indices must be within the producing/
// consuming block's declared port counts (invariant checked at connect
// time, not on the audio path).
type Connection struct {
	From       BlockID
	FromPort   int
	To         BlockID
	ToPort     int
}

// blockEntry is the graph's per-block bookkeeping: the block itself plus
// its slice of the flat buffer pool.
type blockEntry[S sample.Type] struct {
	b           block.Block[S]
	name        string
	bufferStart int // index into pool of this block's first output buffer
}

// Graph owns every block, connection, and pre-allocated buffer for one
// processing topology. It is built with AddBlock/Connect/Modulate and
// finalised with PrepareForPlayback before any call to ProcessBuffers.
type Graph[S sample.Type] struct {
	ctx block.DspContext

	blocks      []blockEntry[S]
	connections []Connection
	outputs     []BlockID

	execOrder []BlockID
	prepared  bool

	pool             [][]S // one slice per output port, flattened across all blocks
	modulationValues []S

	inputMap [][]int // inputMap[block][port] = pool index, or -1 for silence
	silence  []S
	scratch  scratch[S]
}

// New creates an empty graph for the given per-buffer context. New does
// not validate sampleRate, bufferSize or channelCount, and neither does
// config.Load before calling it; the C ABI's bbx_graph_create calls it with
// a zero DspContext.
func New[S sample.Type](ctx block.DspContext) *Graph[S] {
	return &Graph[S]{ctx: ctx}
}

// AddBlock appends b to the block table, pre-allocates its output buffers,
// and returns its new BlockID.
func (g *Graph[S]) AddBlock(name string, b block.Block[S]) BlockID {
	start := len(g.pool)
	for i := 0; i < b.OutputCount(); i++ {
		g.pool = append(g.pool, make([]S, g.ctx.BufferSize*g.ctx.ChannelCount))
	}
	g.blocks = append(g.blocks, blockEntry[S]{b: b, name: name, bufferStart: start})
	g.prepared = false
	return BlockID(len(g.blocks) - 1)
}

// Connect records a Connection from (from, fromOutputPort) to
// (to, toInputPort). Duplicates on the same (to, toInputPort) are not
// deduplicated here; ProcessBuffers honours the last one inserted.
func (g *Graph[S]) Connect(from BlockID, fromOutputPort int, to BlockID, toInputPort int) error {
	if err := g.checkBlockID(from); err != nil {
		return err
	}
	if err := g.checkBlockID(to); err != nil {
		return err
	}
	if fromOutputPort < 0 || fromOutputPort >= g.blocks[from].b.OutputCount() {
		return bbxerr.NewConfigurationError("connect: output port %d out of range for block %q", fromOutputPort, g.blocks[from].name)
	}
	if toInputPort < 0 || toInputPort >= g.blocks[to].b.InputCount() {
		return bbxerr.NewConfigurationError("connect: input port %d out of range for block %q", toInputPort, g.blocks[to].name)
	}
	g.connections = append(g.connections, Connection{From: from, FromPort: fromOutputPort, To: to, ToPort: toInputPort})
	g.prepared = false
	return nil
}

// RegisterOutput marks block as one whose buffers are copied to the
// caller-provided output slices at the end of every ProcessBuffers call.
// Open question (spec.md §9): when more than one output block is
// registered, this implementation sums their channel buffers rather than
// rejecting at prepare time — see DESIGN.md.
func (g *Graph[S]) RegisterOutput(id BlockID) error {
	if err := g.checkBlockID(id); err != nil {
		return err
	}
	g.outputs = append(g.outputs, id)
	return nil
}

func (g *Graph[S]) checkBlockID(id BlockID) error {
	if int(id) < 0 || int(id) >= len(g.blocks) {
		return bbxerr.NewConfigurationError("block id %d does not exist", id)
	}
	return nil
}

// Context returns a copy of the graph's current DspContext.
func (g *Graph[S]) Context() block.DspContext { return g.ctx }

// BlockCount returns the number of blocks in the graph.
func (g *Graph[S]) BlockCount() int { return len(g.blocks) }

// IsPrepared reports whether PrepareForPlayback has succeeded since the
// last graph-mutating call.
func (g *Graph[S]) IsPrepared() bool { return g.prepared }

// Reset zeroes all block state reachable through Resettable and the
// entire buffer pool and modulation vector, matching bbx_graph_reset
// (spec.md §6): phases, filter integrators, envelope stage -> Idle, VCA
// state all return to their just-constructed values.
func (g *Graph[S]) Reset() {
	for i := range g.pool {
		clear(g.pool[i])
	}
	clear(g.modulationValues)
	for _, be := range g.blocks {
		if r, ok := be.b.(Resettable); ok {
			r.Reset()
		}
	}
	g.ctx.CurrentSample = 0
}

// Resettable is implemented by blocks carrying internal state (phase,
// envelope stage, filter integrators) that bbx_graph_reset must zero.
type Resettable interface {
	Reset()
}
