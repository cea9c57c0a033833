package graph

import "errors"

// ErrNotPrepared is returned by ProcessBuffers when PrepareForPlayback has
// not succeeded since the last graph-mutating call.
var ErrNotPrepared = errors.New("bbx: graph not prepared for playback")

// inputScratch/outputScratch are reused across calls to avoid allocating
// the per-block slice-of-slices on every buffer — the one concession this
// type makes to "no allocation after prepare": these backing arrays are
// sized to the largest block's port count the first time they're needed
// and grown thereafter only when a block with more ports has been added,
// never shrunk, never reallocated mid-call.
type scratch[S any] struct {
	inputs  [][]S
	outputs [][]S
}

func (g *Graph[S]) ensureScratch() {
	maxPorts := 1
	for _, be := range g.blocks {
		if n := be.b.InputCount(); n > maxPorts {
			maxPorts = n
		}
		if n := be.b.OutputCount(); n > maxPorts {
			maxPorts = n
		}
	}
	if len(g.scratch.inputs) < maxPorts {
		g.scratch.inputs = make([][]S, maxPorts)
		g.scratch.outputs = make([][]S, maxPorts)
	}
}

// ProcessBuffers runs exactly one buffer:
//  1. zero every pool buffer,
//  2. walk blocks in execution order, gathering input/output slices from
//     the pool and calling Process, storing any modulation output,
//  3. copy the registered output block(s) into the caller-provided slices,
//  4. advance ctx.CurrentSample by BufferSize.
//
// With BufferSize == 0 the call is a no-op per spec.md §8. Zero-length
// caller slices with a non-zero BufferSize still run every block and
// advance ctx.CurrentSample; only the copy into them is empty.
func (g *Graph[S]) ProcessBuffers(outputs [][]S) error {
	if !g.prepared {
		return ErrNotPrepared
	}
	if g.ctx.BufferSize == 0 {
		return nil
	}

	for i := range g.pool {
		clear(g.pool[i])
	}

	g.ensureScratch()

	for _, id := range g.execOrder {
		be := &g.blocks[id]
		nin := be.b.InputCount()
		nout := be.b.OutputCount()

		ins := g.scratch.inputs[:nin]
		for port := 0; port < nin; port++ {
			idx := g.inputMap[id][port]
			if idx < 0 {
				ins[port] = g.silence
			} else {
				ins[port] = g.pool[idx]
			}
		}

		outs := g.scratch.outputs[:nout]
		for port := 0; port < nout; port++ {
			outs[port] = g.pool[be.bufferStart+port]
		}

		be.b.Process(ins, outs, g.modulationValues, &g.ctx)

		if mods := be.b.ModulationOutputs(); len(mods) > 0 && nout > 0 && len(outs[0]) > 0 {
			g.modulationValues[id] = outs[0][0]
		}
	}

	g.copyOutputs(outputs)
	g.ctx.Advance()
	return nil
}

// copyOutputs sums every registered output block's channel buffers into
// the caller-provided slices, channel by channel, truncating to the
// shorter length. Summing (rather than copying only the first registered
// output, or rejecting multiple registrations outright) is this
// implementation's resolution of the open question in spec.md §9.
func (g *Graph[S]) copyOutputs(outputs [][]S) {
	for ch := range outputs {
		clear(outputs[ch])
	}
	for _, id := range g.outputs {
		be := &g.blocks[id]
		nout := be.b.OutputCount()
		for ch := 0; ch < nout && ch < len(outputs); ch++ {
			src := g.pool[be.bufferStart+ch]
			dst := outputs[ch]
			n := len(src)
			if len(dst) < n {
				n = len(dst)
			}
			for i := 0; i < n; i++ {
				dst[i] += src[i]
			}
		}
	}
}
