package main

import (
	"encoding/binary"
	"math"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/graph"
)

// graphReader adapts a prepared graph.Graph into an io.Reader of
// interleaved float32LE bytes, the shape oto.Player.Read expects. It
// mirrors the teacher's OtoPlayer.Read: planar process_buffers output is
// interleaved here since oto has no planar API.
type graphReader struct {
	g   *graph.Graph[float32]
	ctx block.DspContext

	planar        [][]float32
	pending       []byte
	bytesPerFrame int
}

func newGraphReader(g *graph.Graph[float32], ctx block.DspContext) *graphReader {
	planar := make([][]float32, ctx.ChannelCount)
	for i := range planar {
		planar[i] = make([]float32, ctx.BufferSize)
	}
	return &graphReader{
		g:             g,
		ctx:           ctx,
		planar:        planar,
		bytesPerFrame: 4 * ctx.ChannelCount,
	}
}

func (r *graphReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			if err := r.g.ProcessBuffers(r.planar); err != nil {
				return n, err
			}
			r.pending = r.interleave()
		}
		copied := copy(p[n:], r.pending)
		r.pending = r.pending[copied:]
		n += copied
	}
	return n, nil
}

func (r *graphReader) interleave() []byte {
	buf := make([]byte, r.ctx.BufferSize*r.bytesPerFrame)
	off := 0
	for i := 0; i < r.ctx.BufferSize; i++ {
		for ch := 0; ch < r.ctx.ChannelCount; ch++ {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(r.planar[ch][i]))
			off += 4
		}
	}
	return buf
}
