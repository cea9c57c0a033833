// Package render implements the offline renderer of spec.md §4.8: driving
// a prepared graph as fast as the host CPU allows and feeding a pluggable
// sample sink, faster-than-realtime where the host can keep up.
package render

import (
	"time"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/bbxerr"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/graph"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"
)

// Writer is the pluggable sample-accepting sink OfflineRenderer drains
// into. SampleRate/ChannelCount must match the graph being rendered.
// WriteSamples receives exactly one slice per channel, each the same
// length (<= the graph's buffer size); Close finalises and flushes any
// backing file/stream.
type Writer[S sample.Type] interface {
	SampleRate() float64
	ChannelCount() int
	WriteSamples(channels [][]S) error
	Close() error
}

// Duration is either a wall-clock length in seconds or an exact sample
// count, per spec.md §4.8.
type Duration struct {
	seconds   float64
	samples   uint64
	isSamples bool
}

// Seconds builds a Duration of n seconds.
func Seconds(n float64) Duration { return Duration{seconds: n} }

// Samples builds a Duration of exactly n samples.
func Samples(n uint64) Duration { return Duration{samples: n, isSamples: true} }

func (d Duration) totalSamples(sampleRate float64) uint64 {
	if d.isSamples {
		return d.samples
	}
	return uint64(d.seconds * sampleRate)
}

// Stats reports the outcome of a render call.
type Stats struct {
	SamplesRendered uint64
	WallTime        time.Duration
	SpeedupFactor   float64 // rendered_seconds / wall_seconds
}

// OfflineRenderer drives graph g into writer w, one buffer at a time,
// until duration is satisfied.
type OfflineRenderer[S sample.Type] struct {
	g *graph.Graph[S]
	w Writer[S]
}

// New creates a renderer. g must already be prepared (PrepareForPlayback
// called and succeeded); w's sample rate and channel count must match g's
// context.
func New[S sample.Type](g *graph.Graph[S], w Writer[S]) (*OfflineRenderer[S], error) {
	if !g.IsPrepared() {
		return nil, bbxerr.NewConfigurationError("render: graph is not prepared")
	}
	ctx := g.Context()
	if w.SampleRate() != ctx.SampleRate {
		return nil, bbxerr.NewConfigurationError("render: writer sample rate %v does not match graph %v", w.SampleRate(), ctx.SampleRate)
	}
	if w.ChannelCount() != ctx.ChannelCount {
		return nil, bbxerr.NewConfigurationError("render: writer channel count %d does not match graph %d", w.ChannelCount(), ctx.ChannelCount)
	}
	return &OfflineRenderer[S]{g: g, w: w}, nil
}

// Render drives the graph for duration, writing min(buffer_size,
// samples_remaining) samples per buffer, then finalises the writer and
// returns render statistics.
func (r *OfflineRenderer[S]) Render(duration Duration) (Stats, error) {
	ctx := r.g.Context()
	remaining := duration.totalSamples(ctx.SampleRate)
	total := remaining

	outputs := make([][]S, ctx.ChannelCount)
	for i := range outputs {
		outputs[i] = make([]S, ctx.BufferSize)
	}

	start := nowFunc()
	for remaining > 0 {
		if err := r.g.ProcessBuffers(outputs); err != nil {
			return Stats{}, err
		}

		n := uint64(ctx.BufferSize)
		if n > remaining {
			n = remaining
		}

		var chunk [][]S
		if n == uint64(ctx.BufferSize) {
			chunk = outputs
		} else {
			chunk = make([][]S, ctx.ChannelCount)
			for i := range chunk {
				chunk[i] = outputs[i][:n]
			}
		}

		if err := r.w.WriteSamples(chunk); err != nil {
			return Stats{}, err
		}
		remaining -= n
	}
	wall := nowFunc().Sub(start)

	if err := r.w.Close(); err != nil {
		return Stats{}, err
	}

	renderedSeconds := float64(total) / ctx.SampleRate
	wallSeconds := wall.Seconds()
	speedup := 0.0
	if wallSeconds > 0 {
		speedup = renderedSeconds / wallSeconds
	}

	return Stats{
		SamplesRendered: total,
		WallTime:        wall,
		SpeedupFactor:   speedup,
	}, nil
}

// nowFunc is a var so tests can stub it; production code leaves it as
// time.Now.
var nowFunc = time.Now
