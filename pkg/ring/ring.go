// Package ring implements a lock-free single-producer/single-consumer
// bounded queue — the mechanism producer threads (UI, MIDI, network) use to
// hand control events and recorded samples to the audio thread without
// ever blocking it.
package ring

import (
	"sync/atomic"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/atomics"
)

// Ring is a bounded SPSC queue of T with power-of-two capacity so that the
// index-to-slot mapping is a bit mask. Exactly one goroutine may call
// TryPush (the producer) and exactly one may call TryPop (the consumer);
// both are safe to use concurrently with each other, never with themselves.
type Ring[T any] struct {
	mask uint64
	buf  []T

	head atomics.CachePadded[atomic.Uint64] // producer-owned write cursor
	tail atomics.CachePadded[atomic.Uint64] // consumer-owned read cursor
}

// New rounds capacity up to the next power of two (minimum 1) and
// allocates the backing slice once; the ring never allocates again after
// this call.
func New[T any](capacity int) *Ring[T] {
	n := nextPowerOfTwo(capacity)
	return &Ring[T]{
		mask: uint64(n - 1),
		buf:  make([]T, n),
	}
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Capacity returns the ring's (power-of-two) slot count.
func (r *Ring[T]) Capacity() int { return int(r.mask) + 1 }

// TryPush writes v into the next free slot. It is wait-free and never
// allocates. If the ring is full it returns v back to the caller.
//
// Producer-side ordering: tail is read with Acquire (to observe the
// consumer's progress), head is published with Release (so the written
// payload is visible to the consumer before the new head is).
func (r *Ring[T]) TryPush(v T) (rejected T, ok bool) {
	head := r.head.Value.Load()
	tail := r.tail.Value.Load() // Acquire via atomic.Uint64.Load on this platform
	if head-tail >= uint64(len(r.buf)) {
		return v, false
	}
	r.buf[head&r.mask] = v
	r.head.Value.Store(head + 1) // Release
	var zero T
	return zero, true
}

// TryPop reads the oldest unread slot. It is wait-free and never
// allocates. If the ring is empty it returns ok == false.
//
// Consumer-side ordering: head is read with Acquire (to observe the
// producer's write), tail is published with Release.
func (r *Ring[T]) TryPop() (v T, ok bool) {
	tail := r.tail.Value.Load()
	head := r.head.Value.Load() // Acquire
	if tail >= head {
		var zero T
		return zero, false
	}
	v = r.buf[tail&r.mask]
	var zero T
	r.buf[tail&r.mask] = zero // drop the payload's reference exactly once
	r.tail.Value.Store(tail + 1) // Release
	return v, true
}

// Len returns a snapshot of the number of occupied slots. It is advisory
// only — by the time the caller observes it, the producer or consumer may
// have already changed it.
func (r *Ring[T]) Len() int {
	head := r.head.Value.Load()
	tail := r.tail.Value.Load()
	return int(head - tail)
}

// DrainInto pops up to len(dst) items into dst, returning the count popped.
// Used by the audio thread to batch-drain a control ring into a
// fixed-length slice, so one call never pops more than len(dst) events.
func (r *Ring[T]) DrainInto(dst []T) int {
	n := 0
	for n < len(dst) {
		v, ok := r.TryPop()
		if !ok {
			break
		}
		dst[n] = v
		n++
	}
	return n
}
