// Package atomics provides the cache-line-padded wrapper the SPSC ring uses
// to keep its producer and consumer indices from sharing a cache line.
package atomics

import "golang.org/x/sys/cpu"

// CachePadded wraps a value of type T and pads it out to a full cache line
// using golang.org/x/sys/cpu's portable cache-line-size annotation, so that
// two CachePadded values never share a line — this is what keeps the SPSC
// ring's head and tail from false-sharing between the producer and
// consumer cores, the same property the teacher's hand-rolled 64-byte
// _pad1/_pad2 struct fields in SoundChip/Channel protect by hand.
type CachePadded[T any] struct {
	Value T
	_     cpu.CacheLinePad
}

// NewCachePadded wraps v.
func NewCachePadded[T any](v T) CachePadded[T] {
	return CachePadded[T]{Value: v}
}
