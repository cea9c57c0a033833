package ring_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/ring"
)

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	require.Equal(t, 8, ring.New[int](5).Capacity())
	require.Equal(t, 1, ring.New[int](0).Capacity())
	require.Equal(t, 16, ring.New[int](16).Capacity())
}

func TestPushPopFIFO(t *testing.T) {
	r := ring.New[int](4)
	for i := 0; i < 4; i++ {
		_, ok := r.TryPush(i)
		require.True(t, ok)
	}
	_, ok := r.TryPush(99)
	require.False(t, ok, "full ring rejects push")

	for i := 0; i < 4; i++ {
		v, ok := r.TryPop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok = r.TryPop()
	require.False(t, ok, "empty ring rejects pop")
}

func TestDrainInto(t *testing.T) {
	r := ring.New[int](8)
	for i := 0; i < 5; i++ {
		r.TryPush(i)
	}
	dst := make([]int, 3)
	n := r.DrainInto(dst)
	require.Equal(t, 3, n)
	require.Equal(t, []int{0, 1, 2}, dst)
	require.Equal(t, 2, r.Len())
}

// TestConcurrentProducerConsumer exercises the ring across two real
// goroutines, matching spec.md §8's SPSC scenario: a producer pushes an
// exact sequence 0..10000, a consumer drains it, and the consumer must see
// exactly that sequence in order.
func TestConcurrentProducerConsumer(t *testing.T) {
	const n = 10000
	r := ring.New[int](256)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for {
				if _, ok := r.TryPush(i); ok {
					break
				}
			}
		}
	}()

	received := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(received) < n {
			if v, ok := r.TryPop(); ok {
				received = append(received, v)
			}
		}
	}()

	wg.Wait()

	require.Len(t, received, n)
	for i, v := range received {
		require.Equal(t, i, v)
	}
}
