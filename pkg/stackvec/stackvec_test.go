package stackvec_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/stackvec"
)

func TestPushPopOrder(t *testing.T) {
	sv := stackvec.New[int](4)
	require.Equal(t, 0, sv.Len())

	_, ok := sv.Push(1)
	require.True(t, ok)
	_, ok = sv.Push(2)
	require.True(t, ok)
	_, ok = sv.Push(3)
	require.True(t, ok)
	require.Equal(t, 3, sv.Len())

	v, ok := sv.Pop()
	require.True(t, ok)
	require.Equal(t, 3, v)
	require.Equal(t, 2, sv.Len())
}

func TestPushRejectsPastCapacity(t *testing.T) {
	sv := stackvec.New[int](2)
	_, ok := sv.Push(1)
	require.True(t, ok)
	_, ok = sv.Push(2)
	require.True(t, ok)

	overflow, ok := sv.Push(3)
	require.False(t, ok)
	require.Equal(t, 3, overflow)
	require.Equal(t, 2, sv.Len())
}

func TestClear(t *testing.T) {
	sv := stackvec.New[int](4)
	sv.Push(1)
	sv.Push(2)
	sv.Clear()
	require.Equal(t, 0, sv.Len())
	_, ok := sv.Pop()
	require.False(t, ok)
}

func TestPopOnEmptyIsFalse(t *testing.T) {
	sv := stackvec.New[int](4)
	_, ok := sv.Pop()
	require.False(t, ok)
}

func TestLenNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(rt, "cap")
		sv := stackvec.New[int](capacity)
		pushes := rapid.IntRange(0, 32).Draw(rt, "pushes")
		for i := 0; i < pushes; i++ {
			sv.Push(i)
		}
		if sv.Len() > sv.Cap() {
			rt.Fatalf("len %d exceeded cap %d", sv.Len(), sv.Cap())
		}
	})
}
