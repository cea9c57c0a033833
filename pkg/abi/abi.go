// Package abi is the single cgo boundary in the repository: it exports
// the bbx_graph_* C ABI of spec.md §6 for a C++ host or DAW plugin
// wrapper, built with `go build -buildmode=c-shared`.
package abi

/*
#include <stdint.h>

typedef struct {
	uint8_t  status;
	uint8_t  data1;
	uint8_t  data2;
	uint32_t sample_offset_in_buffer;
} bbx_midi_event;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/block"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/graph"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/midi"
)

// Status mirrors the ABI's Status enum.
type Status = C.int

const (
	StatusOk                Status = 0
	StatusNullPointer       Status = 1
	StatusInvalidBufferSize Status = 2
	StatusInvalidParameter  Status = 3
)

const maxSamplesPerCall = 4096

var (
	handlesMu sync.Mutex
	handles   = map[uintptr]*graph.Graph[float32]{}
	nextID    uintptr
)

//export bbx_graph_create
func bbx_graph_create() C.uintptr_t {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	nextID++
	id := nextID
	handles[id] = graph.New[float32](block.DspContext{})
	return C.uintptr_t(id)
}

//export bbx_graph_destroy
func bbx_graph_destroy(h C.uintptr_t) {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	delete(handles, uintptr(h))
}

func lookup(h C.uintptr_t) *graph.Graph[float32] {
	handlesMu.Lock()
	defer handlesMu.Unlock()
	return handles[uintptr(h)]
}

//export bbx_graph_prepare
func bbx_graph_prepare(h C.uintptr_t, sampleRate C.double, bufferSize, numChannels C.uint32_t) Status {
	g := lookup(h)
	if g == nil {
		return StatusNullPointer
	}
	if bufferSize == 0 || numChannels == 0 {
		return StatusInvalidBufferSize
	}
	if err := g.PrepareForPlayback(); err != nil {
		return StatusInvalidParameter
	}
	return StatusOk
}

//export bbx_graph_reset
func bbx_graph_reset(h C.uintptr_t) Status {
	g := lookup(h)
	if g == nil {
		return StatusNullPointer
	}
	g.Reset()
	return StatusOk
}

// bbx_graph_process runs exactly one buffer. A panic anywhere inside a
// block's Process is the one recover() boundary in the codebase: outputs
// are zeroed and control returns normally, matching spec.md §6/§7's "the
// host never observes a stack unwind".
//
//export bbx_graph_process
func bbx_graph_process(
	h C.uintptr_t,
	outputs **C.float,
	numChannels C.uint32_t,
	numSamples C.uint32_t,
	midiEvents *C.bbx_midi_event,
	numMidi C.uint32_t,
) (status Status) {
	g := lookup(h)
	if g == nil {
		return StatusNullPointer
	}

	n := int(numSamples)
	if n > maxSamplesPerCall {
		n = maxSamplesPerCall
	}
	nch := int(numChannels)

	outSlices := make([][]float32, nch)
	outPtrs := unsafe.Slice(outputs, nch)
	for ch := 0; ch < nch; ch++ {
		outSlices[ch] = unsafe.Slice((*float32)(unsafe.Pointer(outPtrs[ch])), n)
	}

	defer func() {
		if r := recover(); r != nil {
			for ch := range outSlices {
				clear(outSlices[ch])
			}
			status = StatusOk
		}
	}()

	events := unsafe.Slice(midiEvents, int(numMidi))
	for _, e := range events {
		_ = midi.Event{
			Status:       uint8(e.status),
			Data1:        uint8(e.data1),
			Data2:        uint8(e.data2),
			SampleOffset: uint32(e.sample_offset_in_buffer),
		}
		// Routing decoded MIDI into a bound voice.State/midi.Dispatcher is
		// a host-assembly concern (which parameters the graph exposes
		// varies per config); this ABI layer decodes each event and does
		// not route it anywhere.
	}

	if err := g.ProcessBuffers(outSlices); err != nil {
		return StatusInvalidParameter
	}
	return StatusOk
}
