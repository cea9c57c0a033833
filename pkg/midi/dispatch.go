package midi

import (
	"sync/atomic"

	"github.com/blackboxaudio/bbx-audio-sub000/pkg/param"
	"github.com/blackboxaudio/bbx-audio-sub000/pkg/voice"
)

// Dispatcher applies decoded Events to a voice.State and publishes the
// resulting frequency/velocity/gate to host-owned atomics the graph reads
// through param.External, matching spec.md §5's "producer publishes,
// audio thread reads" control flow. It is intended to run on its own
// goroutine, draining a ring.Ring[Event] fed by a transport collaborator.
type Dispatcher struct {
	voice *voice.State

	freqBits *atomic.Uint32
	velBits  *atomic.Uint32
	gateBits *atomic.Uint32
}

// NewDispatcher creates a dispatcher writing into the three given
// host-owned atomics (any may be nil to skip that publication).
func NewDispatcher(freqBits, velBits, gateBits *atomic.Uint32) *Dispatcher {
	return &Dispatcher{
		voice:    voice.New(),
		freqBits: freqBits,
		velBits:  velBits,
		gateBits: gateBits,
	}
}

// Voice exposes the underlying voice state, mainly for tests.
func (d *Dispatcher) Voice() *voice.State { return d.voice }

// Dispatch applies e to the voice state and republishes frequency,
// velocity and gate. Events other than note-on/note-off are accepted (so
// callers can route CC/pitch-wheel elsewhere) but do not change voice
// state here.
func (d *Dispatcher) Dispatch(e Event) {
	switch {
	case e.IsNoteOn():
		d.voice.NoteOn(e.Note(), e.Velocity())
	case e.IsNoteOff():
		d.voice.NoteOff(e.Note())
	default:
		return
	}
	d.publish()
}

func (d *Dispatcher) publish() {
	if d.freqBits != nil {
		param.StoreExternal(d.freqBits, float32(d.voice.ActiveFrequency()))
	}
	if d.velBits != nil {
		param.StoreExternal(d.velBits, float32(d.voice.Velocity()))
	}
	if d.gateBits != nil {
		gate := float32(0)
		if d.voice.Gate() {
			gate = 1
		}
		param.StoreExternal(d.gateBits, gate)
	}
}
