// Package voice implements the monophonic last-note-priority voice state
// described in spec.md §4.9: a capped stack of held notes feeding frequency
// and gate into the graph's modulation path.
package voice

import "math"

const maxHeldNotes = 16

type heldNote struct {
	note     uint8
	velocity uint8
}

// State is a monophonic, last-note-priority voice: the active note is
// always the top of a stack of held notes, with legato behaviour on
// note-off of the active note while others remain held.
type State struct {
	stack    []heldNote
	active   bool
	note     uint8
	velocity float64
	gate     bool
}

// New creates an empty voice state.
func New() *State {
	return &State{stack: make([]heldNote, 0, maxHeldNotes)}
}

// NoteOn pushes (note, velocity) onto the stack, silently dropping the push
// when the stack is already at capacity while still making note the active
// note, per spec.md §4.9. velocity is the raw MIDI velocity (0-127).
func (s *State) NoteOn(note, velocity uint8) {
	if len(s.stack) < maxHeldNotes {
		s.stack = append(s.stack, heldNote{note: note, velocity: velocity})
	}
	s.note = note
	s.velocity = float64(velocity) / 127.0
	s.active = true
	s.gate = true
}

// NoteOff removes every occurrence of note from the stack. Returns true if
// note was the active note and the stack is now empty (a true release);
// otherwise the new stack top (if any) becomes active with no retrigger,
// and false is returned.
func (s *State) NoteOff(note uint8) bool {
	wasActive := s.active && s.note == note

	filtered := s.stack[:0]
	for _, h := range s.stack {
		if h.note != note {
			filtered = append(filtered, h)
		}
	}
	s.stack = filtered

	if !wasActive {
		return false
	}

	if len(s.stack) == 0 {
		s.active = false
		s.gate = false
		return true
	}

	top := s.stack[len(s.stack)-1]
	s.note = top.note
	s.velocity = float64(top.velocity) / 127.0
	return false
}

// Active reports whether a note is currently held.
func (s *State) Active() bool { return s.active }

// Note returns the current active note number; meaningless when Active is
// false.
func (s *State) Note() uint8 { return s.note }

// Velocity returns the active note's velocity normalised to [0, 1].
func (s *State) Velocity() float64 { return s.velocity }

// Gate reports the current gate signal: true from NoteOn until the stack
// fully empties.
func (s *State) Gate() bool { return s.gate }

// StackLen returns the number of notes currently held, for tests and
// diagnostics.
func (s *State) StackLen() int { return len(s.stack) }

// Frequency converts a MIDI note number to Hz using equal temperament with
// A4 (note 69) at 440 Hz, per spec.md §4.9/§4.13.
func Frequency(note uint8) float64 {
	return 440.0 * math.Pow(2, (float64(note)-69.0)/12.0)
}

// ActiveFrequency returns Frequency(Note()); zero when no note is active.
func (s *State) ActiveFrequency() float64 {
	if !s.active {
		return 0
	}
	return Frequency(s.note)
}
