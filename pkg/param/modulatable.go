package param

import "github.com/blackboxaudio/bbx-audio-sub000/pkg/sample"

// modSlot pairs an optional modulation source with a signed depth
// coefficient. A slot with hasSource == false is empty.
type modSlot[S sample.Type] struct {
	hasSource bool
	source    BlockID
	depth     S
}

// ModulatableParam is a base value plus up to N (source, depth) modulation
// slots: evaluate(v) == base + sum(v[slot.source] * slot.depth). N is a
// constructor argument rather than a const generic for the same reason as
// stackvec.StackVec — Go has no const generics.
type ModulatableParam[S sample.Type] struct {
	base     S
	external *Parameter[S]
	slots    []modSlot[S]
}

// NewModulatableParam creates a parameter with base value base and room
// for up to maxSlots simultaneous modulation sources.
func NewModulatableParam[S sample.Type](base S, maxSlots int) *ModulatableParam[S] {
	return &ModulatableParam[S]{base: base, slots: make([]modSlot[S], maxSlots)}
}

// SetBase replaces the base value.
func (m *ModulatableParam[S]) SetBase(base S) { m.base = base }

// Base returns the current base value.
func (m *ModulatableParam[S]) Base() S { return m.base }

// BindExternal routes the base through an External/Constant/Modulated
// Parameter instead of the plain base field — used when the base itself
// should be host-bindable (bind_parameter in spec.md §4.7).
func (m *ModulatableParam[S]) BindExternal(p Parameter[S]) { m.external = &p }

// AddModulation fills the first empty slot with (source, depth), returning
// false if every slot is already occupied.
func (m *ModulatableParam[S]) AddModulation(source BlockID, depth S) bool {
	for i := range m.slots {
		if !m.slots[i].hasSource {
			m.slots[i] = modSlot[S]{hasSource: true, source: source, depth: depth}
			return true
		}
	}
	return false
}

// RemoveModulation clears every slot bound to source.
func (m *ModulatableParam[S]) RemoveModulation(source BlockID) {
	for i := range m.slots {
		if m.slots[i].hasSource && m.slots[i].source == source {
			m.slots[i] = modSlot[S]{}
		}
	}
}

// SetDepth updates the depth of the slot bound to source in place, if one
// exists.
func (m *ModulatableParam[S]) SetDepth(source BlockID, depth S) bool {
	for i := range m.slots {
		if m.slots[i].hasSource && m.slots[i].source == source {
			m.slots[i].depth = depth
			return true
		}
	}
	return false
}

// Evaluate computes base + sum(modulationValues[source] * depth) over
// every occupied slot.
func (m *ModulatableParam[S]) Evaluate(modulationValues []S) S {
	base := m.base
	if m.external != nil {
		base = m.external.GetValue(modulationValues)
	}
	total := base
	for _, slot := range m.slots {
		if !slot.hasSource {
			continue
		}
		if int(slot.source) < len(modulationValues) {
			total += modulationValues[slot.source] * slot.depth
		}
	}
	return total
}
