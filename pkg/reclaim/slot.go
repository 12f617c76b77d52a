package reclaim

import "sync/atomic"

// Slot is a per-reader cell holding that reader's currently pinned
// version, or Inactive if the reader holds no pin. The writer only ever
// reads ActiveVersion. Nested-pin depth is not tracked here: package
// swap's LocalReader keeps it.
//
// Slot is registered in a Registry by a weak-reference analogue (see
// registry.go) so that a Slot whose owning reader has gone away does not
// keep the writer from reclaiming past it.
type Slot struct {
	activeVersion atomic.Uint64

	// id is this slot's registration key in the owning Registry.
	id uint64

	// pinDepth is not read or written by this package; Pin and Unpin
	// only touch activeVersion, and nested pins are counted by package
	// swap's LocalReader.
	pinDepth int
}

func newSlot(id uint64) *Slot {
	s := &Slot{id: id}
	s.activeVersion.Store(Inactive)
	return s
}

// Pin stores observed into ActiveVersion with release ordering, marking
// this slot active at that version.
func (s *Slot) Pin(observed Version) {
	s.activeVersion.Store(observed)
}

// Unpin stores Inactive into ActiveVersion, releasing the pin.
func (s *Slot) Unpin() {
	s.activeVersion.Store(Inactive)
}

// Read returns the slot's currently pinned version (or Inactive). Called
// by the writer during safe-frontier computation.
func (s *Slot) Read() Version {
	return s.activeVersion.Load()
}

// IsActive reports whether the slot currently holds a pin.
func (s *Slot) IsActive() bool {
	return s.Read() != Inactive
}
