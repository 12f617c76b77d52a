package swap

import (
	"sync"

	"smrswap/pkg/reclaim"
)

// ReadGuard is a pinned reference to the value a LocalReader observed at
// Load time. Go has no destructors, so unlike the source design's RAII
// handle, a ReadGuard must be released explicitly with Close — failing to
// close one leaks a pin and can stall reclamation indefinitely, the same
// failure mode the teacher's EpochGuard.Leave documents for a forgotten
// Enter/Leave pair.
type ReadGuard[T any] struct {
	reader  *LocalReader[T]
	version reclaim.Version
	ptr     *T

	mu     sync.Mutex
	closed bool
}

// Value returns the pinned value. It panics if called after Close, the
// same "use after done" contract erikfastermann-readerwriter's Reader
// enforces with its done flag.
func (g *ReadGuard[T]) Value() *T {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		panic("swap: guard used after Close")
	}
	return g.ptr
}

// Version returns the version this guard is pinned to.
func (g *ReadGuard[T]) Version() reclaim.Version {
	return g.version
}

// Clone returns an independent guard onto the same pinned value,
// incrementing the owning reader's pin depth. The clone must be closed
// separately from the original.
func (g *ReadGuard[T]) Clone() *ReadGuard[T] {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		panic("swap: guard used after Close")
	}
	g.mu.Unlock()

	g.reader.mu.Lock()
	g.reader.pinDepth++
	g.reader.mu.Unlock()

	return &ReadGuard[T]{reader: g.reader, version: g.version, ptr: g.ptr}
}

// Close releases this guard's pin. Closing the same guard twice panics.
func (g *ReadGuard[T]) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		panic("swap: guard closed twice")
	}
	g.closed = true
	g.mu.Unlock()

	g.reader.unpinOnce()
}
