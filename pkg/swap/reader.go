package swap

import (
	"sync"

	"smrswap/pkg/reclaim"
)

// LocalReader is a single goroutine's handle for pinning and observing a
// Container's published value. It is not safe for concurrent use by more
// than one goroutine — see the package doc — but it does support nested
// pinning: calling Load while already pinned just increments the pin
// depth and returns a guard onto the same version already held.
type LocalReader[T any] struct {
	c    *Container[T]
	slot *reclaim.Slot

	// ephemeral is set for the throwaway readers Container.pinEphemeral
	// creates for UpdateAndFetch/FetchAndUpdate: once such a reader's
	// pin depth drops back to zero its slot is unregistered immediately,
	// rather than waiting for an explicit Close the caller never gets a
	// chance to issue.
	ephemeral bool

	mu       sync.Mutex
	pinDepth int
	version  reclaim.Version
	ptr      *T

	// goroutineID is recorded on first pin and re-checked on every later
	// call, but only in builds tagged smrswap_debug — see debug_*.go. It
	// is always present as a field (one uint64 is not worth a second
	// struct shape) even though only the debug build ever populates or
	// reads it.
	goroutineID uint64
}

// Load pins the reader to the container's current version (or, if
// already pinned, to the version it is already holding) and returns a
// guard onto that value.
func (r *LocalReader[T]) Load() *ReadGuard[T] {
	r.checkGoroutine()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pinDepth > 0 {
		r.pinDepth++
		return &ReadGuard[T]{reader: r, version: r.version, ptr: r.ptr}
	}

	r.recordGoroutine()

	v := r.c.engine.CurrentVersion()
	r.slot.Pin(v)
	if r.c.engine.Strategy() == reclaim.WritePreferred {
		// Write-preferred pushes the ordering cost onto the reader: one
		// extra load after the pin store stands in for the full fence
		// described in SPEC_FULL.md §4.7.
		_ = r.c.engine.CurrentVersion()
	}

	// Re-read after pinning, not before: a publish that raced with the
	// pin above is only guaranteed visible to this reader once the pin
	// itself has landed.
	ptr := r.c.cell.loadCurrent()

	r.pinDepth = 1
	r.version = v
	r.ptr = ptr
	return &ReadGuard[T]{reader: r, version: v, ptr: ptr}
}

// IsPinned reports whether this reader currently holds any outstanding
// guard.
func (r *LocalReader[T]) IsPinned() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pinDepth > 0
}

// Version returns the version this reader is currently pinned to. Its
// result is meaningless when IsPinned is false.
func (r *LocalReader[T]) Version() reclaim.Version {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Clone returns a new, independently-pinnable reader against the same
// container.
func (r *LocalReader[T]) Clone() *LocalReader[T] {
	return r.c.Local()
}

// Close unregisters the reader's slot. Any outstanding guard becomes
// invalid to use after this call.
func (r *LocalReader[T]) Close() {
	r.checkGoroutine()
	r.c.engine.Registry().Unregister(r.slot)
}

func (r *LocalReader[T]) unpinOnce() {
	r.mu.Lock()
	r.pinDepth--
	depleted := r.pinDepth <= 0
	if depleted {
		r.pinDepth = 0
		r.slot.Unpin()
		r.ptr = nil
	}
	eph := r.ephemeral
	r.mu.Unlock()

	if depleted && eph {
		r.c.engine.Registry().Unregister(r.slot)
	}
}
