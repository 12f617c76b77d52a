package reclaim

import "sync"

// Engine composes a Clock, a Registry of reader Slots and a retired-entry
// queue into the full reclamation subsystem. It is the package's
// top-level type; package swap embeds one per container.
//
// Engine itself never touches the value being protected — callers pass
// Destroy closures into Retire that know how to release whatever they
// captured.
type Engine struct {
	clock    Clock
	registry *Registry
	strategy Strategy
	auto     AutoCollectPolicy

	// mu guards retired, which is otherwise writer-only state. A mutex
	// rather than "writer is single so no lock needed" because GarbageCount
	// and Collect may legitimately be called from a different goroutine
	// than the one driving Store (the distilled design only forbids
	// concurrent writers, not a writer that migrates goroutines).
	mu      sync.Mutex
	retired *retiredQueue
}

// NewEngine constructs a reclamation engine with the given publication
// strategy and auto-collect policy.
func NewEngine(strategy Strategy, auto AutoCollectPolicy) *Engine {
	return &Engine{
		registry: NewRegistry(),
		strategy: strategy,
		auto:     auto,
		retired:  newRetiredQueue(),
	}
}

// Strategy returns the publication strategy this engine was built with.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Registry returns the reader-slot registry backing this engine.
func (e *Engine) Registry() *Registry { return e.registry }

// CurrentVersion returns the clock's current value without advancing it.
func (e *Engine) CurrentVersion() Version { return e.clock.Current() }

// Advance advances the clock and returns the pre-increment value — the
// version the value just displaced by a publish is retired under. Only the writer
// calls this, immediately after swapping in the new value.
func (e *Engine) Advance() Version { return e.clock.Advance() }

// PublishBarrier performs the strategy-specific writer-side barrier after
// a publish + Advance. Under WritePreferred it is a no-op (the cost is
// paid entirely by readers at pin time). Under ReadPreferred it walks the
// registry once, substituting for the process-wide serializing operation
// the distilled design calls for.
func (e *Engine) PublishBarrier() {
	if e.strategy == ReadPreferred {
		broadcastFence(e.registry)
	}
}

// Retire enqueues destroy to run once no reader can observe the value it
// guards, tagging it with the version it was retired at. If the
// configured auto-collect policy fires, Collect runs inline before
// Retire returns.
func (e *Engine) Retire(destroy func(), version Version) {
	e.mu.Lock()
	e.retired.push(Entry{VersionAtRetirement: version, Destroy: destroy})
	shouldCollect := e.auto.shouldCollect(e.retired.len())
	e.mu.Unlock()

	if shouldCollect {
		e.Collect()
	}
}

// Collect computes the safe frontier from the registry's live slots and
// destroys every retired entry at or below it. It returns the number of
// entries reclaimed.
//
// safeFrontier is minActive-1 when at least one slot is active, or
// unbounded (drain everything) when no slot is active at all — exactly
// the distilled design's §4.5 computation.
func (e *Engine) Collect() int {
	min, anyActive := e.registry.minActive()

	e.mu.Lock()
	defer e.mu.Unlock()

	if !anyActive {
		return e.retired.drainAll()
	}
	if min == 0 {
		// No version below 0 exists; nothing retired at version < 0 can
		// be safe yet.
		return 0
	}
	return e.retired.drainSafe(min - 1)
}

// GarbageCount returns the current retired-queue depth.
func (e *Engine) GarbageCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.retired.len()
}
