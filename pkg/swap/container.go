package swap

import (
	"sync"
	"sync/atomic"

	"smrswap/pkg/reclaim"
)

// Container is a concurrent cell holding one mutable value of type T. It
// has exactly one writer and any number of readers; readers never block
// the writer and the writer never blocks on readers. See the package doc
// for the single-writer contract.
type Container[T any] struct {
	cell   *cell[T]
	engine *reclaim.Engine

	// writerMu detects a second concurrent writer the same way
	// erikfastermann-readerwriter's Writer.unsyncWriterCheck does: a
	// TryLock that fails means two goroutines are driving mutation at
	// once, which this package does not coordinate and treats as a bug.
	writerMu sync.Mutex

	// prev tracks the value most recently displaced from cell, for
	// Previous to serve. It is set unconditionally by every publish and
	// cleared back to nil by the matching retired-queue entry's Destroy
	// callback once that exact value is actually reclaimed — guarded by
	// a CompareAndSwap so a later publish's prev (already overwritten)
	// is never clobbered by an older entry's delayed reclamation.
	prev atomic.Pointer[T]
}

// New constructs a Container holding initial, using DefaultOptions.
func New[T any](initial T) *Container[T] {
	return NewWithOptions(initial, DefaultOptions())
}

// NewWithOptions constructs a Container holding initial with explicit
// publication strategy and auto-collect policy.
func NewWithOptions[T any](initial T, opts Options) *Container[T] {
	return &Container[T]{
		cell:   newCell(initial),
		engine: reclaim.NewEngine(opts.Strategy, opts.AutoCollect),
	}
}

func (c *Container[T]) lockWriter() {
	if !c.writerMu.TryLock() {
		panic("swap: concurrent writer detected")
	}
}

func (c *Container[T]) unlockWriter() {
	c.writerMu.Unlock()
}

// publishAndAdvance swaps new into cell, advances the clock, runs the
// strategy's publish barrier, and retires the value it displaced,
// keeping it reachable through Previous until that retirement actually
// runs. The caller must hold writerMu.
func (c *Container[T]) publishAndAdvance(next T) (old T, version reclaim.Version) {
	oldPtr := c.cell.publish(next)
	c.prev.Store(oldPtr)

	v := c.engine.Advance()
	c.engine.PublishBarrier()
	c.engine.Retire(func() {
		c.prev.CompareAndSwap(oldPtr, nil)
	}, v)

	return *oldPtr, v
}

// Store publishes v as the new current value.
func (c *Container[T]) Store(v T) {
	c.lockWriter()
	defer c.unlockWriter()
	c.publishAndAdvance(v)
}

// Swap publishes v and returns the value it displaced directly to the
// caller, without routing it through the retired queue the way Store's
// displaced value eventually is: the caller now owns it, so there is
// nothing left for a Destroy callback to do. Previous is still updated,
// since the displaced value is genuinely "current - 1" regardless of
// which operation produced it. Two Swap calls with the first call's
// return value fed into the second round-trip: swap(v) returns old,
// swap(old) returns v.
func (c *Container[T]) Swap(v T) T {
	c.lockWriter()
	defer c.unlockWriter()

	oldPtr := c.cell.publish(v)
	c.prev.Store(oldPtr)
	c.engine.Advance()
	c.engine.PublishBarrier()

	return *oldPtr
}

// Update reads the current value, applies f, and publishes the result.
// If f panics, no mutation happens: f runs before cell or the retired
// queue are touched, so the container is left exactly as it was.
func (c *Container[T]) Update(f func(T) T) {
	c.lockWriter()
	defer c.unlockWriter()
	current := *c.cell.loadCurrent()
	next := f(current)
	c.publishAndAdvance(next)
}

// UpdateAndFetch applies f to the current value, publishes the result,
// and returns a pinned guard onto the value just published.
func (c *Container[T]) UpdateAndFetch(f func(T) T) *ReadGuard[T] {
	c.lockWriter()
	defer c.unlockWriter()
	current := *c.cell.loadCurrent()
	next := f(current)
	c.publishAndAdvance(next)
	return c.pinEphemeral()
}

// FetchAndUpdate pins the current value, applies f to it, publishes the
// result, and returns the guard pinned to the pre-update value.
func (c *Container[T]) FetchAndUpdate(f func(T) T) *ReadGuard[T] {
	guard := c.pinEphemeral()
	c.lockWriter()
	defer c.unlockWriter()
	next := f(*guard.Value())
	c.publishAndAdvance(next)
	return guard
}

// pinEphemeral registers a throwaway reader slot, pins it to the current
// version, and returns the resulting guard. The slot is unregistered the
// moment the guard (and any clones of it) are closed, so callers never
// see it and never need to manage its lifecycle.
func (c *Container[T]) pinEphemeral() *ReadGuard[T] {
	r := &LocalReader[T]{c: c, slot: c.engine.Registry().Register(), ephemeral: true}
	return r.Load()
}

// Get returns the currently published value without pinning. It is meant
// for the writer's own convenience reads between publications; the
// returned pointer's lifetime is only as good as the caller's knowledge
// that no concurrent Store has run since.
func (c *Container[T]) Get() *T {
	return c.cell.loadCurrent()
}

// Previous returns the value displaced by the most recent publish, and
// true, as long as it has not yet actually been reclaimed by Collect. It
// returns (nil, false) before the first publish, or once that value's
// retirement has run (no live reader could have observed it, and no
// further publish has come along to supersede it first).
func (c *Container[T]) Previous() (*T, bool) {
	p := c.prev.Load()
	if p == nil {
		return nil, false
	}
	return p, true
}

// Version returns the clock's current version.
func (c *Container[T]) Version() reclaim.Version {
	return c.engine.CurrentVersion()
}

// GarbageCount returns the number of retired entries not yet reclaimed.
func (c *Container[T]) GarbageCount() int {
	return c.engine.GarbageCount()
}

// Collect reclaims every retired entry no pinned reader can still
// observe. It returns the number of entries reclaimed.
func (c *Container[T]) Collect() int {
	return c.engine.Collect()
}

// Local registers a new LocalReader against this container. The reader
// must be closed when the caller is done with it.
func (c *Container[T]) Local() *LocalReader[T] {
	return &LocalReader[T]{c: c, slot: c.engine.Registry().Register()}
}

// Readers returns a factory that can mint further LocalReaders from any
// goroutine, independent of this Container value itself.
func (c *Container[T]) Readers() *SharedReaderFactory[T] {
	return &SharedReaderFactory[T]{c: c}
}
