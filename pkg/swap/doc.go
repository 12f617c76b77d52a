// Package swap provides Container, a concurrent cell holding a single
// mutable value of arbitrary type T: one writer publishes new values,
// any number of readers observe them without blocking the writer and
// without the writer blocking on readers, and superseded values are
// reclaimed through package reclaim's version-based scheme rather than
// wrapping T in a reference-counted handle.
//
// # Usage
//
//	c := swap.New(initialValue)
//	reader := c.Local()
//	defer reader.Close()
//
//	guard := reader.Load()
//	use(*guard.Value())
//	guard.Close()
//
//	c.Store(nextValue)
//
// A Container has exactly one writer. Concurrent calls to Store, Update,
// Swap, UpdateAndFetch or FetchAndUpdate from more than one goroutine at a
// time are a programmer error and panic, the same way
// erikfastermann-readerwriter's Writer panics on concurrent Get/Set/Swap —
// this library does not coordinate multiple writers; callers who need that
// wrap a Container in their own mutex.
//
// A LocalReader and the ReadGuards it produces must be used from a single
// goroutine at a time. Go has no type-level way to enforce this (the
// source design this package implements relies on an affine handle type
// the host language does not have); passing a LocalReader or ReadGuard to
// another goroutine makes both goroutines share one pin depth and one
// pinned version. LocalReader guards that bookkeeping with a mutex, so
// such misuse is not detected in a default build; builds tagged
// smrswap_debug panic on it.
package swap
