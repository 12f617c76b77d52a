package swap

// SharedReaderFactory mints LocalReaders against a fixed Container. It exists
// as its own type, distinct from calling Container.Local directly, so a
// handle that only needs to make readers can be passed around (and
// cloned into other goroutines) without exposing the writer-side
// operations on Container itself.
type SharedReaderFactory[T any] struct {
	c *Container[T]
}

// New returns a fresh LocalReader against the factory's container.
func (f *SharedReaderFactory[T]) New() *LocalReader[T] {
	return f.c.Local()
}

// Clone returns an independent factory for the same container, safe to
// hand to another goroutine alongside or instead of the original.
func (f *SharedReaderFactory[T]) Clone() *SharedReaderFactory[T] {
	return &SharedReaderFactory[T]{c: f.c}
}
