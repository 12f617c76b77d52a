package swap

import "testing"

func TestLocalReaderPinStability(t *testing.T) {
	c := New(1)
	r := c.Local()
	defer r.Close()

	g1 := r.Load()
	p1 := g1.Value()
	c.Store(2) // concurrent-in-spirit write; reader hasn't reloaded
	p2 := r.Load().Value()

	if p1 != p2 {
		t.Fatalf("loads within the same pin interval returned different pointers")
	}
	g1.Close()
}

func TestLocalReaderNestedPin(t *testing.T) {
	c := New(1)
	r := c.Local()
	defer r.Close()

	outer := r.Load()
	inner := r.Load()

	if outer.Version() != inner.Version() {
		t.Fatalf("nested pins observed different versions: %d vs %d", outer.Version(), inner.Version())
	}

	inner.Close()
	if !r.IsPinned() {
		t.Fatalf("reader unpinned after closing only the inner guard")
	}

	outer.Close()
	if r.IsPinned() {
		t.Fatalf("reader still pinned after closing the outer guard")
	}
}

func TestGuardCloneIndependentlyClosable(t *testing.T) {
	c := New(1)
	r := c.Local()
	defer r.Close()

	g := r.Load()
	clone := g.Clone()

	g.Close()
	if !r.IsPinned() {
		t.Fatalf("reader unpinned after closing only the original guard")
	}
	clone.Close()
	if r.IsPinned() {
		t.Fatalf("reader still pinned after closing the clone")
	}
}

func TestGuardDoubleCloseIsAProgrammerError(t *testing.T) {
	c := New(1)
	r := c.Local()
	defer r.Close()

	g := r.Load()
	g.Close()

	defer func() {
		if rec := recover(); rec == nil {
			t.Fatalf("expected panic on double Close")
		}
	}()
	g.Close()
}

func TestGuardValueAfterCloseIsAProgrammerError(t *testing.T) {
	c := New(1)
	r := c.Local()
	defer r.Close()

	g := r.Load()
	g.Close()

	defer func() {
		if rec := recover(); rec == nil {
			t.Fatalf("expected panic reading a closed guard")
		}
	}()
	g.Value()
}

func TestDeadSlotReapedOnClose(t *testing.T) {
	c := New(0)
	r := c.Local()
	r.Load()

	if c.engine.Registry().Len() != 1 {
		t.Fatalf("Registry.Len() = %d, want 1", c.engine.Registry().Len())
	}

	r.Close()
	if c.engine.Registry().Len() != 0 {
		t.Fatalf("Registry.Len() after Close = %d, want 0", c.engine.Registry().Len())
	}

	for i := 1; i <= 100; i++ {
		c.Store(i)
	}
	c.Collect()

	if got := c.GarbageCount(); got != 0 {
		t.Fatalf("GarbageCount() after dead reader + 100 stores + Collect = %d, want 0", got)
	}
}

func TestReaderCloneIsIndependentReader(t *testing.T) {
	c := New(1)
	r1 := c.Local()
	defer r1.Close()
	r2 := r1.Clone()
	defer r2.Close()

	g1 := r1.Load()
	defer g1.Close()

	if r2.IsPinned() {
		t.Fatalf("cloned reader should not inherit the original's pin")
	}
}

func TestSharedReaderFactoryProducesIndependentReaders(t *testing.T) {
	c := New(1)
	f := c.Readers()

	r1 := f.New()
	defer r1.Close()
	r2 := f.Clone().New()
	defer r2.Close()

	g1 := r1.Load()
	defer g1.Close()

	if r2.IsPinned() {
		t.Fatalf("readers minted from a factory must not share pin state")
	}
}
