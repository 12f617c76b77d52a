//go:build smrswap_debug

package swap

import (
	"sync"
	"testing"
)

func TestCrossGoroutineReaderUsePanicsInDebugBuild(t *testing.T) {
	c := New(1)
	r := c.Local()
	defer r.Close()

	g := r.Load()
	defer g.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	panicked := make(chan any, 1)
	go func() {
		defer wg.Done()
		defer func() { panicked <- recover() }()
		r.Load()
	}()
	wg.Wait()

	if rec := <-panicked; rec == nil {
		t.Fatalf("expected Load from a different goroutine to panic in a smrswap_debug build")
	}
}
