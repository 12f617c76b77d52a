//go:build smrswap_debug

package swap

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID parses the "goroutine N [running]:" header off a
// runtime.Stack dump. This is the same trick erikfastermann-readerwriter's
// tests use to assert a Reader never crosses goroutines; it is not cheap
// enough for release builds, which is why it only exists behind this tag.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := buf[:n]
	line = bytes.TrimPrefix(line, []byte("goroutine "))
	if idx := bytes.IndexByte(line, ' '); idx >= 0 {
		line = line[:idx]
	}
	id, err := strconv.ParseUint(string(line), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (r *LocalReader[T]) recordGoroutine() {
	r.goroutineID = currentGoroutineID()
}

// checkGoroutine panics if this reader is being used from a goroutine other
// than the one that first pinned it. A zero recorded ID means the reader
// has never been pinned yet, so there is nothing to check.
func (r *LocalReader[T]) checkGoroutine() {
	if r.goroutineID == 0 {
		return
	}
	if id := currentGoroutineID(); id != r.goroutineID {
		panic("swap: LocalReader used from a different goroutine than the one that first pinned it (smrswap_debug)")
	}
}
