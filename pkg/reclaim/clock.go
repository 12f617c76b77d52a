package reclaim

import "sync/atomic"

// Version identifies a published snapshot. It is monotonically increasing
// and never reused.
type Version = uint64

// Inactive is the sentinel value denoting "this slot does not currently
// pin anything." It is the maximum representable Version, so it always
// compares greater than any real version.
const Inactive Version = ^Version(0)

// Clock is a process-wide monotonic counter of published versions. It is
// advanced exactly once per writer publication and read by any number of
// readers concurrently.
type Clock struct {
	v atomic.Uint64
}

// Current reads the counter with acquire ordering. The value may be stale
// by the time the caller acts on it; callers only ever need a lower bound.
func (c *Clock) Current() Version {
	return c.v.Load()
}

// Advance performs an atomic fetch-and-add and returns the pre-increment
// value — the version that was "current" immediately before this call.
// The post-increment value becomes the new current version. Only the
// writer calls this.
func (c *Clock) Advance() Version {
	return c.v.Add(1) - 1
}
