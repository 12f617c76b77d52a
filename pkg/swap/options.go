package swap

import "smrswap/pkg/reclaim"

// Options configures a Container at construction time. The zero value
// selects WritePreferred with auto-collection disabled; DefaultOptions
// adds threshold-based auto-collection, mirroring the teacher's
// DefaultNodeConfig/NewCowBTreeWithConfig split.
type Options struct {
	// Strategy selects which side of the reader/writer pair pays for the
	// pin/publish memory-ordering barrier. See reclaim.Strategy.
	Strategy reclaim.Strategy

	// AutoCollect controls when a Store, Update, UpdateAndFetch or
	// FetchAndUpdate implicitly triggers a Collect after retiring the
	// value it displaced. Swap retires nothing and never triggers one.
	AutoCollect reclaim.AutoCollectPolicy
}

// DefaultOptions returns write-preferred publication with threshold-based
// auto-collection, the combination recommended for the common case of
// infrequent writes and many short-lived pins.
func DefaultOptions() Options {
	return Options{
		Strategy:    reclaim.WritePreferred,
		AutoCollect: reclaim.AutoCollectThreshold(reclaim.DefaultAutoCollectThreshold),
	}
}
