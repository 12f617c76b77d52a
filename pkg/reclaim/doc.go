// Package reclaim implements version-based safe memory reclamation (SMR).
//
// A single writer advances a monotonic VersionClock each time it publishes a
// new value. Readers pin themselves at the version they observe before
// reading, so the writer can compute a safe frontier — the highest version
// at which every retired object is guaranteed unreachable by any live
// reader — and reclaim everything at or below it.
//
// This package has no notion of the value being protected; it only tracks
// versions, reader slots and retired-object callbacks. Package swap
// composes it with an atomically-published Cell to build the full
// single-writer/many-reader container.
package reclaim
