//go:build !smrswap_debug

package swap

// recordGoroutine and checkGoroutine are no-ops outside smrswap_debug
// builds; see debug_smrswap_debug.go for the real check.
func (r *LocalReader[T]) recordGoroutine() {}

func (r *LocalReader[T]) checkGoroutine() {}
