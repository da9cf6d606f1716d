package larch

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// descriptor is the registry's record for one contract: either a construction
// plan or a pre-built value, plus the lifetime and, for singletons, the
// construction lock and cache slot.
//
// Descriptors are immutable after registration except for the cache slot,
// which transitions empty -> populated exactly once and never changes again.
// Re-registration swaps the whole descriptor in the registry; an abandoned
// descriptor's cache can never surface through the new registration.
type descriptor struct {
	contract reflect.Type
	lifetime Lifetime

	// Exactly one of plan / value is set.
	plan     *plan
	value    reflect.Value
	prebuilt bool

	// defaults maps a parameter contract to its declared fallback, bound
	// when no registration exists for that contract.
	defaults map[reflect.Type]reflect.Value

	// mu guards first construction of a singleton. cached is published
	// atomically so the hit path never touches the lock.
	mu     sync.Mutex
	cached atomic.Pointer[reflect.Value]
}

// instance returns the cached singleton value, if construction completed.
func (d *descriptor) instance() (reflect.Value, bool) {
	if v := d.cached.Load(); v != nil {
		return *v, true
	}
	return reflect.Value{}, false
}

// store publishes the constructed singleton. Must be called with d.mu held.
func (d *descriptor) store(v reflect.Value) {
	d.cached.Store(&v)
}

// defaultFor returns the declared fallback for a parameter contract.
func (d *descriptor) defaultFor(t reflect.Type) (reflect.Value, bool) {
	v, ok := d.defaults[t]
	return v, ok
}
