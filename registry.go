package larch

import (
	"reflect"
	"sync"
)

// registry maps contract identities to their current descriptor. Writes are
// expected only during the configuration phase, but the structure stays
// thread-safe throughout so a late registration cannot corrupt concurrent
// readers.
type registry struct {
	mu          sync.RWMutex
	descriptors map[reflect.Type]*descriptor
}

func newRegistry() *registry {
	return &registry{descriptors: make(map[reflect.Type]*descriptor)}
}

// register inserts or replaces the descriptor for its contract. Last
// registration wins; the previous descriptor is abandoned whole, cached
// singleton included.
func (r *registry) register(d *descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[d.contract] = d
}

func (r *registry) lookup(t reflect.Type) (*descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[t]
	return d, ok
}

// contracts returns a snapshot of all registered contracts.
func (r *registry) contracts() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.descriptors))
	for t := range r.descriptors {
		out = append(out, t)
	}
	return out
}
