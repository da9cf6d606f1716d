package larch

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------
// Container methods
// ---------------------------------------------------------------------------

func (c *container) Resolve(t reflect.Type) (reflect.Value, error) {
	return c.resolve(t, &resolutionChain{})
}

// resolve is the core algorithm. The chain is scoped to one top-level
// Resolve call and threaded explicitly through the recursion; it is never
// shared across concurrent resolutions.
func (c *container) resolve(t reflect.Type, chain *resolutionChain) (reflect.Value, error) {
	d, ok := c.reg.lookup(t)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotRegistered, t)
	}

	if d.prebuilt {
		return d.value, nil
	}

	// Lock-free fast path: a constructed singleton is returned without
	// touching the construction lock.
	if d.lifetime == Singleton {
		if v, ok := d.instance(); ok {
			return v, nil
		}
	}

	// The cycle check must precede the lock: a chain that revisits a
	// singleton currently under construction by this same chain would
	// otherwise deadlock on its own non-reentrant mutex.
	if chain.contains(t) {
		return reflect.Value{}, cycleError(chain.path, t)
	}
	chain.push(t)
	defer chain.pop()

	if d.lifetime != Singleton {
		return c.construct(d, chain)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Another resolution may have finished construction while this one
	// waited on the lock.
	if v, ok := d.instance(); ok {
		return v, nil
	}

	v, err := c.construct(d, chain)
	if err != nil {
		return reflect.Value{}, err
	}

	d.store(v)
	c.log.Debug("singleton constructed", zap.Stringer("contract", t))
	return v, nil
}

// construct builds one instance from the descriptor's plan, resolving each
// parameter contract in declaration order. A parameter with no registration
// binds its declared default if one exists; otherwise the failure is
// immediate. Nothing is cached on failure.
func (c *container) construct(d *descriptor, chain *resolutionChain) (reflect.Value, error) {
	p := d.plan
	if p == nil {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoConstructor, d.contract)
	}

	args := make([]reflect.Value, len(p.params))
	for i, dep := range p.params {
		if _, registered := c.reg.lookup(dep); !registered {
			if def, ok := d.defaultFor(dep); ok {
				args[i] = def
				continue
			}
			return reflect.Value{}, fmt.Errorf("%w: %s (dependency of %s)", ErrNotRegistered, dep, d.contract)
		}

		v, err := c.resolve(dep, chain)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}

	results := p.ctor.Call(args)
	if p.returns == 2 && !results[1].IsNil() {
		cause := results[1].Interface().(error)
		c.log.Debug("constructor failed",
			zap.Stringer("contract", d.contract),
			zap.Error(cause),
		)
		return reflect.Value{}, fmt.Errorf("%w: %s: %w", ErrInstanceCreation, d.contract, cause)
	}

	return results[0], nil
}

// resolutionChain tracks the contracts currently being resolved within one
// top-level Resolve call, both for O(1) membership checks and for rendering
// the cycle path.
type resolutionChain struct {
	seen map[reflect.Type]struct{}
	path []reflect.Type
}

func (rc *resolutionChain) contains(t reflect.Type) bool {
	_, ok := rc.seen[t]
	return ok
}

func (rc *resolutionChain) push(t reflect.Type) {
	if rc.seen == nil {
		rc.seen = make(map[reflect.Type]struct{})
	}
	rc.seen[t] = struct{}{}
	rc.path = append(rc.path, t)
}

func (rc *resolutionChain) pop() {
	last := rc.path[len(rc.path)-1]
	rc.path = rc.path[:len(rc.path)-1]
	delete(rc.seen, last)
}

// ---------------------------------------------------------------------------
// Generic helpers
// ---------------------------------------------------------------------------

// Resolve is a generic helper that resolves a contract from the container.
// It is the recommended way to retrieve values:
//
//	store, err := larch.Resolve[Store](c)
func Resolve[T any](c Container) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()

	val, err := c.Resolve(t)
	if err != nil {
		return zero, err
	}

	out, ok := val.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("cannot convert %s to %s", val.Type(), t)
	}

	return out, nil
}
