package larch

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Container defines the interface for the dependency injection container.
// Use [New] to create an instance.
//
// Registration is meant for a single-threaded configuration phase that
// happens before resolution begins; Resolve and Validate are safe for
// concurrent use.
type Container interface {
	// RegisterTransient binds a contract to a constructor with [Transient]
	// lifetime: a new instance per resolution. The constructor must have the
	// signature func(deps...) T or func(deps...) (T, error); its first return
	// type is the contract. Registering an already-bound contract replaces
	// the previous registration.
	RegisterTransient(constructor any, opts ...Option) error

	// RegisterSingleton binds a contract to a constructor with [Singleton]
	// lifetime: the constructor runs at most once, on first resolution, and
	// the instance is shared afterwards.
	RegisterSingleton(constructor any, opts ...Option) error

	// RegisterInstance binds a contract to a pre-built value. The value is
	// returned as-is by every resolution, regardless of lifetime. The
	// contract is the value's type unless overridden with [AsContract].
	RegisterInstance(instance any, opts ...Option) error

	// Resolve returns the value for the given contract, recursively
	// constructing its dependencies. Prefer the generic [Resolve] helper
	// over calling this method directly.
	Resolve(t reflect.Type) (reflect.Value, error)

	// Validate walks the full dependency graph without constructing
	// anything and reports every missing registration and cycle in one
	// aggregated error. Resolution does not require a prior Validate.
	Validate() error
}

type container struct {
	reg *registry
	log *zap.Logger
}

// New creates an empty [Container] ready for registration.
func New(opts ...ContainerOption) Container {
	c := &container{
		reg: newRegistry(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *container) RegisterTransient(constructor any, opts ...Option) error {
	return c.register(constructor, Transient, opts)
}

func (c *container) RegisterSingleton(constructor any, opts ...Option) error {
	return c.register(constructor, Singleton, opts)
}

func (c *container) register(constructor any, lifetime Lifetime, opts []Option) error {
	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}

	candidates := make([]reflect.Value, 0, 1+len(reg.candidates))
	candidates = append(candidates, reflect.ValueOf(constructor))
	for _, cand := range reg.candidates {
		candidates = append(candidates, reflect.ValueOf(cand))
	}

	p, contract, err := selectPlan(candidates)
	if err != nil {
		return err
	}

	if reg.contract != nil {
		contract, err = overrideContract(contract, reg.contract)
		if err != nil {
			return err
		}
	}

	defaults, err := buildDefaults(reg.defaults)
	if err != nil {
		return err
	}

	c.reg.register(&descriptor{
		contract: contract,
		lifetime: lifetime,
		plan:     p,
		defaults: defaults,
	})

	c.log.Debug("registered constructor",
		zap.Stringer("contract", contract),
		zap.Stringer("lifetime", lifetime),
		zap.Int("dependencies", len(p.params)),
	)
	return nil
}

func (c *container) RegisterInstance(instance any, opts ...Option) error {
	if instance == nil {
		return errors.New("instance cannot be nil")
	}

	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}
	if len(reg.candidates) > 0 || len(reg.defaults) > 0 {
		return errors.New("WithCandidates and WithDefaults do not apply to instance registrations")
	}

	val := reflect.ValueOf(instance)
	contract := val.Type()

	if reg.contract != nil {
		var err error
		contract, err = overrideContract(contract, reg.contract)
		if err != nil {
			return err
		}
	}

	c.reg.register(&descriptor{
		contract: contract,
		lifetime: Singleton,
		value:    val,
		prebuilt: true,
	})

	c.log.Debug("registered instance", zap.Stringer("contract", contract))
	return nil
}

// overrideContract resolves an [AsContract] argument — a nil pointer to an
// interface — and checks the natural contract satisfies it.
func overrideContract(natural reflect.Type, iface any) (reflect.Type, error) {
	target := reflect.TypeOf(iface)
	if target == nil || target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Interface {
		return nil, errors.New("AsContract requires a nil pointer to an interface, e.g. (*Store)(nil)")
	}

	contract := target.Elem()
	if !natural.AssignableTo(contract) {
		return nil, fmt.Errorf("%s does not implement %s", natural, contract)
	}
	return contract, nil
}

func buildDefaults(values []any) (map[reflect.Type]reflect.Value, error) {
	if len(values) == 0 {
		return nil, nil
	}

	defaults := make(map[reflect.Type]reflect.Value, len(values))
	for _, v := range values {
		if v == nil {
			return nil, errors.New("default value cannot be nil")
		}
		val := reflect.ValueOf(v)
		if _, dup := defaults[val.Type()]; dup {
			return nil, fmt.Errorf("duplicate default for %s", val.Type())
		}
		defaults[val.Type()] = val
	}
	return defaults, nil
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

type walkState int

const (
	unvisited walkState = iota
	visiting
	visited
)

func (c *container) Validate() error {
	roots := c.reg.contracts()
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].String() < roots[j].String()
	})

	states := make(map[reflect.Type]walkState)
	var errs []error
	for _, t := range roots {
		c.walk(t, states, nil, &errs)
	}

	return multierr.Combine(errs...)
}

// walk checks one contract's subgraph depth-first, collecting every problem
// instead of stopping at the first.
func (c *container) walk(t reflect.Type, states map[reflect.Type]walkState, stack []reflect.Type, errs *[]error) {
	switch states[t] {
	case visiting:
		*errs = append(*errs, cycleError(stack, t))
		return
	case visited:
		return
	}

	d, ok := c.reg.lookup(t)
	if !ok {
		// Only reachable for roots; missing dependencies are reported by
		// the caller with their dependent attached.
		*errs = append(*errs, fmt.Errorf("%w: %s", ErrNotRegistered, t))
		return
	}

	states[t] = visiting
	stack = append(stack, t)

	if !d.prebuilt {
		for _, dep := range d.plan.params {
			if _, registered := c.reg.lookup(dep); !registered {
				if _, hasDefault := d.defaultFor(dep); !hasDefault {
					*errs = append(*errs, fmt.Errorf("%w: %s (dependency of %s)", ErrNotRegistered, dep, t))
				}
				continue
			}
			c.walk(dep, states, stack, errs)
		}
	}

	states[t] = visited
}

// cycleError renders the full chain, e.g. "A -> B -> A".
func cycleError(stack []reflect.Type, t reflect.Type) error {
	chain := make([]string, 0, len(stack)+1)
	for _, s := range stack {
		chain = append(chain, s.String())
	}
	chain = append(chain, t.String())

	return fmt.Errorf("%w: %s", ErrCircularDependency, strings.Join(chain, " -> "))
}
