package larch

import (
	"go.uber.org/zap"
)

// registration collects per-registration settings before the descriptor is
// built.
type registration struct {
	candidates []any
	defaults   []any
	contract   any
}

// Option configures a single registration.
type Option func(*registration)

// WithCandidates supplies additional construction signatures for the same
// contract. The container deterministically selects the candidate with the
// greatest number of parameters; ties keep the earlier candidate.
func WithCandidates(constructors ...any) Option {
	return func(r *registration) {
		r.candidates = append(r.candidates, constructors...)
	}
}

// WithDefaults declares fallback values for optional dependencies. A
// constructor parameter whose type matches a declared value binds that value
// when no registration exists for its contract; if the contract is
// registered, normal resolution applies and any failure propagates.
func WithDefaults(values ...any) Option {
	return func(r *registration) {
		r.defaults = append(r.defaults, values...)
	}
}

// AsContract binds the registration to an explicit interface contract
// instead of the constructor's (or value's) natural type. The argument is a
// nil pointer to the interface:
//
//	c.RegisterInstance(&pgStore{}, larch.AsContract((*Store)(nil)))
func AsContract(iface any) Option {
	return func(r *registration) {
		r.contract = iface
	}
}

// ContainerOption configures a [Container] at construction time.
type ContainerOption func(*container)

// WithLogger sets the logger the container uses to emit registration and
// construction events at debug level. The default is a no-op logger.
func WithLogger(l *zap.Logger) ContainerOption {
	return func(c *container) {
		if l != nil {
			c.log = l
		}
	}
}
