// Package larch provides a lightweight, reflection-based dependency
// injection container for Go.
//
// Larch binds service contracts (types, usually interfaces) to constructor
// functions or pre-built values, then assembles full object graphs on
// demand. Singletons are constructed lazily, exactly once, even under
// concurrent resolution; transients are constructed fresh on every call.
//
// # Quick Start
//
//	c := larch.New()
//	c.RegisterSingleton(NewLogger)
//	c.RegisterTransient(NewHandler)
//
//	h, err := larch.Resolve[*Handler](c)
//
// # Lifetimes
//
// [Singleton] — one shared instance per container, built on first
// resolution and reused by every later one.
//
// [Transient] — a fresh instance on every resolution.
//
// Pre-built values registered with [Container.RegisterInstance] behave like
// singletons regardless of lifetime.
//
// # Contracts
//
// A constructor's first return type is its contract. Returning an interface
// registers the interface itself:
//
//	c.RegisterSingleton(func(cfg *Config) Store { return newPgStore(cfg) })
//	s, _ := larch.Resolve[Store](c)
//
// Pre-built values can be bound to an interface contract explicitly:
//
//	c.RegisterInstance(&pgStore{}, larch.AsContract((*Store)(nil)))
//
// # Re-registration
//
// Registering a contract again replaces the previous registration entirely,
// including any cached singleton instance. Later resolutions only ever see
// the most recent registration.
//
// # Optional Dependencies
//
// A constructor parameter may carry a declared default, used when no
// registration exists for its contract:
//
//	c.RegisterTransient(NewServer, larch.WithDefaults(DefaultTimeouts))
package larch
