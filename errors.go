package larch

import "errors"

var (
	// ErrNotRegistered is returned when no registration exists for the
	// requested contract, either directly or as a required dependency.
	ErrNotRegistered = errors.New("contract not registered")

	// ErrNoConstructor is returned when a registration carries no usable
	// construction signature.
	ErrNoConstructor = errors.New("no usable constructor")

	// ErrCircularDependency is returned when a resolution chain revisits a
	// contract it is already constructing. The error message includes the
	// full chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrInstanceCreation is returned when a constructor itself fails. The
	// original cause is wrapped and reachable via errors.Is / errors.As.
	ErrInstanceCreation = errors.New("instance creation failed")
)
