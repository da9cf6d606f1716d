package larch

// Lifetime controls how many instances of a contract the container creates.
type Lifetime int

const (
	// Transient means a new instance is constructed on every
	// [Container.Resolve] call.
	Transient Lifetime = iota

	// Singleton means the constructor runs at most once per container; the
	// resulting instance is cached on first resolution and shared by every
	// subsequent one.
	Singleton
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}
