package types

// Fetched carries the value produced by a component that absorbs its own
// upstream faults. When Degraded is true, Value holds the component's
// documented default and Cause records what went wrong.
type Fetched[T any] struct {
	Value    T
	Degraded bool
	Cause    error
}

// Success wraps a value obtained from the upstream.
func Success[T any](v T) Fetched[T] {
	return Fetched[T]{Value: v}
}

// Degrade wraps a default value returned in place of a failed upstream call.
func Degrade[T any](fallback T, cause error) Fetched[T] {
	return Fetched[T]{Value: fallback, Degraded: true, Cause: cause}
}
