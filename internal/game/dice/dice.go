// Package dice provides the randomness abstraction for the fight engine:
// the initiative coin flip, opponent move choice and CPU fighter selection
// all draw from a Source.
package dice

// Source is the randomness provider.
//
// Implementations returned by this package are safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: len(items) > 0; src must be non-nil.
func Pick[T any](src Source, items []T) T {
	if len(items) == 0 {
		panic("dice: Pick called with no items")
	}
	return items[src.Intn(len(items))]
}
