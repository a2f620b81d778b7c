// This package contains the main [Policy] interface and several implementations.
package growth

// Policy decides how large the storage buffer of a stack becomes when it runs out of room.
//
// Implementations must be deterministic and are not considered thread-safe.
type Policy interface {
	// Next returns the capacity of the new buffer.
	//
	// The capacity is the length of the buffer that is being replaced and required is the
	// minimum number of slots the new buffer must provide. The result must be >= required.
	// Results below required are raised to required by the stack.
	Next(capacity, required int) int
}

// PolicyFunc is an adapter to allow the use of ordinary functions as a [Policy].
type PolicyFunc func(capacity, required int) int

var _ Policy = PolicyFunc(nil)

func (f PolicyFunc) Next(capacity, required int) int {
	return f(capacity, required)
}

// Default returns the policy used by stacks that weren't configured with another one.
func Default() Policy {
	return Doubling()
}
