package simulate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/teenjuna/lifo/growth"
)

var (
	// ErrInvalidPolicy is returned by [ParsePolicy] for unknown or malformed policies.
	ErrInvalidPolicy = errors.New("invalid policy")
)

// NamedPolicy is a growth policy together with the name it's reported under.
type NamedPolicy struct {
	Name   string
	Policy growth.Policy
}

// ParsePolicy parses one of:
//   - doubling
//   - exact
//   - exponential:<base>, base > 1
//   - linear:<step>, step >= 1
func ParsePolicy(value string) (NamedPolicy, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	kind, arg, hasArg := strings.Cut(value, ":")

	invalid := func(reason string) (NamedPolicy, error) {
		return NamedPolicy{}, fmt.Errorf("%w %q: %s", ErrInvalidPolicy, value, reason)
	}

	switch kind {
	case "doubling", "exact":
		if hasArg {
			return invalid("unexpected argument")
		}
		if kind == "exact" {
			return NamedPolicy{Name: value, Policy: growth.Exact()}, nil
		}
		return NamedPolicy{Name: value, Policy: growth.Doubling()}, nil

	case "exponential":
		base, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return invalid("base must be a number")
		}
		if !(base > 1) {
			return invalid("base must be > 1")
		}
		if math.IsInf(base, 1) {
			return invalid("base must be finite")
		}
		return NamedPolicy{Name: value, Policy: growth.Exponential(base)}, nil

	case "linear":
		step, err := strconv.Atoi(arg)
		if err != nil {
			return invalid("step must be an integer")
		}
		if step < 1 {
			return invalid("step must be >= 1")
		}
		return NamedPolicy{Name: value, Policy: growth.Linear(step)}, nil
	}

	return invalid("unknown kind")
}

// ParsePolicies parses every value with [ParsePolicy].
func ParsePolicies(values ...string) ([]NamedPolicy, error) {
	policies := make([]NamedPolicy, 0, len(values))
	for _, value := range values {
		policy, err := ParsePolicy(value)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// counting records the reallocations it's asked for. A stack copies required-1 items into every
// new buffer.
type counting struct {
	policy growth.Policy
	grows  int
	copied int
}

var _ growth.Policy = (*counting)(nil)

func (c *counting) Next(capacity, required int) int {
	c.grows++
	c.copied += required - 1
	return c.policy.Next(capacity, required)
}
