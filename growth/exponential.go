package growth

import "math"

type ExponentialPolicy struct {
	base    float64
	minimum int
}

var _ Policy = (*ExponentialPolicy)(nil)

// Doubling returns a policy that allocates twice the required capacity, but at least a single
// slot.
func Doubling() *ExponentialPolicy {
	return Exponential(2)
}

func Exponential(base float64) *ExponentialPolicy {
	if math.IsNaN(base) || base <= 1 {
		panic("base can't be <= 1")
	}
	if math.IsInf(base, 1) {
		panic("base can't be infinite")
	}
	return &ExponentialPolicy{
		base:    base,
		minimum: 1,
	}
}

func (p *ExponentialPolicy) WithMinimum(minimum int) *ExponentialPolicy {
	if minimum < 1 {
		panic("minimum can't be < 1")
	}
	p.minimum = minimum
	return p
}

func (p *ExponentialPolicy) Next(capacity, required int) int {
	next := math.Ceil(float64(required) * p.base)
	if next >= math.MaxInt {
		return math.MaxInt
	}
	return max(int(next), required, p.minimum)
}
