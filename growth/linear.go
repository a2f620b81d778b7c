package growth

type LinearPolicy struct {
	step    int
	minimum int
}

var _ Policy = (*LinearPolicy)(nil)

// Linear returns a policy that grows the buffer by the smallest multiple of step that makes room
// for the required items.
func Linear(step int) *LinearPolicy {
	if step < 1 {
		panic("step can't be < 1")
	}
	return &LinearPolicy{
		step:    step,
		minimum: 1,
	}
}

func (p *LinearPolicy) WithMinimum(minimum int) *LinearPolicy {
	if minimum < 1 {
		panic("minimum can't be < 1")
	}
	p.minimum = minimum
	return p
}

func (p *LinearPolicy) Next(capacity, required int) int {
	next := capacity
	if next < required {
		steps := (required - next + p.step - 1) / p.step
		next += steps * p.step
	}
	return max(next, required, p.minimum)
}
