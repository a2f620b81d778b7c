package growth

// ExactPolicy allocates exactly what is required. Every push into a full buffer reallocates, so
// it's only useful as a baseline.
type ExactPolicy struct{}

var _ Policy = (*ExactPolicy)(nil)

func Exact() *ExactPolicy {
	return &ExactPolicy{}
}

func (p *ExactPolicy) Next(capacity, required int) int {
	return max(required, 1)
}
