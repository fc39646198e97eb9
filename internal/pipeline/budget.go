package pipeline

import "sync"

// Budget tracks external search calls consumed this run against a daily
// ceiling. It is process-scoped: consumption never carries across runs.
type Budget struct {
	mu    sync.Mutex
	limit int
	used  int
}

// NewBudget creates a Budget with the given daily ceiling.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Remaining returns how many searches may still be issued.
func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.limit - b.used
}

// Consume records n issued searches.
func (b *Budget) Consume(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used += n
}

// Used returns the number of searches consumed so far.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Exhausted reports whether the ceiling has been reached.
func (b *Budget) Exhausted() bool {
	return b.Remaining() <= 0
}
