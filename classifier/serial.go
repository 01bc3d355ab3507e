package classifier

import "sync/atomic"

// IDSource hands out classifier serial numbers.
// Implementations must never return the same value twice.
type IDSource interface {
	Next() uint64
}

// Counter is a monotonically increasing IDSource starting at 1.
// It is safe for concurrent use, so several populations may share one.
type Counter struct {
	n atomic.Uint64
}

// NewCounter returns a counter whose first serial is start+1.
func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.n.Store(start)
	return c
}

// Next implements IDSource.
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}

// Last returns the most recently issued serial, or the start value.
func (c *Counter) Last() uint64 {
	return c.n.Load()
}
