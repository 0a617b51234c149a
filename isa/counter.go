package isa

import "sync/atomic"

// Counter issues unique, strictly increasing instruction IDs. One
// Counter is owned by one linking session. Issuance is atomic so that a
// session may parse independent kernel invocations from multiple
// goroutines; within a single stream, construction order still fixes ID
// order because streams are parsed sequentially.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a counter whose first issued ID is 0.
func NewCounter() *Counter {
	return &Counter{}
}

// Next issues the next ID. IDs are never reused or reset for the
// lifetime of the counter.
func (c *Counter) Next() int {
	return int(c.n.Add(1) - 1)
}
