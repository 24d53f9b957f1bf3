// Package identity allocates identities for CV list items. Identities are
// opaque non-empty strings, unique within the lifetime of an allocator,
// and stable once assigned to an item.
package identity

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Allocator produces list-item identities. Implementations must return a
// non-empty string from every call and must never return the same value
// twice, including for calls made in the same instant (bulk import from
// AI parsing allocates many identities back to back).
type Allocator interface {
	NewID() string
}

// Clock is the production allocator. It bases identities on wall-clock
// milliseconds and appends an atomic per-process counter so same-instant
// allocations cannot collide.
type Clock struct {
	counter atomic.Uint64
	now     func() time.Time
}

// NewClock returns a Clock allocator reading the system clock.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewID returns a fresh identity.
func (c *Clock) NewID() string {
	n := c.counter.Add(1)
	return strconv.FormatInt(c.now().UnixMilli(), 10) + "-" + strconv.FormatUint(n, 10)
}

// Sequence is a deterministic allocator for tests: it yields "2", "3",
// "4", ... by default, continuing after the fixed placeholder identity
// "1" used by the default document.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence returns a Sequence allocator whose first NewID call yields
// the decimal representation of start.
func NewSequence(start uint64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// NewID returns the next identity in the sequence.
func (s *Sequence) NewID() string {
	n := s.next.Add(1) - 1
	return strconv.FormatUint(n, 10)
}
