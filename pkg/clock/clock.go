package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant. Injecting it keeps the status engine
// deterministic under test and lets operators preview arbitrary moments.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Manual is a fixed clock for tests. Advance moves it forward explicitly.
type Manual struct {
	mu sync.Mutex
	at time.Time
}

// NewManual builds a manual clock pinned to the given instant.
func NewManual(at time.Time) *Manual {
	return &Manual{at: at}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.at
}

// Advance moves the manual clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.at = m.at.Add(d)
	m.mu.Unlock()
}

// Set pins the manual clock to a new instant.
func (m *Manual) Set(at time.Time) {
	m.mu.Lock()
	m.at = at
	m.mu.Unlock()
}

// Offset wraps a base clock and applies an additive, signed duration to every
// reading. Changing the offset affects subsequent readings only; snapshots
// already taken are never recomputed.
type Offset struct {
	base Clock

	mu     sync.RWMutex
	offset time.Duration
}

// NewOffset wraps base with a zero offset. A nil base falls back to the
// system clock.
func NewOffset(base Clock) *Offset {
	if base == nil {
		base = SystemClock{}
	}
	return &Offset{base: base}
}

func (o *Offset) Now() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.base.Now().Add(o.offset)
}

// SetOffset replaces the current offset.
func (o *Offset) SetOffset(d time.Duration) {
	o.mu.Lock()
	o.offset = d
	o.mu.Unlock()
}

// Shift adds d to the current offset.
func (o *Offset) Shift(d time.Duration) {
	o.mu.Lock()
	o.offset += d
	o.mu.Unlock()
}

// Offset reports the currently applied offset.
func (o *Offset) Offset() time.Duration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.offset
}
