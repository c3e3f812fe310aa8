package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOffsetAppliesToSubsequentReadings(t *testing.T) {
	base := NewManual(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))
	offset := NewOffset(base)

	assert.Equal(t, base.Now(), offset.Now())

	offset.SetOffset(40 * time.Minute)
	assert.Equal(t, time.Date(2026, 3, 4, 12, 40, 0, 0, time.UTC), offset.Now())

	offset.Shift(-10 * time.Minute)
	assert.Equal(t, 30*time.Minute, offset.Offset())
	assert.Equal(t, time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC), offset.Now())
}

func TestOffsetDoesNotMutateEarlierReadings(t *testing.T) {
	base := NewManual(time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC))
	offset := NewOffset(base)

	before := offset.Now()
	offset.SetOffset(2 * time.Hour)

	assert.Equal(t, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), before)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), offset.Now())
}

func TestNewOffsetDefaultsToSystemClock(t *testing.T) {
	offset := NewOffset(nil)
	now := offset.Now()
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestManualAdvance(t *testing.T) {
	m := NewManual(time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC))
	m.Advance(90 * time.Second)
	assert.Equal(t, time.Date(2026, 3, 4, 8, 1, 30, 0, time.UTC), m.Now())
}
