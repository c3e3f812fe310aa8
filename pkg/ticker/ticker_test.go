package ticker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerFiresImmediatelyAndRepeats(t *testing.T) {
	var count int64
	tk := New("test", func(context.Context) {
		atomic.AddInt64(&count, 1)
	}, Config{Interval: 10 * time.Millisecond})

	tk.Start(context.Background())
	defer tk.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&count) >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestTickerStopHaltsHandler(t *testing.T) {
	var count int64
	tk := New("test", func(context.Context) {
		atomic.AddInt64(&count, 1)
	}, Config{Interval: 10 * time.Millisecond})

	tk.Start(context.Background())
	tk.Stop()

	settled := atomic.LoadInt64(&count)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt64(&count))
}

func TestTickerStartTwiceIsNoop(t *testing.T) {
	tk := New("test", func(context.Context) {}, Config{Interval: time.Hour})
	tk.Start(context.Background())
	tk.Start(context.Background())
	tk.Stop()
}
