package ticker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Handler runs once per tick.
type Handler func(context.Context)

// Config tunes ticker behaviour.
type Config struct {
	Interval time.Duration
	Logger   *zap.Logger
}

// Ticker drives a handler at a fixed cadence. The status loop runs at 1 Hz;
// each invocation is expected to be cheap and idempotent, so a missed tick is
// simply superseded by the next one.
type Ticker struct {
	name     string
	handler  Handler
	interval time.Duration
	logger   *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// New builds a ticker with the provided handler.
func New(name string, handler Handler, cfg Config) *Ticker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Ticker{
		name:     name,
		handler:  handler,
		interval: cfg.Interval,
		logger:   cfg.Logger,
	}
}

// Start begins ticking. Safe to call once; subsequent calls are no-ops.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return
	}
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go t.run()
	t.started = true
	t.logger.Sugar().Infow("ticker started", "ticker", t.name, "interval", t.interval)
}

// Stop cancels the loop and waits for it to exit.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.cancel()
	t.mu.Unlock()
	t.wg.Wait()
	t.logger.Sugar().Infow("ticker stopped", "ticker", t.name)
}

func (t *Ticker) run() {
	defer t.wg.Done()

	// Fire immediately so the display is populated before the first interval
	// elapses.
	t.handler(t.ctx)

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-tick.C:
			t.handler(t.ctx)
		}
	}
}
