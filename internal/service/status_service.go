package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/apaulliao/classboard-api/internal/models"
	"github.com/apaulliao/classboard-api/pkg/clock"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
)

const snapshotCacheKey = "board:snapshot:latest"

type boardStore interface {
	ListSlots(ctx context.Context) ([]models.TimeSlot, error)
	ListDayTypes(ctx context.Context) (models.DayTypeMap, error)
}

type overrideSource interface {
	Flags() models.OverrideFlags
}

// StatusServiceConfig tunes snapshot caching.
type StatusServiceConfig struct {
	SnapshotCacheTTL time.Duration
}

// StatusService drives the classroom display. Once per tick it evaluates the
// engine against the cached effective slots and the current override flags,
// and publishes the resulting snapshot. Effective slots are recomputed only
// when the date changes or the schedule is edited, never on every tick.
type StatusService struct {
	store     boardStore
	resolver  *ResolverService
	engine    *StatusEngine
	overrides overrideSource
	clock     *clock.Offset
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       StatusServiceConfig

	mu            sync.RWMutex
	effective     []models.TimeSlot
	effectiveDate string
	loaded        bool
	stale         bool
	latest        models.StatusSnapshot
}

// StatusServiceParams groups constructor dependencies.
type StatusServiceParams struct {
	Store     boardStore
	Resolver  *ResolverService
	Engine    *StatusEngine
	Overrides overrideSource
	Clock     *clock.Offset
	Cache     *CacheService
	Metrics   *MetricsService
	Logger    *zap.Logger
	Config    StatusServiceConfig
}

// NewStatusService constructs a StatusService.
func NewStatusService(params StatusServiceParams) *StatusService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := params.Config
	if cfg.SnapshotCacheTTL <= 0 {
		cfg.SnapshotCacheTTL = 5 * time.Second
	}
	svcClock := params.Clock
	if svcClock == nil {
		svcClock = clock.NewOffset(nil)
	}
	resolver := params.Resolver
	if resolver == nil {
		resolver = NewResolverService(ResolverConfig{}, logger)
	}
	engine := params.Engine
	if engine == nil {
		engine = NewStatusEngine(EngineConfig{})
	}
	return &StatusService{
		store:     params.Store,
		resolver:  resolver,
		engine:    engine,
		overrides: params.Overrides,
		clock:     svcClock,
		cache:     params.Cache,
		metrics:   params.Metrics,
		logger:    logger,
		cfg:       cfg,
		latest:    models.StatusSnapshot{Mode: models.ModeLoading},
	}
}

// Tick performs one evaluation at the clock's current instant and publishes
// the snapshot. It never fails: before the schedule store has been read
// successfully the snapshot stays in Loading mode.
func (s *StatusService) Tick(ctx context.Context) models.StatusSnapshot {
	now := s.clock.Now()

	slots, ok := s.effectiveSlots(ctx, now)
	var snap models.StatusSnapshot
	if !ok {
		snap = models.StatusSnapshot{At: now, Mode: models.ModeLoading}
	} else {
		var flags models.OverrideFlags
		if s.overrides != nil {
			flags = s.overrides.Flags()
		}
		start := time.Now()
		snap = s.engine.Evaluate(now, slots, flags)
		if s.metrics != nil {
			s.metrics.RecordEvaluation(snap, time.Since(start))
		}
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, snapshotCacheKey, snap, s.cfg.SnapshotCacheTTL)
	}
	return snap
}

// Current returns the most recently published snapshot.
func (s *StatusService) Current() models.StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Preview evaluates the engine for an arbitrary instant without touching the
// published snapshot or the clock. It always reads the store fresh so a
// preview reflects the latest edits.
func (s *StatusService) Preview(ctx context.Context, at time.Time) (models.StatusSnapshot, error) {
	slots, err := s.DaySlots(ctx, at)
	if err != nil {
		return models.StatusSnapshot{}, err
	}
	var flags models.OverrideFlags
	if s.overrides != nil {
		flags = s.overrides.Flags()
	}
	return s.engine.Evaluate(at, slots, flags), nil
}

// DaySlots resolves the effective slot list for the date of the given
// instant, reading the store fresh.
func (s *StatusService) DaySlots(ctx context.Context, at time.Time) ([]models.TimeSlot, error) {
	raw, dayTypes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	weekday := at.Weekday()
	return s.resolver.Resolve(weekday, raw, dayTypes.ForWeekday(weekday)), nil
}

// SetClockOffset shifts what the board considers "now". The change applies
// from the next tick; already-published snapshots are left alone.
func (s *StatusService) SetClockOffset(offset time.Duration) {
	s.clock.SetOffset(offset)
	s.Refresh()
	s.logger.Info("clock offset set", zap.Duration("offset", offset))
}

// ClockOffset reports the currently applied offset.
func (s *StatusService) ClockOffset() time.Duration {
	return s.clock.Offset()
}

// Refresh drops the cached effective slots so the next tick recomputes them.
// Called after schedule or day-type edits.
func (s *StatusService) Refresh() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *StatusService) effectiveSlots(ctx context.Context, now time.Time) ([]models.TimeSlot, bool) {
	date := now.Format("2006-01-02")

	s.mu.RLock()
	if s.loaded && !s.stale && s.effectiveDate == date {
		slots := s.effective
		s.mu.RUnlock()
		return slots, true
	}
	s.mu.RUnlock()

	raw, dayTypes, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("schedule load failed", zap.Error(err))
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.loaded {
			// Keep showing the last known schedule rather than blanking the
			// display over a transient store failure.
			return s.effective, true
		}
		return nil, false
	}

	weekday := now.Weekday()
	effective := s.resolver.Resolve(weekday, raw, dayTypes.ForWeekday(weekday))

	s.mu.Lock()
	s.effective = effective
	s.effectiveDate = date
	s.loaded = true
	s.stale = false
	s.mu.Unlock()
	return effective, true
}

func (s *StatusService) load(ctx context.Context) ([]models.TimeSlot, models.DayTypeMap, error) {
	if s.store == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInternal, "schedule store unavailable")
	}
	raw, err := s.store.ListSlots(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slots")
	}
	dayTypes, err := s.store.ListDayTypes(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load day types")
	}
	return raw, dayTypes, nil
}
