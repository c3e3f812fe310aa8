package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apaulliao/classboard-api/internal/models"
	"github.com/apaulliao/classboard-api/pkg/clock"
)

type boardStoreStub struct {
	slots     []models.TimeSlot
	dayTypes  models.DayTypeMap
	err       error
	listCalls int64
}

func (s *boardStoreStub) ListSlots(ctx context.Context) ([]models.TimeSlot, error) {
	atomic.AddInt64(&s.listCalls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return s.slots, nil
}

func (s *boardStoreStub) ListDayTypes(ctx context.Context) (models.DayTypeMap, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dayTypes, nil
}

func newStatusFixture(store *boardStoreStub, base time.Time) (*StatusService, *clock.Offset, *OverrideService) {
	offset := clock.NewOffset(clock.NewManual(base))
	overrides := NewOverrideService(nil)
	svc := NewStatusService(StatusServiceParams{
		Store:     store,
		Overrides: overrides,
		Clock:     offset,
	})
	return svc, offset, overrides
}

func TestStatusServiceStartsInLoadingMode(t *testing.T) {
	svc, _, _ := newStatusFixture(&boardStoreStub{}, time.Time{})
	assert.Equal(t, models.ModeLoading, svc.Current().Mode)
}

func TestStatusServiceTickPublishesSnapshot(t *testing.T) {
	// Wednesday morning, inside period 1.
	base := time.Date(2026, 3, 4, 8, 2, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, _, _ := newStatusFixture(store, base)

	snap := svc.Tick(context.Background())
	assert.Equal(t, models.ModeClass, snap.Mode)
	require.NotNil(t, snap.CurrentSlot)
	assert.Equal(t, "p1", snap.CurrentSlot.ID)
	assert.Equal(t, snap, svc.Current())
}

func TestStatusServiceReusesEffectiveSlotsAcrossTicks(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, offset, _ := newStatusFixture(store, base)

	svc.Tick(context.Background())
	offset.Shift(time.Second)
	svc.Tick(context.Background())
	offset.Shift(time.Second)
	svc.Tick(context.Background())

	assert.Equal(t, int64(1), atomic.LoadInt64(&store.listCalls),
		"store is read once until the date changes or the schedule is refreshed")
}

func TestStatusServiceRefreshForcesRecompute(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 2, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, _, _ := newStatusFixture(store, base)

	svc.Tick(context.Background())
	store.slots = nil
	svc.Refresh()

	snap := svc.Tick(context.Background())
	assert.Equal(t, models.ModeOffHours, snap.Mode)
	assert.Equal(t, int64(2), atomic.LoadInt64(&store.listCalls))
}

func TestStatusServiceRecomputesWhenDateChanges(t *testing.T) {
	base := time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, offset, _ := newStatusFixture(store, base)

	svc.Tick(context.Background())
	offset.Shift(2 * time.Second)
	svc.Tick(context.Background())

	assert.Equal(t, int64(2), atomic.LoadInt64(&store.listCalls))
}

func TestStatusServiceOffsetAppliesOnNextTick(t *testing.T) {
	base := time.Date(2026, 3, 4, 7, 0, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, _, _ := newStatusFixture(store, base)

	snap := svc.Tick(context.Background())
	assert.Equal(t, models.ModeOffHours, snap.Mode)

	svc.SetClockOffset(time.Hour + 2*time.Minute)
	snap = svc.Tick(context.Background())
	assert.Equal(t, models.ModeClass, snap.Mode)
	assert.Equal(t, time.Hour+2*time.Minute, svc.ClockOffset())
}

func TestStatusServiceHalfDayWednesday(t *testing.T) {
	base := time.Date(2026, 3, 4, 13, 25, 0, 0, time.UTC)
	store := &boardStoreStub{
		slots:    standardDay(),
		dayTypes: models.DayTypeMap{time.Wednesday: models.DayTypeHalf},
	}
	svc, _, _ := newStatusFixture(store, base)

	snap := svc.Tick(context.Background())
	assert.Equal(t, models.ModeBreak, snap.Mode)
	require.NotNil(t, snap.CurrentSlot)
	assert.Equal(t, "after", snap.CurrentSlot.ID)
	assert.Equal(t, "Dismissal", snap.CurrentSlot.Name)
}

func TestStatusServiceOverridesReadEachTick(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 2, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, _, overrides := newStatusFixture(store, base)

	assert.Equal(t, models.ModeClass, svc.Tick(context.Background()).Mode)

	overrides.SetManualEco(true)
	assert.Equal(t, models.ModeEco, svc.Tick(context.Background()).Mode)

	overrides.SetManualEco(false)
	_, err := overrides.SetSpecial(models.SubmodeExclusive, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ModeSpecial, svc.Tick(context.Background()).Mode)
}

func TestStatusServiceKeepsLastScheduleOnStoreFailure(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 2, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, _, _ := newStatusFixture(store, base)

	svc.Tick(context.Background())
	store.err = assert.AnError
	svc.Refresh()

	snap := svc.Tick(context.Background())
	assert.Equal(t, models.ModeClass, snap.Mode, "last known schedule outlives a transient store failure")
}

func TestStatusServiceLoadingUntilFirstSuccessfulLoad(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 2, 0, 0, time.UTC)
	store := &boardStoreStub{err: assert.AnError}
	svc, _, _ := newStatusFixture(store, base)

	snap := svc.Tick(context.Background())
	assert.Equal(t, models.ModeLoading, snap.Mode)
}

func TestStatusServicePreviewDoesNotTouchPublishedSnapshot(t *testing.T) {
	base := time.Date(2026, 3, 4, 8, 2, 0, 0, time.UTC)
	store := &boardStoreStub{slots: morningSlots()}
	svc, _, _ := newStatusFixture(store, base)

	svc.Tick(context.Background())
	preview, err := svc.Preview(context.Background(), time.Date(2026, 3, 4, 8, 41, 30, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, models.ModeBreak, preview.Mode)

	assert.Equal(t, models.ModeClass, svc.Current().Mode)
}
