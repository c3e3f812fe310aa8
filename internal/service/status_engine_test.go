package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apaulliao/classboard-api/internal/models"
)

func at(hhmmss string) time.Time {
	tod := models.MustTimeOfDay(hhmmss)
	return time.Date(2026, 3, 4, tod.Seconds()/3600, tod.Seconds()%3600/60, tod.Seconds()%60, 0, time.UTC)
}

func morningSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: "p1", Name: "Period 1", Start: models.MustTimeOfDay("08:00"), End: models.MustTimeOfDay("08:40"), Kind: models.SlotKindClass},
		{ID: "break1", Name: "Break", Start: models.MustTimeOfDay("08:40"), End: models.MustTimeOfDay("08:50"), Kind: models.SlotKindBreak},
		{ID: "p2", Name: "Period 2", Start: models.MustTimeOfDay("08:50"), End: models.MustTimeOfDay("09:30"), Kind: models.SlotKindClass},
	}
}

func TestEvaluateExclusiveSpecialPreemptsEverything(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	special := &models.SpecialStatus{Submode: models.SubmodeExclusive}

	for _, now := range []time.Time{at("08:05:00"), at("08:41:00"), at("23:00:00")} {
		snap := engine.Evaluate(now, morningSlots(), models.OverrideFlags{ManualEco: true, Special: special})
		assert.Equal(t, models.ModeSpecial, snap.Mode)
		assert.Nil(t, snap.CurrentSlot)
		assert.Nil(t, snap.NextSlot)
		assert.Zero(t, snap.SecondsRemaining)
		assert.Zero(t, snap.TotalSeconds)
		assert.Zero(t, snap.ProgressPercent)
	}
}

func TestEvaluateMarqueeDoesNotSuppressSchedule(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	special := &models.SpecialStatus{Submode: models.SubmodeMarquee}

	snap := engine.Evaluate(at("08:41:30"), morningSlots(), models.OverrideFlags{Special: special})
	assert.Equal(t, models.ModeBreak, snap.Mode)
	require.NotNil(t, snap.CurrentSlot)
	assert.Equal(t, "break1", snap.CurrentSlot.ID)
	// The overlay still rides along for the presentation layer to composite.
	require.NotNil(t, snap.Special)
	assert.Equal(t, models.SubmodeMarquee, snap.Special.Submode)
}

func TestEvaluateManualEcoWinsOverSchedule(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	for _, now := range []time.Time{at("08:05:00"), at("12:00:00")} {
		snap := engine.Evaluate(now, morningSlots(), models.OverrideFlags{ManualEco: true})
		assert.Equal(t, models.ModeEco, snap.Mode)
		assert.Nil(t, snap.CurrentSlot)
	}
}

func TestEvaluateClassAutoEco(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	slots := morningSlots()

	snap := engine.Evaluate(at("08:02:00"), slots, models.OverrideFlags{})
	assert.Equal(t, models.ModeClass, snap.Mode)

	snap = engine.Evaluate(at("08:03:01"), slots, models.OverrideFlags{})
	assert.Equal(t, models.ModeEco, snap.Mode)
	require.NotNil(t, snap.CurrentSlot, "eco view keeps the slot for context")
	assert.Equal(t, "p1", snap.CurrentSlot.ID)
	assert.Zero(t, snap.SecondsRemaining)

	snap = engine.Evaluate(at("08:03:01"), slots, models.OverrideFlags{AutoEcoOverride: true})
	assert.Equal(t, models.ModeClass, snap.Mode)
}

func TestEvaluateClassLooksAheadToNextClass(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	snap := engine.Evaluate(at("08:01:00"), morningSlots(), models.OverrideFlags{})
	assert.Equal(t, models.ModeClass, snap.Mode)
	require.NotNil(t, snap.NextSlot)
	assert.Equal(t, "p2", snap.NextSlot.ID, "lookahead skips the break in between")
}

func TestEvaluateBreakCountdownAndPreBell(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	slots := []models.TimeSlot{
		{ID: "b", Name: "Break", Start: models.MustTimeOfDay("10:00"), End: models.MustTimeOfDay("10:10"), Kind: models.SlotKindBreak},
	}

	snap := engine.Evaluate(at("10:08:59"), slots, models.OverrideFlags{})
	assert.Equal(t, models.ModeBreak, snap.Mode)
	assert.Equal(t, 61, snap.SecondsRemaining)

	snap = engine.Evaluate(at("10:09:05"), slots, models.OverrideFlags{})
	assert.Equal(t, models.ModePreBell, snap.Mode)
	assert.Equal(t, 55, snap.SecondsRemaining)
}

func TestEvaluateBreakProgressStrictlyDecreases(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	slots := []models.TimeSlot{
		{ID: "b", Name: "Break", Start: models.MustTimeOfDay("10:00"), End: models.MustTimeOfDay("10:10"), Kind: models.SlotKindBreak},
	}

	prev := 101.0
	for _, instant := range []string{"10:00:00", "10:02:30", "10:05:00", "10:07:45", "10:09:59"} {
		snap := engine.Evaluate(at(instant), slots, models.OverrideFlags{})
		assert.Less(t, snap.ProgressPercent, prev, "progress at %s", instant)
		assert.GreaterOrEqual(t, snap.ProgressPercent, 0.0)
		assert.LessOrEqual(t, snap.ProgressPercent, 100.0)
		prev = snap.ProgressPercent
	}
}

func TestEvaluateBoundaryBelongsToStartingSlot(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	slots := []models.TimeSlot{
		{ID: "p1", Name: "Period 1", Start: models.MustTimeOfDay("08:00"), End: models.MustTimeOfDay("08:45"), Kind: models.SlotKindClass},
	}

	snap := engine.Evaluate(at("08:00:00"), slots, models.OverrideFlags{})
	require.NotNil(t, snap.CurrentSlot)
	assert.Equal(t, "p1", snap.CurrentSlot.ID)

	snap = engine.Evaluate(at("08:45:00"), slots, models.OverrideFlags{})
	assert.Nil(t, snap.CurrentSlot)
	assert.Equal(t, models.ModeOffHours, snap.Mode)
}

func TestEvaluateEmptySlotsIsOffHours(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	for _, now := range []time.Time{at("00:00:00"), at("08:30:00"), at("23:59:59")} {
		snap := engine.Evaluate(now, nil, models.OverrideFlags{})
		assert.Equal(t, models.ModeOffHours, snap.Mode)
		assert.Nil(t, snap.CurrentSlot)
		assert.Nil(t, snap.NextSlot)
		assert.Zero(t, snap.SecondsRemaining)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	flags := models.OverrideFlags{Special: &models.SpecialStatus{Submode: models.SubmodeMarquee}}

	first := engine.Evaluate(at("08:41:30"), morningSlots(), flags)
	second := engine.Evaluate(at("08:41:30"), morningSlots(), flags)
	assert.Equal(t, first, second)
}

func TestEvaluateBreakEndToEnd(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	snap := engine.Evaluate(at("08:41:30"), morningSlots(), models.OverrideFlags{})

	assert.Equal(t, models.ModeBreak, snap.Mode)
	require.NotNil(t, snap.CurrentSlot)
	assert.Equal(t, "break1", snap.CurrentSlot.ID)
	require.NotNil(t, snap.NextSlot)
	assert.Equal(t, "p2", snap.NextSlot.ID)
	assert.Equal(t, 510, snap.SecondsRemaining)
	assert.Equal(t, 600, snap.TotalSeconds)
	assert.InDelta(t, 85.0, snap.ProgressPercent, 0.0001)
}

func TestEvaluateContradictoryFlagsResolveByRuleOrder(t *testing.T) {
	engine := NewStatusEngine(EngineConfig{})
	snap := engine.Evaluate(at("08:02:00"), morningSlots(), models.OverrideFlags{ManualEco: true, AutoEcoOverride: true})
	assert.Equal(t, models.ModeEco, snap.Mode)
}
