package service

import (
	"time"

	"github.com/apaulliao/classboard-api/internal/models"
)

// EngineConfig tunes the status engine thresholds.
type EngineConfig struct {
	// EcoDelay is how long into a class period the display keeps showing the
	// full view before dimming automatically.
	EcoDelay time.Duration
	// PreBellWindow is the tail of a break treated as the urgent pre-bell
	// state.
	PreBellWindow time.Duration
}

// StatusEngine decides what the classroom display should currently show. It
// is a pure function of its inputs: no hidden state, no side effects, O(n)
// over the effective slots, and it never fails. Rules are priority ordered
// and the first match wins.
type StatusEngine struct {
	cfg EngineConfig
}

// NewStatusEngine constructs a StatusEngine with sane defaults.
func NewStatusEngine(cfg EngineConfig) *StatusEngine {
	if cfg.EcoDelay <= 0 {
		cfg.EcoDelay = 3 * time.Minute
	}
	if cfg.PreBellWindow <= 0 {
		cfg.PreBellWindow = time.Minute
	}
	return &StatusEngine{cfg: cfg}
}

// Evaluate combines the current instant, the effective day slots and the
// override flags into a single snapshot.
//
// An Exclusive special status pre-empts everything. A Marquee special status
// is a non-exclusive overlay: it rides along on the snapshot but must never
// suppress the schedule-driven evaluation below.
func (e *StatusEngine) Evaluate(now time.Time, slots []models.TimeSlot, flags models.OverrideFlags) models.StatusSnapshot {
	snap := models.StatusSnapshot{At: now, Special: flags.Special}

	if flags.Special != nil && flags.Special.Submode == models.SubmodeExclusive {
		snap.Mode = models.ModeSpecial
		return snap
	}

	if flags.ManualEco {
		snap.Mode = models.ModeEco
		return snap
	}

	tod := models.TimeOfDayOf(now)
	idx := -1
	for i := range slots {
		if slots[i].Contains(tod) {
			idx = i
			break
		}
	}
	if idx < 0 {
		snap.Mode = models.ModeOffHours
		return snap
	}

	current := slots[idx]
	snap.CurrentSlot = &current
	snap.NextSlot = nextClassSlot(slots, idx)

	remaining := current.End.Seconds() - tod.Seconds()
	if remaining < 0 {
		remaining = 0
	}
	total := current.DurationSeconds()

	switch current.Kind {
	case models.SlotKindClass:
		elapsed := tod.Seconds() - current.Start.Seconds()
		if elapsed > int(e.cfg.EcoDelay/time.Second) && !flags.AutoEcoOverride {
			// CurrentSlot stays set so the eco view keeps its context;
			// countdown fields stay neutral.
			snap.Mode = models.ModeEco
			return snap
		}
		snap.Mode = models.ModeClass
	default:
		if remaining > 0 && remaining <= int(e.cfg.PreBellWindow/time.Second) {
			snap.Mode = models.ModePreBell
		} else {
			snap.Mode = models.ModeBreak
		}
	}

	snap.SecondsRemaining = remaining
	snap.TotalSeconds = total
	if total > 0 {
		snap.ProgressPercent = clampPercent(float64(remaining) / float64(total) * 100)
	}
	return snap
}

func nextClassSlot(slots []models.TimeSlot, after int) *models.TimeSlot {
	for i := after + 1; i < len(slots); i++ {
		if slots[i].Kind == models.SlotKindClass {
			next := slots[i]
			return &next
		}
	}
	return nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
