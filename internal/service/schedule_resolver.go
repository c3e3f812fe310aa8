package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/apaulliao/classboard-api/internal/models"
)

// ResolverConfig tunes the half-day transformation.
type ResolverConfig struct {
	// CutoverSlotID names the slot whose start marks the half-day cutover.
	CutoverSlotID string
	// CutoverFallback governs the cutover when the slot is absent.
	CutoverFallback models.TimeOfDay
	// RecessSlotID names the big-recess slot converted to cleaning time.
	RecessSlotID      string
	CleaningLabel     string
	DismissalLabel    string
	DismissalSlotID   string
	DismissalDuration time.Duration
}

// ResolverService turns a weekday, the raw slot list and a day type into the
// effective ordered slot list for that date. It trusts the caller's
// chronological ordering and never re-sorts; ordering bugs are an upstream
// validation concern.
type ResolverService struct {
	cfg    ResolverConfig
	logger *zap.Logger
}

// NewResolverService constructs a ResolverService with sane defaults.
func NewResolverService(cfg ResolverConfig, logger *zap.Logger) *ResolverService {
	if cfg.CutoverSlotID == "" {
		cfg.CutoverSlotID = "p5"
	}
	if cfg.CutoverFallback <= 0 {
		cfg.CutoverFallback = models.MustTimeOfDay("13:20")
	}
	if cfg.RecessSlotID == "" {
		cfg.RecessSlotID = "recess"
	}
	if cfg.CleaningLabel == "" {
		cfg.CleaningLabel = "Cleaning Time"
	}
	if cfg.DismissalLabel == "" {
		cfg.DismissalLabel = "Dismissal"
	}
	if cfg.DismissalSlotID == "" {
		cfg.DismissalSlotID = "after"
	}
	if cfg.DismissalDuration <= 0 {
		cfg.DismissalDuration = 20 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResolverService{cfg: cfg, logger: logger}
}

// Resolve produces the effective slots for the given weekday. Weekends are
// always empty. Full days pass through untouched. Half days keep the morning,
// rename the big recess to cleaning time and replace everything at or past
// the cutover with a single 20-minute dismissal slot.
func (s *ResolverService) Resolve(weekday time.Weekday, rawSlots []models.TimeSlot, dayType models.DayType) []models.TimeSlot {
	if weekday == time.Saturday || weekday == time.Sunday {
		return nil
	}
	if dayType != models.DayTypeHalf {
		return rawSlots
	}

	cutover := s.cutoverStart(rawSlots)
	effective := make([]models.TimeSlot, 0, len(rawSlots))
	for _, slot := range rawSlots {
		if slot.ID == s.cfg.RecessSlotID {
			slot.Name = s.cfg.CleaningLabel
			effective = append(effective, slot)
			continue
		}
		if slot.Start >= cutover {
			// The afternoon does not exist on half days: one terminal
			// dismissal slot, always exactly DismissalDuration long.
			effective = append(effective, models.TimeSlot{
				ID:    s.cfg.DismissalSlotID,
				Name:  s.cfg.DismissalLabel,
				Kind:  models.SlotKindBreak,
				Start: slot.Start,
				End:   slot.Start.Add(s.cfg.DismissalDuration),
			})
			break
		}
		effective = append(effective, slot)
	}
	return effective
}

func (s *ResolverService) cutoverStart(rawSlots []models.TimeSlot) models.TimeOfDay {
	for _, slot := range rawSlots {
		if slot.ID == s.cfg.CutoverSlotID {
			return slot.Start
		}
	}
	s.logger.Warn("half-day cutover slot missing from schedule, using fallback",
		zap.String("slot_id", s.cfg.CutoverSlotID),
		zap.String("fallback", s.cfg.CutoverFallback.String()))
	return s.cfg.CutoverFallback
}
