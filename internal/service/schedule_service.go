package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/apaulliao/classboard-api/internal/models"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
)

type slotRepository interface {
	ListSlots(ctx context.Context) ([]models.TimeSlot, error)
	FindSlot(ctx context.Context, id string) (*models.TimeSlot, error)
	CreateSlot(ctx context.Context, slot *models.TimeSlot) error
	UpdateSlot(ctx context.Context, slot *models.TimeSlot) error
	DeleteSlot(ctx context.Context, id string) error
	ListDayTypes(ctx context.Context) (models.DayTypeMap, error)
	UpsertDayType(ctx context.Context, weekday int, dayType models.DayType) error
	ListSubjectLabels(ctx context.Context, weekday int) ([]models.SubjectLabel, error)
	UpsertSubjectLabel(ctx context.Context, label models.SubjectLabel) error
}

type boardRefresher interface {
	Refresh()
}

// SaveSlotRequest describes payload for creating or replacing a time slot.
type SaveSlotRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
	Kind  string `json:"kind" validate:"required,oneof=CLASS BREAK"`
}

// SetDayTypeRequest assigns a day type to a weekday.
type SetDayTypeRequest struct {
	Weekday int    `json:"weekday" validate:"min=0,max=6"`
	DayType string `json:"day_type" validate:"required,oneof=FULL HALF"`
}

// SetSubjectLabelRequest assigns a display label to a weekday/slot pair.
type SetSubjectLabelRequest struct {
	Weekday int    `json:"weekday" validate:"min=0,max=6"`
	SlotID  string `json:"slot_id" validate:"required"`
	Label   string `json:"label" validate:"required"`
}

// ScheduleService guards the schedule configuration store. Malformed or
// overlapping slots are rejected here, at the boundary; the resolver and
// engine downstream assume a clean, chronologically ordered list.
type ScheduleService struct {
	repo      slotRepository
	board     boardRefresher
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(repo slotRepository, board boardRefresher, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, board: board, cache: cache, validator: validate, logger: logger}
}

// ListSlots returns the raw schedule in chronological order.
func (s *ScheduleService) ListSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.repo.ListSlots(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	return slots, nil
}

// CreateSlot inserts a new slot after boundary validation.
func (s *ScheduleService) CreateSlot(ctx context.Context, req SaveSlotRequest) (*models.TimeSlot, error) {
	slot, err := s.buildSlot(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoOverlap(ctx, *slot, ""); err != nil {
		return nil, err
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time slot")
	}
	s.invalidate(ctx)
	return slot, nil
}

// UpdateSlot replaces an existing slot.
func (s *ScheduleService) UpdateSlot(ctx context.Context, id string, req SaveSlotRequest) (*models.TimeSlot, error) {
	if _, err := s.repo.FindSlot(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slot")
	}

	req.ID = id
	slot, err := s.buildSlot(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNoOverlap(ctx, *slot, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update time slot")
	}
	s.invalidate(ctx)
	return slot, nil
}

// DeleteSlot removes a slot.
func (s *ScheduleService) DeleteSlot(ctx context.Context, id string) error {
	if _, err := s.repo.FindSlot(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "time slot not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slot")
	}
	if err := s.repo.DeleteSlot(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time slot")
	}
	s.invalidate(ctx)
	return nil
}

// DayTypes returns the weekday assignments.
func (s *ScheduleService) DayTypes(ctx context.Context) (models.DayTypeMap, error) {
	dayTypes, err := s.repo.ListDayTypes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list day types")
	}
	return dayTypes, nil
}

// SetDayType assigns a day type to a weekday.
func (s *ScheduleService) SetDayType(ctx context.Context, req SetDayTypeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day type payload")
	}
	if err := s.repo.UpsertDayType(ctx, req.Weekday, models.DayType(req.DayType)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set day type")
	}
	s.invalidate(ctx)
	return nil
}

// SubjectLabels returns the display labels for a weekday.
func (s *ScheduleService) SubjectLabels(ctx context.Context, weekday int) ([]models.SubjectLabel, error) {
	if weekday < 0 || weekday > 6 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weekday must be between 0 and 6")
	}
	labels, err := s.repo.ListSubjectLabels(ctx, weekday)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject labels")
	}
	return labels, nil
}

// SetSubjectLabel assigns a display label to a weekday/slot pair.
func (s *ScheduleService) SetSubjectLabel(ctx context.Context, req SetSubjectLabelRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject label payload")
	}
	label := models.SubjectLabel{Weekday: req.Weekday, SlotID: req.SlotID, Label: req.Label}
	if err := s.repo.UpsertSubjectLabel(ctx, label); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set subject label")
	}
	return nil
}

func (s *ScheduleService) buildSlot(req SaveSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot payload")
	}
	start, err := models.ParseTimeOfDay(req.Start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end, err := models.ParseTimeOfDay(req.End)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
	}
	if start >= end {
		return nil, appErrors.Clone(appErrors.ErrSlotBounds, "")
	}
	return &models.TimeSlot{
		ID:    req.ID,
		Name:  req.Name,
		Start: start,
		End:   end,
		Kind:  models.SlotKind(req.Kind),
	}, nil
}

func (s *ScheduleService) ensureNoOverlap(ctx context.Context, candidate models.TimeSlot, excludeID string) error {
	existing, err := s.repo.ListSlots(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time slots")
	}
	for _, slot := range existing {
		if excludeID != "" && slot.ID == excludeID {
			continue
		}
		if slot.ID == candidate.ID {
			return appErrors.Clone(appErrors.ErrConflict, "time slot id already exists")
		}
		if candidate.Start < slot.End && slot.Start < candidate.End {
			return appErrors.Clone(appErrors.ErrSlotOverlap, "")
		}
	}
	return nil
}

func (s *ScheduleService) invalidate(ctx context.Context) {
	if s.board != nil {
		s.board.Refresh()
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "board:*"); err != nil {
			s.logger.Warn("board cache invalidation failed", zap.Error(err))
		}
	}
}
