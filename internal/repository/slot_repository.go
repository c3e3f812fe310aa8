package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/apaulliao/classboard-api/internal/models"
)

// SlotRepository persists the administrator-edited schedule: time slots, the
// per-weekday day types and the presentation-layer subject labels. The status
// engine only ever reads snapshots of this data.
type SlotRepository struct {
	db *sqlx.DB
}

// NewSlotRepository constructs the repository.
func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// ListSlots returns every slot ordered chronologically by start time. The
// resolver and engine trust this ordering and never re-sort.
func (r *SlotRepository) ListSlots(ctx context.Context) ([]models.TimeSlot, error) {
	const query = `SELECT id, name, start_time, end_time, kind FROM time_slots ORDER BY start_time ASC, id ASC`
	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	return slots, nil
}

// FindSlot fetches a single slot by id.
func (r *SlotRepository) FindSlot(ctx context.Context, id string) (*models.TimeSlot, error) {
	const query = `SELECT id, name, start_time, end_time, kind FROM time_slots WHERE id = $1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// CreateSlot inserts a new slot.
func (r *SlotRepository) CreateSlot(ctx context.Context, slot *models.TimeSlot) error {
	const query = `INSERT INTO time_slots (id, name, start_time, end_time, kind, updated_at)
VALUES (:id, :name, :start_time, :end_time, :kind, NOW())`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create time slot: %w", err)
	}
	return nil
}

// UpdateSlot rewrites an existing slot.
func (r *SlotRepository) UpdateSlot(ctx context.Context, slot *models.TimeSlot) error {
	const query = `UPDATE time_slots SET name = :name, start_time = :start_time, end_time = :end_time,
kind = :kind, updated_at = NOW() WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update time slot: %w", err)
	}
	return nil
}

// DeleteSlot removes a slot.
func (r *SlotRepository) DeleteSlot(ctx context.Context, id string) error {
	const query = `DELETE FROM time_slots WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	return nil
}

// ListDayTypes returns the weekday to day-type assignment map. Missing
// weekdays are simply absent; callers default them to Full.
func (r *SlotRepository) ListDayTypes(ctx context.Context) (models.DayTypeMap, error) {
	const query = `SELECT weekday, day_type, updated_at FROM day_types ORDER BY weekday ASC`
	var entries []models.DayTypeEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list day types: %w", err)
	}
	dayTypes := make(models.DayTypeMap, len(entries))
	for _, entry := range entries {
		dayTypes[time.Weekday(entry.Weekday)] = entry.DayType
	}
	return dayTypes, nil
}

// UpsertDayType assigns a day type to a weekday.
func (r *SlotRepository) UpsertDayType(ctx context.Context, weekday int, dayType models.DayType) error {
	const query = `INSERT INTO day_types (weekday, day_type, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (weekday) DO UPDATE SET day_type = EXCLUDED.day_type, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, weekday, dayType); err != nil {
		return fmt.Errorf("upsert day type: %w", err)
	}
	return nil
}

// ListSubjectLabels returns the display labels for a weekday.
func (r *SlotRepository) ListSubjectLabels(ctx context.Context, weekday int) ([]models.SubjectLabel, error) {
	const query = `SELECT weekday, slot_id, label FROM subject_labels WHERE weekday = $1 ORDER BY slot_id ASC`
	var labels []models.SubjectLabel
	if err := r.db.SelectContext(ctx, &labels, query, weekday); err != nil {
		return nil, fmt.Errorf("list subject labels: %w", err)
	}
	return labels, nil
}

// UpsertSubjectLabel assigns a label to a weekday/slot pair.
func (r *SlotRepository) UpsertSubjectLabel(ctx context.Context, label models.SubjectLabel) error {
	const query = `INSERT INTO subject_labels (weekday, slot_id, label) VALUES (:weekday, :slot_id, :label)
ON CONFLICT (weekday, slot_id) DO UPDATE SET label = EXCLUDED.label`
	if _, err := r.db.NamedExecContext(ctx, query, label); err != nil {
		return fmt.Errorf("upsert subject label: %w", err)
	}
	return nil
}
