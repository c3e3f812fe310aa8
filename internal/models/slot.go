package models

import "time"

// SlotKind distinguishes instruction periods from breaks.
type SlotKind string

const (
	SlotKindClass SlotKind = "CLASS"
	SlotKindBreak SlotKind = "BREAK"
)

// TimeSlot is one named interval of the school day. Start is inclusive, End
// exclusive: an instant equal to End belongs to whatever slot starts there,
// never to the slot that is ending.
type TimeSlot struct {
	ID    string    `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Start TimeOfDay `db:"start_time" json:"start"`
	End   TimeOfDay `db:"end_time" json:"end"`
	Kind  SlotKind  `db:"kind" json:"kind"`
}

// Contains reports whether tod falls inside [Start, End).
func (s TimeSlot) Contains(tod TimeOfDay) bool {
	return tod >= s.Start && tod < s.End
}

// DurationSeconds is the slot length in seconds.
func (s TimeSlot) DurationSeconds() int {
	return int(s.End - s.Start)
}

// DayType selects which transformation the day resolver applies.
type DayType string

const (
	DayTypeFull DayType = "FULL"
	DayTypeHalf DayType = "HALF"
)

// DayTypeMap assigns a DayType per weekday. Missing entries default to Full.
type DayTypeMap map[time.Weekday]DayType

// ForWeekday returns the configured day type, defaulting to Full.
func (m DayTypeMap) ForWeekday(weekday time.Weekday) DayType {
	if m == nil {
		return DayTypeFull
	}
	if dt, ok := m[weekday]; ok && dt != "" {
		return dt
	}
	return DayTypeFull
}

// DayTypeEntry is the persisted weekday assignment row.
type DayTypeEntry struct {
	Weekday   int       `db:"weekday" json:"weekday"`
	DayType   DayType   `db:"day_type" json:"day_type"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectLabel maps a weekday/slot pair to a display label. Consumed by the
// presentation layer only; the engine never reads labels.
type SubjectLabel struct {
	Weekday int    `db:"weekday" json:"weekday"`
	SlotID  string `db:"slot_id" json:"slot_id"`
	Label   string `db:"label" json:"label"`
}
