package models

import (
	"encoding/json"
	"time"
)

// DisplayMode is what the classroom display should currently show.
type DisplayMode string

const (
	ModeLoading  DisplayMode = "LOADING"
	ModeSpecial  DisplayMode = "SPECIAL"
	ModeEco      DisplayMode = "ECO"
	ModeClass    DisplayMode = "CLASS"
	ModeBreak    DisplayMode = "BREAK"
	ModePreBell  DisplayMode = "PRE_BELL"
	ModeOffHours DisplayMode = "OFF_HOURS"
)

// SpecialSubmode tags an operator broadcast.
type SpecialSubmode string

const (
	// SubmodeMarquee is a non-exclusive overlay. It must never suppress the
	// schedule-driven evaluation.
	SubmodeMarquee SpecialSubmode = "MARQUEE"
	// SubmodeExclusive takes total display priority.
	SubmodeExclusive SpecialSubmode = "EXCLUSIVE"
)

// SpecialStatus is an operator-triggered broadcast. The payload is opaque to
// the engine and handed to the presentation layer as-is.
type SpecialStatus struct {
	Submode SpecialSubmode  `json:"submode"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// OverrideFlags are the operator-controlled inputs to each evaluation.
type OverrideFlags struct {
	ManualEco       bool           `json:"manual_eco"`
	AutoEcoOverride bool           `json:"auto_eco_override"`
	Special         *SpecialStatus `json:"special,omitempty"`
}

// StatusSnapshot is the complete answer to "what should the display show
// right now". Every tick produces a fresh value with no carry-over state.
// Countdown fields are zeroed, never absent, for modes that have no
// countdown, so consumers never guard against missing fields.
type StatusSnapshot struct {
	At               time.Time      `json:"at"`
	Mode             DisplayMode    `json:"mode"`
	CurrentSlot      *TimeSlot      `json:"current_slot,omitempty"`
	NextSlot         *TimeSlot      `json:"next_slot,omitempty"`
	SecondsRemaining int            `json:"seconds_remaining"`
	TotalSeconds     int            `json:"total_seconds"`
	ProgressPercent  float64        `json:"progress_percent"`
	Special          *SpecialStatus `json:"special,omitempty"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
