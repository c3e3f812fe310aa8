package dto

import (
	"encoding/json"

	"github.com/apaulliao/classboard-api/internal/models"
)

// ToggleRequest flips a boolean override flag.
type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// SpecialRequest activates a special broadcast on the display.
type SpecialRequest struct {
	Submode models.SpecialSubmode `json:"submode" binding:"required"`
	Payload json.RawMessage       `json:"payload,omitempty"`
}

// OverrideResponse echoes the override flags after a change.
type OverrideResponse struct {
	Flags models.OverrideFlags `json:"flags"`
}

// ClockOffsetRequest shifts the display clock by a duration string such as
// "15m" or "-1h30m".
type ClockOffsetRequest struct {
	Offset string `json:"offset" binding:"required"`
}

// ClockOffsetResponse reports the currently applied offset.
type ClockOffsetResponse struct {
	Offset string `json:"offset"`
}

// PreviewQuery selects the instant to evaluate the display for.
type PreviewQuery struct {
	At string `form:"at" binding:"required"`
}

// ExportQuery selects the date and format for a schedule export.
type ExportQuery struct {
	Date   string `form:"date"`
	Format string `form:"format,default=csv"`
}
