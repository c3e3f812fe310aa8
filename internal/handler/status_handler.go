package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apaulliao/classboard-api/internal/dto"
	"github.com/apaulliao/classboard-api/internal/service"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
	"github.com/apaulliao/classboard-api/pkg/response"
)

// StatusHandler exposes the display status endpoints.
type StatusHandler struct {
	status *service.StatusService
}

// NewStatusHandler constructs a status handler.
func NewStatusHandler(status *service.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// Current godoc
// @Summary Current display status
// @Description Latest published snapshot of what the display should show
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/status [get]
func (h *StatusHandler) Current(c *gin.Context) {
	snap := h.status.Current()
	response.JSON(c, http.StatusOK, snap, nil)
}

// Preview godoc
// @Summary Preview display status at an instant
// @Tags Board
// @Produce json
// @Param at query string true "Instant to evaluate (RFC3339 or local datetime)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /board/preview [get]
func (h *StatusHandler) Preview(c *gin.Context) {
	var query dto.PreviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing at parameter"))
		return
	}
	at, err := parseInstant(query.At)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid at parameter"))
		return
	}

	snap, err := h.status.Preview(c.Request.Context(), at)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// DaySlots godoc
// @Summary Effective schedule for a date
// @Description Slots after the day-type transformation, as the display sees them
// @Tags Board
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /board/slots [get]
func (h *StatusHandler) DaySlots(c *gin.Context) {
	at, err := parseDateOrNow(c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid date parameter"))
		return
	}

	slots, err := h.status.DaySlots(c.Request.Context(), at)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// GetClockOffset godoc
// @Summary Current clock offset
// @Tags Board
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /board/clock-offset [get]
func (h *StatusHandler) GetClockOffset(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.ClockOffsetResponse{Offset: h.status.ClockOffset().String()}, nil)
}

// SetClockOffset godoc
// @Summary Shift the display clock
// @Tags Board
// @Accept json
// @Produce json
// @Param payload body dto.ClockOffsetRequest true "Offset payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /board/clock-offset [put]
func (h *StatusHandler) SetClockOffset(c *gin.Context) {
	var req dto.ClockOffsetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid offset payload"))
		return
	}
	offset, err := time.ParseDuration(req.Offset)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid offset duration"))
		return
	}

	h.status.SetClockOffset(offset)
	response.JSON(c, http.StatusOK, dto.ClockOffsetResponse{Offset: h.status.ClockOffset().String()}, nil)
}

// Refresh godoc
// @Summary Force a schedule reload on the next tick
// @Tags Board
// @Produce json
// @Success 204
// @Router /board/refresh [post]
func (h *StatusHandler) Refresh(c *gin.Context) {
	h.status.Refresh()
	response.NoContent(c)
}

func parseInstant(raw string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", raw, time.Local)
}

func parseDateOrNow(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}
