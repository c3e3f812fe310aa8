package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/apaulliao/classboard-api/internal/dto"
	"github.com/apaulliao/classboard-api/internal/service"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
	"github.com/apaulliao/classboard-api/pkg/response"
)

// ScheduleHandler exposes schedule configuration endpoints.
type ScheduleHandler struct {
	schedule *service.ScheduleService
	export   *service.ExportService
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(schedule *service.ScheduleService, export *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, export: export}
}

// ListSlots godoc
// @Summary List configured time slots
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/slots [get]
func (h *ScheduleHandler) ListSlots(c *gin.Context) {
	slots, err := h.schedule.ListSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// CreateSlot godoc
// @Summary Create a time slot
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.SaveSlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule/slots [post]
func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	var req service.SaveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.schedule.CreateSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateSlot godoc
// @Summary Update a time slot
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body service.SaveSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/slots/{id} [put]
func (h *ScheduleHandler) UpdateSlot(c *gin.Context) {
	var req service.SaveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.schedule.UpdateSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// DeleteSlot godoc
// @Summary Delete a time slot
// @Tags Schedule
// @Param id path string true "Slot ID"
// @Success 204
// @Router /schedule/slots/{id} [delete]
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	if err := h.schedule.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DayTypes godoc
// @Summary Weekday to day-type assignments
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/day-types [get]
func (h *ScheduleHandler) DayTypes(c *gin.Context) {
	dayTypes, err := h.schedule.DayTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dayTypes, nil)
}

// SetDayType godoc
// @Summary Assign a day type to a weekday
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.SetDayTypeRequest true "Day type payload"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /schedule/day-types [put]
func (h *ScheduleHandler) SetDayType(c *gin.Context) {
	var req service.SetDayTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid day type payload"))
		return
	}
	if err := h.schedule.SetDayType(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubjectLabels godoc
// @Summary Subject labels for a weekday
// @Tags Schedule
// @Produce json
// @Param weekday query int true "Weekday (0=Sunday)"
// @Success 200 {object} response.Envelope
// @Router /schedule/subject-labels [get]
func (h *ScheduleHandler) SubjectLabels(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Query("weekday"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid weekday parameter"))
		return
	}
	labels, err := h.schedule.SubjectLabels(c.Request.Context(), weekday)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, labels, nil)
}

// SetSubjectLabel godoc
// @Summary Assign a subject label to a weekday slot
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.SetSubjectLabelRequest true "Label payload"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /schedule/subject-labels [put]
func (h *ScheduleHandler) SetSubjectLabel(c *gin.Context) {
	var req service.SetSubjectLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid label payload"))
		return
	}
	if err := h.schedule.SetSubjectLabel(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the effective schedule for a date
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid export query"))
		return
	}
	at, err := parseDateOrNow(query.Date)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid date parameter"))
		return
	}

	doc, err := h.export.DaySchedule(c.Request.Context(), at, service.ExportFormat(query.Format))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Payload)
}
