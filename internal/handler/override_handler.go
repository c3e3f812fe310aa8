package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apaulliao/classboard-api/internal/dto"
	"github.com/apaulliao/classboard-api/internal/service"
	appErrors "github.com/apaulliao/classboard-api/pkg/errors"
	"github.com/apaulliao/classboard-api/pkg/response"
)

// OverrideHandler exposes the operator override endpoints.
type OverrideHandler struct {
	overrides *service.OverrideService
}

// NewOverrideHandler constructs an override handler.
func NewOverrideHandler(overrides *service.OverrideService) *OverrideHandler {
	return &OverrideHandler{overrides: overrides}
}

// Get godoc
// @Summary Current override flags
// @Tags Overrides
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /overrides [get]
func (h *OverrideHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.OverrideResponse{Flags: h.overrides.Flags()}, nil)
}

// SetManualEco godoc
// @Summary Toggle manual eco mode
// @Tags Overrides
// @Accept json
// @Produce json
// @Param payload body dto.ToggleRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Router /overrides/eco [put]
func (h *OverrideHandler) SetManualEco(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	flags := h.overrides.SetManualEco(req.Enabled)
	response.JSON(c, http.StatusOK, dto.OverrideResponse{Flags: flags}, nil)
}

// SetAutoEcoOverride godoc
// @Summary Toggle the auto-eco override
// @Description While enabled, a class period never drops into eco mode
// @Tags Overrides
// @Accept json
// @Produce json
// @Param payload body dto.ToggleRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Router /overrides/auto-eco [put]
func (h *OverrideHandler) SetAutoEcoOverride(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	flags := h.overrides.SetAutoEcoOverride(req.Enabled)
	response.JSON(c, http.StatusOK, dto.OverrideResponse{Flags: flags}, nil)
}

// SetSpecial godoc
// @Summary Activate a special broadcast
// @Tags Overrides
// @Accept json
// @Produce json
// @Param payload body dto.SpecialRequest true "Special payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /overrides/special [post]
func (h *OverrideHandler) SetSpecial(c *gin.Context) {
	var req dto.SpecialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid special payload"))
		return
	}
	flags, err := h.overrides.SetSpecial(req.Submode, req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.OverrideResponse{Flags: flags}, nil)
}

// ClearSpecial godoc
// @Summary Clear the special broadcast
// @Tags Overrides
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /overrides/special [delete]
func (h *OverrideHandler) ClearSpecial(c *gin.Context) {
	flags := h.overrides.ClearSpecial()
	response.JSON(c, http.StatusOK, dto.OverrideResponse{Flags: flags}, nil)
}
