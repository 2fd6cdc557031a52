package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-service/internal/service"
)

func (h *Handler) listMaintenanceLogs(c *gin.Context) {
	logs, err := h.maintenance.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": logs}))
}

func (h *Handler) getMaintenanceLog(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	log, err := h.maintenance.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(log))
}

func (h *Handler) createMaintenanceLog(c *gin.Context) {
	var req struct {
		VehicleID   string  `json:"vehicle_id" binding:"required"`
		Cost        float64 `json:"cost"`
		Issue       string  `json:"issue"`
		ServiceDate string  `json:"service_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicleID, err := uuid.Parse(strings.TrimSpace(req.VehicleID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle_id"))
		return
	}

	input := service.CreateMaintenanceInput{
		VehicleID: vehicleID,
		Cost:      req.Cost,
		Issue:     req.Issue,
	}
	if date := strings.TrimSpace(req.ServiceDate); date != "" {
		ts, err := parseDate(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid service_date"))
			return
		}
		input.ServiceDate = &ts
	}

	log, err := h.maintenance.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(log))
}

func (h *Handler) updateMaintenanceLog(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Cost        *float64 `json:"cost"`
		Issue       *string  `json:"issue"`
		ServiceDate *string  `json:"service_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateMaintenanceInput{
		Cost:  req.Cost,
		Issue: req.Issue,
	}
	// An explicit empty string clears the date; omission leaves it unchanged.
	if req.ServiceDate != nil {
		if date := strings.TrimSpace(*req.ServiceDate); date == "" {
			input.ClearServiceDate = true
		} else {
			ts, err := parseDate(date)
			if err != nil {
				c.JSON(http.StatusBadRequest, errorResponse("invalid service_date"))
				return
			}
			input.ServiceDate = &ts
		}
	}

	log, err := h.maintenance.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(log))
}

func (h *Handler) deleteMaintenanceLog(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.maintenance.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}
