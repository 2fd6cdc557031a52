package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) fuelEfficiencyReport(c *gin.Context) {
	reports, err := h.analytics.FuelEfficiency(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": reports}))
}

func (h *Handler) vehicleROIReport(c *gin.Context) {
	reports, err := h.analytics.VehicleROI(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": reports}))
}

func (h *Handler) driverSafetyReport(c *gin.Context) {
	reports, err := h.analytics.DriverSafety(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": reports}))
}

func (h *Handler) fleetSummary(c *gin.Context) {
	summary, err := h.analytics.FleetSummary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(summary))
}
