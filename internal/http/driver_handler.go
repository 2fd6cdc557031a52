package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.drivers.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": drivers}))
}

func (h *Handler) getDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	driver, err := h.drivers.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) createDriver(c *gin.Context) {
	var req struct {
		Name          string   `json:"name" binding:"required"`
		LicenseNumber string   `json:"license_number"`
		LicenseExpiry string   `json:"license_expiry" binding:"required"`
		SafetyScore   *float64 `json:"safety_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	expiry, err := parseDate(req.LicenseExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid license_expiry"))
		return
	}

	driver, err := h.drivers.Create(c.Request.Context(), service.CreateDriverInput{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: expiry,
		SafetyScore:   req.SafetyScore,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(driver))
}

func (h *Handler) updateDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name          *string  `json:"name"`
		LicenseNumber *string  `json:"license_number"`
		LicenseExpiry *string  `json:"license_expiry"`
		SafetyScore   *float64 `json:"safety_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateDriverInput{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		SafetyScore:   req.SafetyScore,
	}
	if req.LicenseExpiry != nil {
		expiry, err := parseDate(*req.LicenseExpiry)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid license_expiry"))
			return
		}
		input.LicenseExpiry = &expiry
	}

	driver, err := h.drivers.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) updateDriverStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, err := h.drivers.UpdateStatus(c.Request.Context(), id, model.DriverStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) deleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.drivers.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}

// parseDate accepts either a bare date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
