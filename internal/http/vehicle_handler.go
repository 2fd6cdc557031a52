package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	vehicle, err := h.vehicles.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) createVehicle(c *gin.Context) {
	var req struct {
		Name            string  `json:"name" binding:"required"`
		LicensePlate    string  `json:"license_plate" binding:"required"`
		Type            string  `json:"type"`
		MaxCapacity     int     `json:"max_capacity" binding:"required"`
		Odometer        int     `json:"odometer"`
		AcquisitionCost float64 `json:"acquisition_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicles.Create(c.Request.Context(), service.CreateVehicleInput{
		Name:            req.Name,
		LicensePlate:    req.LicensePlate,
		Type:            req.Type,
		MaxCapacity:     req.MaxCapacity,
		Odometer:        req.Odometer,
		AcquisitionCost: req.AcquisitionCost,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Type            *string  `json:"type"`
		MaxCapacity     *int     `json:"max_capacity"`
		Odometer        *int     `json:"odometer"`
		AcquisitionCost *float64 `json:"acquisition_cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicles.Update(c.Request.Context(), id, service.UpdateVehicleInput{
		Name:            req.Name,
		Type:            req.Type,
		MaxCapacity:     req.MaxCapacity,
		Odometer:        req.Odometer,
		AcquisitionCost: req.AcquisitionCost,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) updateVehicleStatus(c *gin.Context) {
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

	vehicle, err := h.vehicles.UpdateStatus(c.Request.Context(), id, model.VehicleStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.vehicles.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}

func (h *Handler) listFuelLogs(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	logs, err := h.vehicles.ListFuelLogs(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": logs}))
}

func (h *Handler) addFuelLog(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Liters float64 `json:"liters" binding:"required"`
		Cost   float64 `json:"cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	log, err := h.vehicles.AddFuelLog(c.Request.Context(), id, req.Liters, req.Cost)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(log))
}
