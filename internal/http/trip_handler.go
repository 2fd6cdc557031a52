package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

func (h *Handler) listTrips(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": trips}))
}

func (h *Handler) getTrip(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	trip, err := h.trips.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) createTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		VehicleID     string  `json:"vehicle_id" binding:"required"`
		DriverID      string  `json:"driver_id" binding:"required"`
		CargoWeight   int     `json:"cargo_weight" binding:"required"`
		Revenue       float64 `json:"revenue"`
		StartOdo      int     `json:"start_odo"`
		EndOdo        *int    `json:"end_odo"`
		Origin        string  `json:"origin"`
		Destination   string  `json:"destination"`
		Distance      *int    `json:"distance"`
		ScheduledDate string  `json:"scheduled_date"`
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
	driverID, err := uuid.Parse(strings.TrimSpace(req.DriverID))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid driver_id"))
		return
	}

	input := service.CreateTripInput{
		VehicleID:   vehicleID,
		DriverID:    driverID,
		CargoWeight: req.CargoWeight,
		Revenue:     req.Revenue,
		StartOdo:    req.StartOdo,
		EndOdo:      req.EndOdo,
		Origin:      req.Origin,
		Destination: req.Destination,
		Distance:    req.Distance,
	}
	if scheduled := strings.TrimSpace(req.ScheduledDate); scheduled != "" {
		ts, err := time.Parse(time.RFC3339, scheduled)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid scheduled_date"))
			return
		}
		input.ScheduledDate = &ts
	}

	trip, err := h.trips.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(trip))
}

func (h *Handler) updateTrip(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		CargoWeight *int     `json:"cargo_weight"`
		Revenue     *float64 `json:"revenue"`
		EndOdo      *int     `json:"end_odo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.trips.Update(c.Request.Context(), id, service.UpdateTripInput{
		CargoWeight: req.CargoWeight,
		Revenue:     req.Revenue,
		EndOdo:      req.EndOdo,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) updateTripStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		EndOdo *int   `json:"end_odo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	target := model.TripStatus(strings.TrimSpace(req.Status))

	trip, err := h.trips.Transition(c.Request.Context(), principal, id, target, req.EndOdo)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) deleteTrip(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.trips.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}
