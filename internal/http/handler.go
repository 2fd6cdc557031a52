package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/service"
)

type Handler struct {
	auth        *service.AuthService
	vehicles    *service.VehicleService
	drivers     *service.DriverService
	trips       *service.TripService
	maintenance *service.MaintenanceService
	expenses    *service.ExpenseService
	analytics   *service.AnalyticsService
	log         zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	vehicles *service.VehicleService,
	drivers *service.DriverService,
	trips *service.TripService,
	maintenance *service.MaintenanceService,
	expenses *service.ExpenseService,
	analytics *service.AnalyticsService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:        auth,
		vehicles:    vehicles,
		drivers:     drivers,
		trips:       trips,
		maintenance: maintenance,
		expenses:    expenses,
		analytics:   analytics,
		log:         log,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
