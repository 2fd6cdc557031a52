package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
)

type RouterConfig struct {
	Environment       string
	RequestsPerMinute int
	Burst             int
}

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, cfg RouterConfig) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	if cfg.RequestsPerMinute > 0 {
		router.Use(middleware.RateLimit(cfg.RequestsPerMinute, cfg.Burst))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handler.register)
		authGroup.POST("/login", handler.login)
		authGroup.POST("/refresh", handler.refresh)
		authGroup.GET("/me", authMiddleware, handler.me)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	managerOnly := middleware.RequireRole(model.UserRoleManager)
	{
		protected.GET("/vehicles", handler.listVehicles)
		protected.GET("/vehicles/:id", handler.getVehicle)
		protected.POST("/vehicles", handler.createVehicle)
		protected.PATCH("/vehicles/:id", handler.updateVehicle)
		protected.PATCH("/vehicles/:id/status", handler.updateVehicleStatus)
		protected.DELETE("/vehicles/:id", managerOnly, handler.deleteVehicle)
		protected.GET("/vehicles/:id/fuel-logs", handler.listFuelLogs)
		protected.POST("/vehicles/:id/fuel-logs", handler.addFuelLog)

		protected.GET("/drivers", handler.listDrivers)
		protected.GET("/drivers/:id", handler.getDriver)
		protected.POST("/drivers", handler.createDriver)
		protected.PATCH("/drivers/:id", handler.updateDriver)
		protected.PATCH("/drivers/:id/status", handler.updateDriverStatus)
		protected.DELETE("/drivers/:id", managerOnly, handler.deleteDriver)

		protected.GET("/trips", handler.listTrips)
		protected.GET("/trips/:id", handler.getTrip)
		protected.POST("/trips", handler.createTrip)
		protected.PATCH("/trips/:id", handler.updateTrip)
		protected.PATCH("/trips/:id/status", handler.updateTripStatus)
		protected.DELETE("/trips/:id", handler.deleteTrip)

		protected.GET("/maintenance", handler.listMaintenanceLogs)
		protected.GET("/maintenance/:id", handler.getMaintenanceLog)
		protected.POST("/maintenance", handler.createMaintenanceLog)
		protected.PATCH("/maintenance/:id", handler.updateMaintenanceLog)
		protected.DELETE("/maintenance/:id", handler.deleteMaintenanceLog)

		protected.GET("/expenses", handler.listExpenses)
		protected.GET("/expenses/:id", handler.getExpense)
		protected.POST("/expenses", handler.createExpense)
		protected.PATCH("/expenses/:id", handler.updateExpense)
		protected.DELETE("/expenses/:id", handler.deleteExpense)

		protected.GET("/analytics/fuel-efficiency", handler.fuelEfficiencyReport)
		protected.GET("/analytics/roi", handler.vehicleROIReport)
		protected.GET("/analytics/driver-safety", handler.driverSafetyReport)
		protected.GET("/analytics/summary", handler.fleetSummary)
	}

	return router
}
