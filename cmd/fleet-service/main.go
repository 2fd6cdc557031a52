package main

import (
	"fmt"
	"os"

	"fleet-service/internal/auth"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	userRepo := repository.NewUserRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	driverRepo := repository.NewDriverRepository(database)
	tripRepo := repository.NewTripRepository(database)
	maintenanceRepo := repository.NewMaintenanceRepository(database)
	expenseRepo := repository.NewExpenseRepository(database)
	analyticsRepo := repository.NewAnalyticsRepository(database)

	tokenManager := auth.NewManager(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret)

	authService := service.NewAuthService(userRepo, tokenManager)
	vehicleService := service.NewVehicleService(vehicleRepo)
	driverService := service.NewDriverService(driverRepo)
	tripService := service.NewTripService(tripRepo)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, vehicleRepo)
	expenseService := service.NewExpenseService(expenseRepo, vehicleRepo)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	handler := httphandler.NewHandler(
		authService,
		vehicleService,
		driverService,
		tripService,
		maintenanceService,
		expenseService,
		analyticsService,
		log,
	)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenManager), httphandler.RouterConfig{
		Environment:       cfg.Environment,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
