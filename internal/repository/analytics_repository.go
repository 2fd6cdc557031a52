package repository

import (
	"context"

	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// AnalyticsStore supplies raw rows for the report aggregations.
type AnalyticsStore interface {
	Vehicles(ctx context.Context) ([]model.Vehicle, error)
	Drivers(ctx context.Context) ([]model.Driver, error)
	Trips(ctx context.Context) ([]model.Trip, error)
	FuelLogs(ctx context.Context) ([]model.FuelLog, error)
	MaintenanceLogs(ctx context.Context) ([]model.MaintenanceLog, error)
	Expenses(ctx context.Context) ([]model.Expense, error)
}

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

var _ AnalyticsStore = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	var rows []model.Vehicle
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepository) Drivers(ctx context.Context) ([]model.Driver, error) {
	var rows []model.Driver
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepository) Trips(ctx context.Context) ([]model.Trip, error) {
	var rows []model.Trip
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepository) FuelLogs(ctx context.Context) ([]model.FuelLog, error) {
	var rows []model.FuelLog
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepository) MaintenanceLogs(ctx context.Context) ([]model.MaintenanceLog, error) {
	var rows []model.MaintenanceLog
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsRepository) Expenses(ctx context.Context) ([]model.Expense, error) {
	var rows []model.Expense
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
