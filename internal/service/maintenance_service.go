package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type MaintenanceService struct {
	logs     *repository.MaintenanceRepository
	vehicles *repository.VehicleRepository
}

func NewMaintenanceService(logs *repository.MaintenanceRepository, vehicles *repository.VehicleRepository) *MaintenanceService {
	return &MaintenanceService{logs: logs, vehicles: vehicles}
}

type CreateMaintenanceInput struct {
	VehicleID   uuid.UUID
	Cost        float64
	Issue       string
	ServiceDate *time.Time
}

// UpdateMaintenanceInput follows the one patch policy used across the API:
// nil leaves a field unchanged; ClearServiceDate drops the date explicitly.
type UpdateMaintenanceInput struct {
	Cost             *float64
	Issue            *string
	ServiceDate      *time.Time
	ClearServiceDate bool
}

func (s *MaintenanceService) List(ctx context.Context) ([]model.MaintenanceLog, error) {
	return s.logs.List(ctx)
}

func (s *MaintenanceService) Get(ctx context.Context, id uuid.UUID) (*model.MaintenanceLog, error) {
	log, err := s.logs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: maintenance log %s", ErrNotFound, id)
		}
		return nil, err
	}
	return log, nil
}

func (s *MaintenanceService) Create(ctx context.Context, input CreateMaintenanceInput) (*model.MaintenanceLog, error) {
	if input.Cost < 0 {
		return nil, fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	if _, err := s.vehicles.GetByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, input.VehicleID)
		}
		return nil, err
	}

	log := &model.MaintenanceLog{
		VehicleID:   input.VehicleID,
		Cost:        input.Cost,
		Issue:       input.Issue,
		ServiceDate: input.ServiceDate,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	return s.Get(ctx, log.ID)
}

func (s *MaintenanceService) Update(ctx context.Context, id uuid.UUID, input UpdateMaintenanceInput) (*model.MaintenanceLog, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Cost != nil {
		if *input.Cost < 0 {
			return nil, fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
		}
		fields["cost"] = *input.Cost
	}
	if input.Issue != nil {
		fields["issue"] = *input.Issue
	}
	if input.ClearServiceDate {
		fields["service_date"] = gorm.Expr("NULL")
	} else if input.ServiceDate != nil {
		fields["service_date"] = *input.ServiceDate
	}

	if len(fields) > 0 {
		if err := s.logs.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *MaintenanceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.logs.Delete(ctx, id)
}
