package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type VehicleService struct {
	vehicles *repository.VehicleRepository
}

func NewVehicleService(vehicles *repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

type CreateVehicleInput struct {
	Name            string
	LicensePlate    string
	Type            string
	MaxCapacity     int
	Odometer        int
	AcquisitionCost float64
}

type UpdateVehicleInput struct {
	Name            *string
	Type            *string
	MaxCapacity     *int
	Odometer        *int
	AcquisitionCost *float64
}

func (s *VehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, id)
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*model.Vehicle, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.LicensePlate) == "" {
		return nil, fmt.Errorf("%w: license_plate is required", ErrInvalidInput)
	}
	if input.MaxCapacity < 1 {
		return nil, fmt.Errorf("%w: max_capacity must be positive", ErrInvalidInput)
	}
	if input.Odometer < 0 {
		return nil, fmt.Errorf("%w: odometer must not be negative", ErrInvalidInput)
	}
	if input.AcquisitionCost < 0 {
		return nil, fmt.Errorf("%w: acquisition_cost must not be negative", ErrInvalidInput)
	}

	vehicle := &model.Vehicle{
		Name:            strings.TrimSpace(input.Name),
		LicensePlate:    strings.TrimSpace(input.LicensePlate),
		Type:            strings.TrimSpace(input.Type),
		MaxCapacity:     input.MaxCapacity,
		Odometer:        input.Odometer,
		AcquisitionCost: input.AcquisitionCost,
		Status:          model.VehicleStatusAvailable,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id uuid.UUID, input UpdateVehicleInput) (*model.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		fields["type"] = strings.TrimSpace(*input.Type)
	}
	if input.MaxCapacity != nil {
		if *input.MaxCapacity < 1 {
			return nil, fmt.Errorf("%w: max_capacity must be positive", ErrInvalidInput)
		}
		fields["max_capacity"] = *input.MaxCapacity
	}
	if input.Odometer != nil {
		if *input.Odometer < vehicle.Odometer {
			return nil, fmt.Errorf("%w: odometer must not decrease", ErrInvalidState)
		}
		fields["odometer"] = *input.Odometer
	}
	if input.AcquisitionCost != nil {
		if *input.AcquisitionCost < 0 {
			return nil, fmt.Errorf("%w: acquisition_cost must not be negative", ErrInvalidInput)
		}
		fields["acquisition_cost"] = *input.AcquisitionCost
	}

	if len(fields) > 0 {
		if err := s.vehicles.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

// UpdateStatus sets a vehicle's status directly. OnTrip is derived from the
// trip lifecycle and cannot be set by hand, and a vehicle held by a
// dispatched trip cannot be pulled out from under it.
func (s *VehicleService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.VehicleStatus) (*model.Vehicle, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(status))
	}
	if status == model.VehicleStatusOnTrip {
		return nil, fmt.Errorf("%w: OnTrip is set by dispatching a trip", ErrInvalidState)
	}

	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	held, err := s.vehicles.HasDispatchedTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if held {
		return nil, fmt.Errorf("%w: vehicle is held by a dispatched trip", ErrInvalidState)
	}

	if err := s.vehicles.Update(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	vehicle.Status = status
	return vehicle, nil
}

func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	held, err := s.vehicles.HasDispatchedTrip(ctx, id)
	if err != nil {
		return err
	}
	if held {
		return fmt.Errorf("%w: vehicle is held by a dispatched trip", ErrInvalidState)
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *VehicleService) ListFuelLogs(ctx context.Context, vehicleID uuid.UUID) ([]model.FuelLog, error) {
	if _, err := s.Get(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.vehicles.ListFuelLogs(ctx, vehicleID)
}

func (s *VehicleService) AddFuelLog(ctx context.Context, vehicleID uuid.UUID, liters, cost float64) (*model.FuelLog, error) {
	if liters <= 0 {
		return nil, fmt.Errorf("%w: liters must be positive", ErrInvalidInput)
	}
	if cost < 0 {
		return nil, fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, vehicleID); err != nil {
		return nil, err
	}

	log := &model.FuelLog{VehicleID: vehicleID, Liters: liters, Cost: cost}
	if err := s.vehicles.CreateFuelLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}
