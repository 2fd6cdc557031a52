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

// TripService owns the trip lifecycle: the status state machine, the
// vehicle availability coupling, and odometer bookkeeping on completion.
// Every read-check-write sequence runs inside one store transaction with the
// vehicle row locked, so two concurrent creates against the same vehicle
// serialize and the loser sees OnTrip.
type TripService struct {
	store repository.TripStore
}

func NewTripService(store repository.TripStore) *TripService {
	return &TripService{store: store}
}

type CreateTripInput struct {
	VehicleID     uuid.UUID
	DriverID      uuid.UUID
	CargoWeight   int
	Revenue       float64
	StartOdo      int
	EndOdo        *int
	Origin        string
	Destination   string
	Distance      *int
	ScheduledDate *time.Time
}

type UpdateTripInput struct {
	CargoWeight *int
	Revenue     *float64
	EndOdo      *int
}

func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	return s.store.List(ctx)
}

func (s *TripService) Get(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	trip, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: trip %s", ErrNotFound, id)
		}
		return nil, err
	}
	return trip, nil
}

// Create validates vehicle availability and driver duty status, then persists
// a new trip in Draft. The vehicle is only checked here, not locked; locking
// happens at dispatch.
func (s *TripService) Create(ctx context.Context, principal model.Principal, input CreateTripInput) (*model.Trip, error) {
	if err := validateTripFields(input.CargoWeight, input.Revenue, input.StartOdo, input.EndOdo); err != nil {
		return nil, err
	}

	trip := &model.Trip{
		VehicleID:     input.VehicleID,
		DriverID:      input.DriverID,
		CargoWeight:   input.CargoWeight,
		Revenue:       input.Revenue,
		StartOdo:      input.StartOdo,
		EndOdo:        input.EndOdo,
		Origin:        input.Origin,
		Destination:   input.Destination,
		Distance:      input.Distance,
		ScheduledDate: input.ScheduledDate,
		Status:        model.TripStatusDraft,
	}

	err := s.store.InTransaction(ctx, func(tx repository.TripTx) error {
		vehicle, err := tx.VehicleForUpdate(input.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vehicle %s", ErrNotFound, input.VehicleID)
			}
			return err
		}
		if vehicle.Status != model.VehicleStatusAvailable {
			return fmt.Errorf("%w: vehicle is not available (status: %s)", ErrInvalidState, vehicle.Status)
		}

		driver, err := tx.Driver(input.DriverID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver %s", ErrNotFound, input.DriverID)
			}
			return err
		}
		if driver.Status != model.DriverStatusOnDuty {
			return fmt.Errorf("%w: driver is not on duty (status: %s)", ErrInvalidState, driver.Status)
		}

		if err := tx.CreateTrip(trip); err != nil {
			return err
		}

		return tx.LogStatusChange(&model.TripStatusLog{
			TripID:    trip.ID,
			NewStatus: model.TripStatusDraft,
			Note:      "trip created",
			ChangedBy: &principal.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	return trip, nil
}

// Update applies non-status edits. Terminal trips are immutable.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, input UpdateTripInput) (*model.Trip, error) {
	var updated *model.Trip

	err := s.store.InTransaction(ctx, func(tx repository.TripTx) error {
		trip, err := tx.TripForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: trip %s", ErrNotFound, id)
			}
			return err
		}
		if trip.Status.IsTerminal() {
			return fmt.Errorf("%w: cannot update a %s trip", ErrInvalidState, trip.Status)
		}

		fields := map[string]interface{}{}
		if input.CargoWeight != nil {
			if *input.CargoWeight < 1 {
				return fmt.Errorf("%w: cargo_weight must be positive", ErrInvalidInput)
			}
			fields["cargo_weight"] = *input.CargoWeight
			trip.CargoWeight = *input.CargoWeight
		}
		if input.Revenue != nil {
			if *input.Revenue < 0 {
				return fmt.Errorf("%w: revenue must not be negative", ErrInvalidInput)
			}
			fields["revenue"] = *input.Revenue
			trip.Revenue = *input.Revenue
		}
		if input.EndOdo != nil {
			if *input.EndOdo <= trip.StartOdo {
				return fmt.Errorf("%w: endOdo must be greater than startOdo", ErrInvalidState)
			}
			fields["end_odo"] = *input.EndOdo
			trip.EndOdo = input.EndOdo
		}

		if len(fields) == 0 {
			updated = trip
			return nil
		}
		if err := tx.UpdateTrip(trip.ID, fields); err != nil {
			return err
		}
		updated = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Transition moves a trip along the lifecycle graph and applies the coupled
// vehicle side effects. Trip and vehicle writes share one transaction, so a
// completion either advances both or neither.
func (s *TripService) Transition(ctx context.Context, principal model.Principal, id uuid.UUID, target model.TripStatus, endOdoOverride *int) (*model.Trip, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(target))
	}

	var updated *model.Trip

	err := s.store.InTransaction(ctx, func(tx repository.TripTx) error {
		trip, err := tx.TripForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: trip %s", ErrNotFound, id)
			}
			return err
		}

		if !model.CanTransition(trip.Status, target) {
			return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, trip.Status, target)
		}

		tripFields := map[string]interface{}{"status": target}

		switch target {
		case model.TripStatusCompleted:
			endOdo := trip.EndOdo
			if endOdoOverride != nil {
				endOdo = endOdoOverride
			}
			if endOdo == nil {
				return fmt.Errorf("%w: endOdo is required to complete a trip", ErrInvalidState)
			}
			if *endOdo <= trip.StartOdo {
				return fmt.Errorf("%w: endOdo must be greater than startOdo", ErrInvalidState)
			}
			if err := tx.UpdateVehicle(trip.VehicleID, map[string]interface{}{
				"odometer": *endOdo,
				"status":   model.VehicleStatusAvailable,
			}); err != nil {
				return err
			}
			tripFields["end_odo"] = *endOdo
			trip.EndOdo = endOdo

		case model.TripStatusDispatched:
			if err := tx.UpdateVehicle(trip.VehicleID, map[string]interface{}{
				"status": model.VehicleStatusOnTrip,
			}); err != nil {
				return err
			}

		case model.TripStatusCancelled:
			if err := tx.UpdateVehicle(trip.VehicleID, map[string]interface{}{
				"status": model.VehicleStatusAvailable,
			}); err != nil {
				return err
			}
		}

		if err := tx.UpdateTrip(trip.ID, tripFields); err != nil {
			return err
		}

		prev := trip.Status
		trip.Status = target
		updated = trip

		return tx.LogStatusChange(&model.TripStatusLog{
			TripID:    trip.ID,
			OldStatus: &prev,
			NewStatus: target,
			ChangedBy: &principal.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a trip. Dispatched trips hold the vehicle lock and cannot be
// deleted without releasing it first.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.InTransaction(ctx, func(tx repository.TripTx) error {
		trip, err := tx.TripForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: trip %s", ErrNotFound, id)
			}
			return err
		}
		if trip.Status == model.TripStatusDispatched {
			return fmt.Errorf("%w: cannot delete a dispatched trip", ErrInvalidState)
		}
		return tx.DeleteTrip(trip.ID)
	})
}

func validateTripFields(cargoWeight int, revenue float64, startOdo int, endOdo *int) error {
	if cargoWeight < 1 {
		return fmt.Errorf("%w: cargo_weight must be positive", ErrInvalidInput)
	}
	if revenue < 0 {
		return fmt.Errorf("%w: revenue must not be negative", ErrInvalidInput)
	}
	if startOdo < 0 {
		return fmt.Errorf("%w: start_odo must not be negative", ErrInvalidInput)
	}
	if endOdo != nil && *endOdo <= startOdo {
		return fmt.Errorf("%w: endOdo must be greater than startOdo", ErrInvalidState)
	}
	return nil
}
