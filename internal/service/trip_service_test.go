package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// fakeTripStore is an in-memory TripStore. InTransaction snapshots the maps
// and restores them when the closure returns an error, mirroring a rollback.
type fakeTripStore struct {
	trips      map[uuid.UUID]model.Trip
	vehicles   map[uuid.UUID]model.Vehicle
	drivers    map[uuid.UUID]model.Driver
	statusLogs []model.TripStatusLog
}

func newFakeTripStore() *fakeTripStore {
	return &fakeTripStore{
		trips:    map[uuid.UUID]model.Trip{},
		vehicles: map[uuid.UUID]model.Vehicle{},
		drivers:  map[uuid.UUID]model.Driver{},
	}
}

func (f *fakeTripStore) addVehicle(status model.VehicleStatus, odometer int) uuid.UUID {
	id := uuid.New()
	f.vehicles[id] = model.Vehicle{ID: id, Name: "Truck", LicensePlate: id.String()[:8], Status: status, Odometer: odometer}
	return id
}

func (f *fakeTripStore) addDriver(status model.DriverStatus) uuid.UUID {
	id := uuid.New()
	f.drivers[id] = model.Driver{ID: id, Name: "Driver", Status: status}
	return id
}

func (f *fakeTripStore) addTrip(vehicleID, driverID uuid.UUID, status model.TripStatus, startOdo int, endOdo *int) uuid.UUID {
	id := uuid.New()
	f.trips[id] = model.Trip{
		ID: id, VehicleID: vehicleID, DriverID: driverID,
		CargoWeight: 500, Revenue: 1000, StartOdo: startOdo, EndOdo: endOdo,
		Status: status,
	}
	return id
}

func (f *fakeTripStore) InTransaction(ctx context.Context, fn func(tx repository.TripTx) error) error {
	trips := make(map[uuid.UUID]model.Trip, len(f.trips))
	for k, v := range f.trips {
		trips[k] = v
	}
	vehicles := make(map[uuid.UUID]model.Vehicle, len(f.vehicles))
	for k, v := range f.vehicles {
		vehicles[k] = v
	}
	logs := make([]model.TripStatusLog, len(f.statusLogs))
	copy(logs, f.statusLogs)

	if err := fn(&fakeTripTx{store: f}); err != nil {
		f.trips = trips
		f.vehicles = vehicles
		f.statusLogs = logs
		return err
	}
	return nil
}

func (f *fakeTripStore) List(ctx context.Context) ([]model.Trip, error) {
	out := make([]model.Trip, 0, len(f.trips))
	for _, t := range f.trips {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTripStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	trip, ok := f.trips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &trip, nil
}

type fakeTripTx struct {
	store *fakeTripStore
}

func (tx *fakeTripTx) TripForUpdate(id uuid.UUID) (*model.Trip, error) {
	trip, ok := tx.store.trips[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &trip, nil
}

func (tx *fakeTripTx) VehicleForUpdate(id uuid.UUID) (*model.Vehicle, error) {
	vehicle, ok := tx.store.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &vehicle, nil
}

func (tx *fakeTripTx) Driver(id uuid.UUID) (*model.Driver, error) {
	driver, ok := tx.store.drivers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &driver, nil
}

func (tx *fakeTripTx) CreateTrip(trip *model.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	tx.store.trips[trip.ID] = *trip
	return nil
}

func (tx *fakeTripTx) UpdateTrip(id uuid.UUID, fields map[string]interface{}) error {
	trip, ok := tx.store.trips[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			trip.Status = value.(model.TripStatus)
		case "end_odo":
			v := value.(int)
			trip.EndOdo = &v
		case "cargo_weight":
			trip.CargoWeight = value.(int)
		case "revenue":
			trip.Revenue = value.(float64)
		}
	}
	tx.store.trips[id] = trip
	return nil
}

func (tx *fakeTripTx) UpdateVehicle(id uuid.UUID, fields map[string]interface{}) error {
	vehicle, ok := tx.store.vehicles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			vehicle.Status = value.(model.VehicleStatus)
		case "odometer":
			vehicle.Odometer = value.(int)
		}
	}
	tx.store.vehicles[id] = vehicle
	return nil
}

func (tx *fakeTripTx) DeleteTrip(id uuid.UUID) error {
	delete(tx.store.trips, id)
	return nil
}

func (tx *fakeTripTx) LogStatusChange(entry *model.TripStatusLog) error {
	tx.store.statusLogs = append(tx.store.statusLogs, *entry)
	return nil
}

var _ repository.TripStore = (*fakeTripStore)(nil)

func testPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Email: "dispatcher@example.com", Role: model.UserRoleDispatcher}
}

func intPtr(v int) *int { return &v }

func TestTripServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft trip and logs the initial status", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 1000)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		svc := NewTripService(store)

		trip, err := svc.Create(ctx, testPrincipal(), CreateTripInput{
			VehicleID:   vehicleID,
			DriverID:    driverID,
			CargoWeight: 800,
			Revenue:     2500,
			StartOdo:    1000,
		})
		require.NoError(t, err)
		require.Equal(t, model.TripStatusDraft, trip.Status)
		require.NotEqual(t, uuid.Nil, trip.ID)

		stored, ok := store.trips[trip.ID]
		require.True(t, ok)
		require.Equal(t, model.TripStatusDraft, stored.Status)

		// Creating a draft does not touch the vehicle.
		require.Equal(t, model.VehicleStatusAvailable, store.vehicles[vehicleID].Status)

		require.Len(t, store.statusLogs, 1)
		require.Nil(t, store.statusLogs[0].OldStatus)
		require.Equal(t, model.TripStatusDraft, store.statusLogs[0].NewStatus)
	})

	t.Run("rejects a vehicle that is not available", func(t *testing.T) {
		for _, status := range []model.VehicleStatus{
			model.VehicleStatusOnTrip,
			model.VehicleStatusInShop,
			model.VehicleStatusRetired,
		} {
			store := newFakeTripStore()
			vehicleID := store.addVehicle(status, 0)
			driverID := store.addDriver(model.DriverStatusOnDuty)
			svc := NewTripService(store)

			_, err := svc.Create(ctx, testPrincipal(), CreateTripInput{
				VehicleID: vehicleID, DriverID: driverID, CargoWeight: 100, StartOdo: 0,
			})
			require.ErrorIs(t, err, ErrInvalidState, "vehicle status %s", status)
			require.Empty(t, store.trips)
			require.Empty(t, store.statusLogs)
		}
	})

	t.Run("rejects a driver that is not on duty", func(t *testing.T) {
		for _, status := range []model.DriverStatus{
			model.DriverStatusOffDuty,
			model.DriverStatusSuspended,
		} {
			store := newFakeTripStore()
			vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
			driverID := store.addDriver(status)
			svc := NewTripService(store)

			_, err := svc.Create(ctx, testPrincipal(), CreateTripInput{
				VehicleID: vehicleID, DriverID: driverID, CargoWeight: 100, StartOdo: 0,
			})
			require.ErrorIs(t, err, ErrInvalidState, "driver status %s", status)
			require.Empty(t, store.trips)
		}
	})

	t.Run("unknown vehicle and driver map to not found", func(t *testing.T) {
		store := newFakeTripStore()
		driverID := store.addDriver(model.DriverStatusOnDuty)
		svc := NewTripService(store)

		_, err := svc.Create(ctx, testPrincipal(), CreateTripInput{
			VehicleID: uuid.New(), DriverID: driverID, CargoWeight: 100,
		})
		require.ErrorIs(t, err, ErrNotFound)

		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
		_, err = svc.Create(ctx, testPrincipal(), CreateTripInput{
			VehicleID: vehicleID, DriverID: uuid.New(), CargoWeight: 100,
		})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validates trip fields", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		svc := NewTripService(store)

		_, err := svc.Create(ctx, testPrincipal(), CreateTripInput{
			VehicleID: vehicleID, DriverID: driverID, CargoWeight: 0,
		})
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(ctx, testPrincipal(), CreateTripInput{
			VehicleID: vehicleID, DriverID: driverID, CargoWeight: 100, Revenue: -5,
		})
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(ctx, testPrincipal(), CreateTripInput{
			VehicleID: vehicleID, DriverID: driverID, CargoWeight: 100, StartOdo: 500, EndOdo: intPtr(400),
		})
		require.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestTripServiceTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatch marks the vehicle on trip", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 1000)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDraft, 1000, nil)
		svc := NewTripService(store)

		trip, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusDispatched, nil)
		require.NoError(t, err)
		require.Equal(t, model.TripStatusDispatched, trip.Status)
		require.Equal(t, model.TripStatusDispatched, store.trips[tripID].Status)
		require.Equal(t, model.VehicleStatusOnTrip, store.vehicles[vehicleID].Status)

		require.Len(t, store.statusLogs, 1)
		require.Equal(t, model.TripStatusDraft, *store.statusLogs[0].OldStatus)
		require.Equal(t, model.TripStatusDispatched, store.statusLogs[0].NewStatus)
	})

	t.Run("completion writes the odometer and frees the vehicle", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusOnTrip, 1000)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDispatched, 1000, nil)
		svc := NewTripService(store)

		trip, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusCompleted, intPtr(1200))
		require.NoError(t, err)
		require.Equal(t, model.TripStatusCompleted, trip.Status)
		require.NotNil(t, trip.EndOdo)
		require.Equal(t, 1200, *trip.EndOdo)

		vehicle := store.vehicles[vehicleID]
		require.Equal(t, 1200, vehicle.Odometer)
		require.Equal(t, model.VehicleStatusAvailable, vehicle.Status)
	})

	t.Run("completion falls back to the trip's stored end odometer", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusOnTrip, 1000)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDispatched, 1000, intPtr(1150))
		svc := NewTripService(store)

		_, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusCompleted, nil)
		require.NoError(t, err)
		require.Equal(t, 1150, store.vehicles[vehicleID].Odometer)
	})

	t.Run("completion without an end odometer fails and changes nothing", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusOnTrip, 1000)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDispatched, 1000, nil)
		svc := NewTripService(store)

		_, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusCompleted, nil)
		require.ErrorIs(t, err, ErrInvalidState)
		require.Equal(t, model.TripStatusDispatched, store.trips[tripID].Status)
		require.Equal(t, 1000, store.vehicles[vehicleID].Odometer)
		require.Equal(t, model.VehicleStatusOnTrip, store.vehicles[vehicleID].Status)
		require.Empty(t, store.statusLogs)
	})

	t.Run("completion with end odometer at or below start fails", func(t *testing.T) {
		for _, endOdo := range []int{1000, 999} {
			store := newFakeTripStore()
			vehicleID := store.addVehicle(model.VehicleStatusOnTrip, 1000)
			driverID := store.addDriver(model.DriverStatusOnDuty)
			tripID := store.addTrip(vehicleID, driverID, model.TripStatusDispatched, 1000, nil)
			svc := NewTripService(store)

			_, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusCompleted, intPtr(endOdo))
			require.ErrorIs(t, err, ErrInvalidState, "endOdo %d", endOdo)
			require.Equal(t, model.TripStatusDispatched, store.trips[tripID].Status)
			require.Equal(t, 1000, store.vehicles[vehicleID].Odometer)
		}
	})

	t.Run("cancelling a dispatched trip frees the vehicle", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusOnTrip, 1000)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDispatched, 1000, nil)
		svc := NewTripService(store)

		trip, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusCancelled, nil)
		require.NoError(t, err)
		require.Equal(t, model.TripStatusCancelled, trip.Status)
		require.Equal(t, model.VehicleStatusAvailable, store.vehicles[vehicleID].Status)
		// Cancellation never touches the odometer.
		require.Equal(t, 1000, store.vehicles[vehicleID].Odometer)
	})

	t.Run("cancelling a draft trip leaves the vehicle available", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 500)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDraft, 500, nil)
		svc := NewTripService(store)

		trip, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatusCancelled, nil)
		require.NoError(t, err)
		require.Equal(t, model.TripStatusCancelled, trip.Status)
		require.Equal(t, model.VehicleStatusAvailable, store.vehicles[vehicleID].Status)
	})

	t.Run("invalid edges are rejected without side effects", func(t *testing.T) {
		invalid := []struct {
			from model.TripStatus
			to   model.TripStatus
		}{
			{model.TripStatusDraft, model.TripStatusCompleted},
			{model.TripStatusCompleted, model.TripStatusDraft},
			{model.TripStatusCompleted, model.TripStatusDispatched},
			{model.TripStatusCompleted, model.TripStatusCancelled},
			{model.TripStatusCancelled, model.TripStatusDraft},
			{model.TripStatusCancelled, model.TripStatusDispatched},
			{model.TripStatusCancelled, model.TripStatusCompleted},
			{model.TripStatusDispatched, model.TripStatusDraft},
		}
		for _, tc := range invalid {
			store := newFakeTripStore()
			vehicleID := store.addVehicle(model.VehicleStatusAvailable, 1000)
			driverID := store.addDriver(model.DriverStatusOnDuty)
			tripID := store.addTrip(vehicleID, driverID, tc.from, 1000, intPtr(1200))
			svc := NewTripService(store)

			_, err := svc.Transition(ctx, testPrincipal(), tripID, tc.to, nil)
			require.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
			require.Equal(t, tc.from, store.trips[tripID].Status)
			require.Equal(t, model.VehicleStatusAvailable, store.vehicles[vehicleID].Status)
			require.Empty(t, store.statusLogs)
		}
	})

	t.Run("unknown target status is invalid input", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDraft, 0, nil)
		svc := NewTripService(store)

		_, err := svc.Transition(ctx, testPrincipal(), tripID, model.TripStatus("Parked"), nil)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing trip is not found", func(t *testing.T) {
		svc := NewTripService(newFakeTripStore())
		_, err := svc.Transition(ctx, testPrincipal(), uuid.New(), model.TripStatusDispatched, nil)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTripServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates editable fields on a draft trip", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDraft, 1000, nil)
		svc := NewTripService(store)

		trip, err := svc.Update(ctx, tripID, UpdateTripInput{
			CargoWeight: intPtr(750),
			EndOdo:      intPtr(1300),
		})
		require.NoError(t, err)
		require.Equal(t, 750, trip.CargoWeight)
		require.Equal(t, 750, store.trips[tripID].CargoWeight)
		require.Equal(t, 1300, *store.trips[tripID].EndOdo)
	})

	t.Run("nil fields leave the trip unchanged", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDraft, 1000, nil)
		svc := NewTripService(store)

		trip, err := svc.Update(ctx, tripID, UpdateTripInput{})
		require.NoError(t, err)
		require.Equal(t, 500, trip.CargoWeight)
	})

	t.Run("terminal trips are immutable", func(t *testing.T) {
		for _, status := range []model.TripStatus{model.TripStatusCompleted, model.TripStatusCancelled} {
			store := newFakeTripStore()
			vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
			driverID := store.addDriver(model.DriverStatusOnDuty)
			tripID := store.addTrip(vehicleID, driverID, status, 1000, intPtr(1200))
			svc := NewTripService(store)

			_, err := svc.Update(ctx, tripID, UpdateTripInput{Revenue: new(float64)})
			require.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		}
	})

	t.Run("end odometer must exceed start", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDraft, 1000, nil)
		svc := NewTripService(store)

		_, err := svc.Update(ctx, tripID, UpdateTripInput{EndOdo: intPtr(1000)})
		require.ErrorIs(t, err, ErrInvalidState)
		require.Nil(t, store.trips[tripID].EndOdo)
	})
}

func TestTripServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes trips that are not dispatched", func(t *testing.T) {
		for _, status := range []model.TripStatus{
			model.TripStatusDraft,
			model.TripStatusCompleted,
			model.TripStatusCancelled,
		} {
			store := newFakeTripStore()
			vehicleID := store.addVehicle(model.VehicleStatusAvailable, 0)
			driverID := store.addDriver(model.DriverStatusOnDuty)
			tripID := store.addTrip(vehicleID, driverID, status, 1000, intPtr(1200))
			svc := NewTripService(store)

			require.NoError(t, svc.Delete(ctx, tripID))
			require.NotContains(t, store.trips, tripID)
		}
	})

	t.Run("refuses to delete a dispatched trip", func(t *testing.T) {
		store := newFakeTripStore()
		vehicleID := store.addVehicle(model.VehicleStatusOnTrip, 0)
		driverID := store.addDriver(model.DriverStatusOnDuty)
		tripID := store.addTrip(vehicleID, driverID, model.TripStatusDispatched, 1000, nil)
		svc := NewTripService(store)

		err := svc.Delete(ctx, tripID)
		require.ErrorIs(t, err, ErrInvalidState)
		require.Contains(t, store.trips, tripID)
	})

	t.Run("missing trip is not found", func(t *testing.T) {
		svc := NewTripService(newFakeTripStore())
		require.ErrorIs(t, svc.Delete(ctx, uuid.New()), ErrNotFound)
	})
}

// Full lifecycle: create, dispatch, complete. Verifies the vehicle tracking
// state through every step, including the final odometer write.
func TestTripServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeTripStore()
	vehicleID := store.addVehicle(model.VehicleStatusAvailable, 1000)
	driverID := store.addDriver(model.DriverStatusOnDuty)
	svc := NewTripService(store)
	principal := testPrincipal()

	scheduled := time.Now().Add(24 * time.Hour)
	trip, err := svc.Create(ctx, principal, CreateTripInput{
		VehicleID:     vehicleID,
		DriverID:      driverID,
		CargoWeight:   900,
		Revenue:       3200,
		StartOdo:      1000,
		Origin:        "Warehouse A",
		Destination:   "Port B",
		ScheduledDate: &scheduled,
	})
	require.NoError(t, err)
	require.Equal(t, model.TripStatusDraft, trip.Status)
	require.Equal(t, model.VehicleStatusAvailable, store.vehicles[vehicleID].Status)

	_, err = svc.Transition(ctx, principal, trip.ID, model.TripStatusDispatched, nil)
	require.NoError(t, err)
	require.Equal(t, model.VehicleStatusOnTrip, store.vehicles[vehicleID].Status)

	// A second trip on the same vehicle is now rejected at creation.
	_, err = svc.Create(ctx, principal, CreateTripInput{
		VehicleID: vehicleID, DriverID: driverID, CargoWeight: 100, StartOdo: 1000,
	})
	require.ErrorIs(t, err, ErrInvalidState)

	done, err := svc.Transition(ctx, principal, trip.ID, model.TripStatusCompleted, intPtr(1200))
	require.NoError(t, err)
	require.Equal(t, model.TripStatusCompleted, done.Status)

	vehicle := store.vehicles[vehicleID]
	require.Equal(t, 1200, vehicle.Odometer)
	require.Equal(t, model.VehicleStatusAvailable, vehicle.Status)

	require.Len(t, store.statusLogs, 3)
	require.Equal(t, model.TripStatusDraft, store.statusLogs[0].NewStatus)
	require.Equal(t, model.TripStatusDispatched, store.statusLogs[1].NewStatus)
	require.Equal(t, model.TripStatusCompleted, store.statusLogs[2].NewStatus)
}
