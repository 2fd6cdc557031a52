package db

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// Seed inserts demo data for local development. Each table is only populated
// when empty, so repeated startups are safe.
func Seed(db *gorm.DB, log zerolog.Logger) error {
	if err := seedUsers(db); err != nil {
		return err
	}

	vehicles, err := seedVehicles(db)
	if err != nil {
		return err
	}
	drivers, err := seedDrivers(db)
	if err != nil {
		return err
	}
	if err := seedTrips(db, vehicles, drivers); err != nil {
		return err
	}
	if err := seedLogs(db, vehicles); err != nil {
		return err
	}

	log.Info().Msg("demo data seeded")
	return nil
}

func seedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Fleet123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{Email: "manager@fleet.com", PasswordHash: string(hash), Role: model.UserRoleManager},
		{Email: "dispatch@fleet.com", PasswordHash: string(hash), Role: model.UserRoleDispatcher},
		{Email: "safety@fleet.com", PasswordHash: string(hash), Role: model.UserRoleSafetyOfficer},
	}
	return db.Create(&users).Error
}

func seedVehicles(db *gorm.DB) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := db.Order("license_plate").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	if len(vehicles) > 0 {
		return vehicles, nil
	}

	vehicles = []model.Vehicle{
		{Name: "Titan Hauler", LicensePlate: "TRK-4821", Type: "Heavy Truck", MaxCapacity: 15000, Odometer: 142500, Status: model.VehicleStatusAvailable},
		{Name: "Swift Runner", LicensePlate: "VAN-2934", Type: "Van", MaxCapacity: 3500, Odometer: 67200, Status: model.VehicleStatusAvailable},
		{Name: "Iron Stallion", LicensePlate: "TRK-7753", Type: "Heavy Truck", MaxCapacity: 20000, Odometer: 310000, Status: model.VehicleStatusInShop},
		{Name: "City Drifter", LicensePlate: "LGT-1102", Type: "Light Truck", MaxCapacity: 1200, Odometer: 28900, Status: model.VehicleStatusAvailable},
		{Name: "Road Monarch", LicensePlate: "TRK-6614", Type: "Heavy Truck", MaxCapacity: 18000, Odometer: 198400, Status: model.VehicleStatusAvailable},
	}
	if err := db.Create(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func seedDrivers(db *gorm.DB) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := db.Order("name").Find(&drivers).Error; err != nil {
		return nil, err
	}
	if len(drivers) > 0 {
		return drivers, nil
	}

	drivers = []model.Driver{
		{Name: "Marcus Rivera", LicenseNumber: "CDL-MR-7821", LicenseExpiry: date(2026, 8, 15), SafetyScore: 89, Status: model.DriverStatusOnDuty},
		{Name: "Priya Sharma", LicenseNumber: "CDL-PS-3340", LicenseExpiry: date(2025, 11, 30), SafetyScore: 91, Status: model.DriverStatusOnDuty},
		{Name: "Jake O'Brien", LicenseNumber: "CDL-JO-5512", LicenseExpiry: date(2026, 3, 1), SafetyScore: 62, Status: model.DriverStatusOffDuty},
		{Name: "Amara Osei", LicenseNumber: "CDL-AO-9901", LicenseExpiry: date(2027, 5, 20), SafetyScore: 97, Status: model.DriverStatusOnDuty},
	}
	if err := db.Create(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func seedTrips(db *gorm.DB, vehicles []model.Vehicle, drivers []model.Driver) error {
	var count int64
	if err := db.Model(&model.Trip{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(vehicles) < 4 || len(drivers) < 3 {
		return nil
	}

	endOdo := 67411
	scheduled := date(2025, 2, 16)
	dispatchDate := date(2025, 2, 21)
	draftDate := date(2025, 2, 23)
	distance1 := 456
	distance2 := 211
	distance3 := 437

	trips := []model.Trip{
		{
			VehicleID: vehicles[0].ID, DriverID: drivers[0].ID,
			CargoWeight: 12000, Revenue: 45000, StartOdo: 142500,
			Origin: "Chicago, IL", Destination: "Detroit, MI", Distance: &distance1,
			ScheduledDate: &dispatchDate, Status: model.TripStatusDispatched,
		},
		{
			VehicleID: vehicles[1].ID, DriverID: drivers[1].ID,
			CargoWeight: 2800, Revenue: 18000, StartOdo: 67200, EndOdo: &endOdo,
			Origin: "Nashville, TN", Destination: "Memphis, TN", Distance: &distance2,
			ScheduledDate: &scheduled, Status: model.TripStatusCompleted,
		},
		{
			VehicleID: vehicles[3].ID, DriverID: drivers[3].ID,
			CargoWeight: 950, Revenue: 22000, StartOdo: 28900,
			Origin: "Atlanta, GA", Destination: "Charlotte, NC", Distance: &distance3,
			ScheduledDate: &draftDate, Status: model.TripStatusDraft,
		},
	}
	if err := db.Create(&trips).Error; err != nil {
		return err
	}

	// Keep the dispatched trip and its vehicle consistent.
	return db.Model(&model.Vehicle{}).
		Where("id = ?", vehicles[0].ID).
		Update("status", model.VehicleStatusOnTrip).Error
}

func seedLogs(db *gorm.DB, vehicles []model.Vehicle) error {
	if len(vehicles) < 5 {
		return nil
	}

	var count int64
	if err := db.Model(&model.MaintenanceLog{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		serviceDates := []time.Time{
			date(2025, 2, 20), date(2025, 2, 18), date(2025, 2, 15), date(2025, 2, 22), date(2025, 2, 10),
		}
		logs := []model.MaintenanceLog{
			{VehicleID: vehicles[0].ID, Cost: 10000, Issue: "Engine Issue", ServiceDate: &serviceDates[0]},
			{VehicleID: vehicles[2].ID, Cost: 45000, Issue: "Engine Overhaul", ServiceDate: &serviceDates[1]},
			{VehicleID: vehicles[1].ID, Cost: 2500, Issue: "Tire Rotation", ServiceDate: &serviceDates[2]},
			{VehicleID: vehicles[4].ID, Cost: 8000, Issue: "Brake Inspection", ServiceDate: &serviceDates[3]},
			{VehicleID: vehicles[3].ID, Cost: 1500, Issue: "Oil Change", ServiceDate: &serviceDates[4]},
		}
		if err := db.Create(&logs).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.Expense{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		expenses := []model.Expense{
			{VehicleID: vehicles[0].ID, Amount: 19000},
			{VehicleID: vehicles[1].ID, Amount: 8500},
			{VehicleID: vehicles[3].ID, Amount: 15000},
		}
		if err := db.Create(&expenses).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&model.FuelLog{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		fuel := []model.FuelLog{
			{VehicleID: vehicles[0].ID, Liters: 100, Cost: 8500},
			{VehicleID: vehicles[1].ID, Liters: 25, Cost: 2100},
			{VehicleID: vehicles[3].ID, Liters: 35, Cost: 3000},
		}
		if err := db.Create(&fuel).Error; err != nil {
			return err
		}
	}

	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
