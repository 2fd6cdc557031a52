package model

import (
	"time"

	"github.com/google/uuid"
)

type FuelEfficiencyReport struct {
	VehicleID       uuid.UUID `json:"vehicle_id"`
	VehicleName     string    `json:"vehicle_name"`
	LicensePlate    string    `json:"license_plate"`
	TotalDistanceKm int       `json:"total_distance_km"`
	TotalLiters     float64   `json:"total_liters"`
	KmPerLiter      *float64  `json:"fuel_efficiency_km_per_liter"`
}

type VehicleROIReport struct {
	VehicleID       uuid.UUID `json:"vehicle_id"`
	VehicleName     string    `json:"vehicle_name"`
	LicensePlate    string    `json:"license_plate"`
	AcquisitionCost float64   `json:"acquisition_cost"`
	TotalRevenue    float64   `json:"total_revenue"`
	TotalCost       float64   `json:"total_cost"`
	NetProfit       float64   `json:"net_profit"`
	ROIPercent      *float64  `json:"roi_percent"`
}

type DriverSafetyReport struct {
	DriverID       uuid.UUID    `json:"driver_id"`
	DriverName     string       `json:"driver_name"`
	Status         DriverStatus `json:"status"`
	SafetyScore    float64      `json:"safety_score"`
	TotalTrips     int          `json:"total_trips"`
	CompletedTrips int          `json:"completed_trips"`
	LicenseExpiry  time.Time    `json:"license_expiry"`
}

type FleetSummary struct {
	Fleet      FleetCounts     `json:"fleet"`
	Drivers    DriverCounts    `json:"drivers"`
	Trips      TripCounts      `json:"trips"`
	Financials FleetFinancials `json:"financials"`
}

type FleetCounts struct {
	TotalVehicles int `json:"total_vehicles"`
	Available     int `json:"available"`
	OnTrip        int `json:"on_trip"`
	InShop        int `json:"in_shop"`
	Retired       int `json:"retired"`
}

type DriverCounts struct {
	Total     int `json:"total"`
	OnDuty    int `json:"on_duty"`
	OffDuty   int `json:"off_duty"`
	Suspended int `json:"suspended"`
}

type TripCounts struct {
	Total      int `json:"total"`
	Draft      int `json:"draft"`
	Dispatched int `json:"dispatched"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

type FleetFinancials struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCost       float64 `json:"total_cost"`
	NetProfit       float64 `json:"net_profit"`
	FuelCost        float64 `json:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	OtherExpenses   float64 `json:"other_expenses"`
}
