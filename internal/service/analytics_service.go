package service

import (
	"context"
	"math"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// AnalyticsService aggregates fleet reports. The arithmetic lives here, on
// top of raw rows from the store, so it can be tested without a database.
type AnalyticsService struct {
	store repository.AnalyticsStore
}

func NewAnalyticsService(store repository.AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

func (s *AnalyticsService) FuelEfficiency(ctx context.Context) ([]model.FuelEfficiencyReport, error) {
	vehicles, err := s.store.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.Trips(ctx)
	if err != nil {
		return nil, err
	}
	fuelLogs, err := s.store.FuelLogs(ctx)
	if err != nil {
		return nil, err
	}

	// Only completed trips contribute distance: endOdo is set exactly once,
	// at completion.
	distanceByVehicle := map[string]int{}
	for _, t := range trips {
		if t.Status == model.TripStatusCompleted && t.EndOdo != nil {
			distanceByVehicle[t.VehicleID.String()] += *t.EndOdo - t.StartOdo
		}
	}
	litersByVehicle := map[string]float64{}
	for _, f := range fuelLogs {
		litersByVehicle[f.VehicleID.String()] += f.Liters
	}

	reports := make([]model.FuelEfficiencyReport, 0, len(vehicles))
	for _, v := range vehicles {
		distance := distanceByVehicle[v.ID.String()]
		liters := litersByVehicle[v.ID.String()]
		report := model.FuelEfficiencyReport{
			VehicleID:       v.ID,
			VehicleName:     v.Name,
			LicensePlate:    v.LicensePlate,
			TotalDistanceKm: distance,
			TotalLiters:     liters,
		}
		if liters > 0 {
			eff := round2(float64(distance) / liters)
			report.KmPerLiter = &eff
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *AnalyticsService) VehicleROI(ctx context.Context) ([]model.VehicleROIReport, error) {
	vehicles, err := s.store.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.Trips(ctx)
	if err != nil {
		return nil, err
	}
	fuelLogs, err := s.store.FuelLogs(ctx)
	if err != nil {
		return nil, err
	}
	maintenanceLogs, err := s.store.MaintenanceLogs(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.Expenses(ctx)
	if err != nil {
		return nil, err
	}

	revenueByVehicle := map[string]float64{}
	for _, t := range trips {
		if t.Status == model.TripStatusCompleted {
			revenueByVehicle[t.VehicleID.String()] += t.Revenue
		}
	}
	costByVehicle := map[string]float64{}
	for _, f := range fuelLogs {
		costByVehicle[f.VehicleID.String()] += f.Cost
	}
	for _, m := range maintenanceLogs {
		costByVehicle[m.VehicleID.String()] += m.Cost
	}
	for _, e := range expenses {
		costByVehicle[e.VehicleID.String()] += e.Amount
	}

	reports := make([]model.VehicleROIReport, 0, len(vehicles))
	for _, v := range vehicles {
		revenue := revenueByVehicle[v.ID.String()]
		cost := costByVehicle[v.ID.String()]
		report := model.VehicleROIReport{
			VehicleID:       v.ID,
			VehicleName:     v.Name,
			LicensePlate:    v.LicensePlate,
			AcquisitionCost: v.AcquisitionCost,
			TotalRevenue:    round2(revenue),
			TotalCost:       round2(cost),
			NetProfit:       round2(revenue - cost),
		}
		if v.AcquisitionCost > 0 {
			roi := round2((revenue - cost) / v.AcquisitionCost * 100)
			report.ROIPercent = &roi
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *AnalyticsService) DriverSafety(ctx context.Context) ([]model.DriverSafetyReport, error) {
	drivers, err := s.store.Drivers(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.Trips(ctx)
	if err != nil {
		return nil, err
	}

	totalByDriver := map[string]int{}
	completedByDriver := map[string]int{}
	for _, t := range trips {
		totalByDriver[t.DriverID.String()]++
		if t.Status == model.TripStatusCompleted {
			completedByDriver[t.DriverID.String()]++
		}
	}

	reports := make([]model.DriverSafetyReport, 0, len(drivers))
	for _, d := range drivers {
		reports = append(reports, model.DriverSafetyReport{
			DriverID:       d.ID,
			DriverName:     d.Name,
			Status:         d.Status,
			SafetyScore:    d.SafetyScore,
			TotalTrips:     totalByDriver[d.ID.String()],
			CompletedTrips: completedByDriver[d.ID.String()],
			LicenseExpiry:  d.LicenseExpiry,
		})
	}
	return reports, nil
}

func (s *AnalyticsService) FleetSummary(ctx context.Context) (*model.FleetSummary, error) {
	vehicles, err := s.store.Vehicles(ctx)
	if err != nil {
		return nil, err
	}
	drivers, err := s.store.Drivers(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.Trips(ctx)
	if err != nil {
		return nil, err
	}
	fuelLogs, err := s.store.FuelLogs(ctx)
	if err != nil {
		return nil, err
	}
	maintenanceLogs, err := s.store.MaintenanceLogs(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.Expenses(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.FleetSummary{}

	summary.Fleet.TotalVehicles = len(vehicles)
	for _, v := range vehicles {
		switch v.Status {
		case model.VehicleStatusAvailable:
			summary.Fleet.Available++
		case model.VehicleStatusOnTrip:
			summary.Fleet.OnTrip++
		case model.VehicleStatusInShop:
			summary.Fleet.InShop++
		case model.VehicleStatusRetired:
			summary.Fleet.Retired++
		}
	}

	summary.Drivers.Total = len(drivers)
	for _, d := range drivers {
		switch d.Status {
		case model.DriverStatusOnDuty:
			summary.Drivers.OnDuty++
		case model.DriverStatusOffDuty:
			summary.Drivers.OffDuty++
		case model.DriverStatusSuspended:
			summary.Drivers.Suspended++
		}
	}

	summary.Trips.Total = len(trips)
	var revenue float64
	for _, t := range trips {
		switch t.Status {
		case model.TripStatusDraft:
			summary.Trips.Draft++
		case model.TripStatusDispatched:
			summary.Trips.Dispatched++
		case model.TripStatusCompleted:
			summary.Trips.Completed++
			revenue += t.Revenue
		case model.TripStatusCancelled:
			summary.Trips.Cancelled++
		}
	}

	var fuelCost, maintenanceCost, otherExpenses float64
	for _, f := range fuelLogs {
		fuelCost += f.Cost
	}
	for _, m := range maintenanceLogs {
		maintenanceCost += m.Cost
	}
	for _, e := range expenses {
		otherExpenses += e.Amount
	}

	totalCost := fuelCost + maintenanceCost + otherExpenses
	summary.Financials = model.FleetFinancials{
		TotalRevenue:    round2(revenue),
		TotalCost:       round2(totalCost),
		NetProfit:       round2(revenue - totalCost),
		FuelCost:        round2(fuelCost),
		MaintenanceCost: round2(maintenanceCost),
		OtherExpenses:   round2(otherExpenses),
	}
	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
