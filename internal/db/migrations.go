package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('Available', 'OnTrip', 'InShop', 'Retired');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'driver_status') THEN
			CREATE TYPE driver_status AS ENUM ('OnDuty', 'OffDuty', 'Suspended');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trip_status') THEN
			CREATE TYPE trip_status AS ENUM ('Draft', 'Dispatched', 'Completed', 'Cancelled');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('MANAGER', 'DISPATCHER', 'SAFETY_OFFICER');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role user_role NOT NULL DEFAULT 'DISPATCHER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		license_plate VARCHAR(32) NOT NULL UNIQUE,
		type VARCHAR(64),
		max_capacity INTEGER NOT NULL CHECK (max_capacity > 0),
		odometer INTEGER NOT NULL DEFAULT 0 CHECK (odometer >= 0),
		acquisition_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
		status vehicle_status NOT NULL DEFAULT 'Available',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		license_number VARCHAR(64),
		license_expiry TIMESTAMPTZ NOT NULL,
		safety_score DOUBLE PRECISION NOT NULL DEFAULT 100 CHECK (safety_score BETWEEN 0 AND 100),
		status driver_status NOT NULL DEFAULT 'OffDuty',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_drivers_status ON drivers (status);`,
	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE RESTRICT,
		driver_id UUID NOT NULL REFERENCES drivers(id) ON DELETE RESTRICT,
		cargo_weight INTEGER NOT NULL CHECK (cargo_weight > 0),
		revenue NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (revenue >= 0),
		start_odo INTEGER NOT NULL CHECK (start_odo >= 0),
		end_odo INTEGER CHECK (end_odo > start_odo),
		origin TEXT,
		destination TEXT,
		distance INTEGER CHECK (distance >= 0),
		scheduled_date TIMESTAMPTZ,
		status trip_status NOT NULL DEFAULT 'Draft',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_vehicle_id ON trips (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_driver_id ON trips (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_status ON trips (status);`,
	// At most one trip may hold a vehicle at a time.
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_vehicle_dispatched_trip
		ON trips (vehicle_id)
		WHERE status = 'Dispatched';`,
	`CREATE TABLE IF NOT EXISTS trip_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		trip_id UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		old_status trip_status,
		new_status trip_status NOT NULL,
		note TEXT,
		changed_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trip_status_log_trip_id ON trip_status_log (trip_id);`,
	`CREATE TABLE IF NOT EXISTS maintenance_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		cost NUMERIC(12,2) NOT NULL CHECK (cost >= 0),
		issue TEXT,
		service_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_maintenance_logs_vehicle_id ON maintenance_logs (vehicle_id);`,
	`CREATE TABLE IF NOT EXISTS fuel_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		liters DOUBLE PRECISION NOT NULL CHECK (liters > 0),
		cost NUMERIC(12,2) NOT NULL CHECK (cost >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_logs_vehicle_id ON fuel_logs (vehicle_id);`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_vehicle_id ON expenses (vehicle_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	DECLARE
		t TEXT;
	BEGIN
		FOREACH t IN ARRAY ARRAY['vehicles', 'drivers', 'trips', 'maintenance_logs', 'expenses']
		LOOP
			IF NOT EXISTS (
				SELECT 1 FROM pg_trigger
				WHERE tgname = 'trg_' || t || '_updated_at'
			) THEN
				EXECUTE format(
					'CREATE TRIGGER trg_%s_updated_at BEFORE UPDATE ON %I FOR EACH ROW EXECUTE FUNCTION set_row_updated_at()',
					t, t
				);
			END IF;
		END LOOP;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
