package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusOnTrip    VehicleStatus = "OnTrip"
	VehicleStatusInShop    VehicleStatus = "InShop"
	VehicleStatusRetired   VehicleStatus = "Retired"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusOnTrip, VehicleStatusInShop, VehicleStatusRetired:
		return true
	}
	return false
}

type Vehicle struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name            string        `gorm:"type:varchar(255);not null" json:"name"`
	LicensePlate    string        `gorm:"type:varchar(32);not null;uniqueIndex" json:"license_plate"`
	Type            string        `gorm:"type:varchar(64)" json:"type"`
	MaxCapacity     int           `gorm:"not null" json:"max_capacity"`
	Odometer        int           `gorm:"not null;default:0" json:"odometer"`
	AcquisitionCost float64       `gorm:"type:numeric(12,2);not null;default:0" json:"acquisition_cost"`
	Status          VehicleStatus `gorm:"type:vehicle_status;not null;default:'Available'" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
