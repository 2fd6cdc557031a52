package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DriverStatus string

const (
	DriverStatusOnDuty    DriverStatus = "OnDuty"
	DriverStatusOffDuty   DriverStatus = "OffDuty"
	DriverStatusSuspended DriverStatus = "Suspended"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverStatusOnDuty, DriverStatusOffDuty, DriverStatusSuspended:
		return true
	}
	return false
}

type Driver struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name          string       `gorm:"type:varchar(255);not null" json:"name"`
	LicenseNumber string       `gorm:"type:varchar(64)" json:"license_number"`
	LicenseExpiry time.Time    `gorm:"not null" json:"license_expiry"`
	SafetyScore   float64      `gorm:"not null;default:100" json:"safety_score"`
	Status        DriverStatus `gorm:"type:driver_status;not null;default:'OffDuty'" json:"status"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
