package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null" json:"vehicle_id"`
	Amount    float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type FuelLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null" json:"vehicle_id"`
	Liters    float64   `gorm:"not null" json:"liters"`
	Cost      float64   `gorm:"type:numeric(12,2);not null" json:"cost"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FuelLog) TableName() string {
	return "fuel_logs"
}

func (f *FuelLog) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
