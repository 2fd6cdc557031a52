package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID   uuid.UUID  `gorm:"type:uuid;not null" json:"vehicle_id"`
	Cost        float64    `gorm:"type:numeric(12,2);not null" json:"cost"`
	Issue       string     `gorm:"type:text" json:"issue"`
	ServiceDate *time.Time `json:"service_date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

func (MaintenanceLog) TableName() string {
	return "maintenance_logs"
}

func (m *MaintenanceLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
