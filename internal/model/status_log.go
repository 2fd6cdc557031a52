package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TripStatusLog records every lifecycle transition, including the initial
// creation in Draft (OldStatus nil).
type TripStatusLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TripID    uuid.UUID   `gorm:"type:uuid;not null" json:"trip_id"`
	OldStatus *TripStatus `gorm:"type:trip_status" json:"old_status"`
	NewStatus TripStatus  `gorm:"type:trip_status;not null" json:"new_status"`
	Note      string      `gorm:"type:text" json:"note"`
	ChangedBy *uuid.UUID  `gorm:"type:uuid" json:"changed_by"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (TripStatusLog) TableName() string {
	return "trip_status_log"
}

func (l *TripStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
