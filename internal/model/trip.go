package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusDraft      TripStatus = "Draft"
	TripStatusDispatched TripStatus = "Dispatched"
	TripStatusCompleted  TripStatus = "Completed"
	TripStatusCancelled  TripStatus = "Cancelled"
)

// tripTransitions is the full lifecycle graph. Completed and Cancelled are
// terminal: they map to empty slices, never to nil, so a missing key means
// an unknown status rather than a terminal one.
var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusDraft:      {TripStatusDispatched, TripStatusCancelled},
	TripStatusDispatched: {TripStatusCompleted, TripStatusCancelled},
	TripStatusCompleted:  {},
	TripStatusCancelled:  {},
}

// CanTransition reports whether a trip may move from one status to another.
func CanTransition(from, to TripStatus) bool {
	for _, allowed := range tripTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTargets returns the statuses reachable from the given one.
func AllowedTargets(from TripStatus) []TripStatus {
	targets := tripTransitions[from]
	out := make([]TripStatus, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether the status permits no further transitions.
func (s TripStatus) IsTerminal() bool {
	targets, known := tripTransitions[s]
	return known && len(targets) == 0
}

func (s TripStatus) Valid() bool {
	_, ok := tripTransitions[s]
	return ok
}

type Trip struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	VehicleID     uuid.UUID  `gorm:"type:uuid;not null" json:"vehicle_id"`
	DriverID      uuid.UUID  `gorm:"type:uuid;not null" json:"driver_id"`
	CargoWeight   int        `gorm:"not null" json:"cargo_weight"`
	Revenue       float64    `gorm:"type:numeric(12,2);not null;default:0" json:"revenue"`
	StartOdo      int        `gorm:"not null" json:"start_odo"`
	EndOdo        *int       `json:"end_odo"`
	Origin        string     `gorm:"type:text" json:"origin"`
	Destination   string     `gorm:"type:text" json:"destination"`
	Distance      *int       `json:"distance"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Status        TripStatus `gorm:"type:trip_status;not null;default:'Draft'" json:"status"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Driver  *Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
}

func (Trip) TableName() string {
	return "trips"
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
