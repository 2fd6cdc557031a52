package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-service/internal/model"
)

// TripTx is the transactional slice of the trip store. The ForUpdate methods
// take row locks, so concurrent lifecycle operations against the same trip or
// vehicle serialize instead of racing the read-check-write sequence.
type TripTx interface {
	TripForUpdate(id uuid.UUID) (*model.Trip, error)
	VehicleForUpdate(id uuid.UUID) (*model.Vehicle, error)
	Driver(id uuid.UUID) (*model.Driver, error)
	CreateTrip(trip *model.Trip) error
	UpdateTrip(id uuid.UUID, fields map[string]interface{}) error
	UpdateVehicle(id uuid.UUID, fields map[string]interface{}) error
	DeleteTrip(id uuid.UUID) error
	LogStatusChange(entry *model.TripStatusLog) error
}

type TripStore interface {
	InTransaction(ctx context.Context, fn func(tx TripTx) error) error
	List(ctx context.Context) ([]model.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Trip, error)
}

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

var _ TripStore = (*TripRepository)(nil)

func (r *TripRepository) List(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := r.db.WithContext(ctx).
		Model(&model.Trip{}).
		Order("created_at DESC").
		Preload("Vehicle").
		Preload("Driver").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Driver").
		First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) InTransaction(ctx context.Context, fn func(tx TripTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&tripTx{db: tx})
	})
}

type tripTx struct {
	db *gorm.DB
}

func (t *tripTx) TripForUpdate(id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	if err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (t *tripTx) VehicleForUpdate(id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := t.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (t *tripTx) Driver(id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	if err := t.db.First(&driver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (t *tripTx) CreateTrip(trip *model.Trip) error {
	return t.db.Create(trip).Error
}

func (t *tripTx) UpdateTrip(id uuid.UUID, fields map[string]interface{}) error {
	return t.db.
		Model(&model.Trip{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (t *tripTx) UpdateVehicle(id uuid.UUID, fields map[string]interface{}) error {
	return t.db.
		Model(&model.Vehicle{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (t *tripTx) DeleteTrip(id uuid.UUID) error {
	return t.db.Delete(&model.Trip{}, "id = ?", id).Error
}

func (t *tripTx) LogStatusChange(entry *model.TripStatusLog) error {
	return t.db.Create(entry).Error
}
