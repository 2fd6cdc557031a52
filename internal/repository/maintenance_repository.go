package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) List(ctx context.Context) ([]model.MaintenanceLog, error) {
	var logs []model.MaintenanceLog
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Preload("Vehicle").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceLog, error) {
	var log model.MaintenanceLog
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, log *model.MaintenanceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *MaintenanceRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.MaintenanceLog{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MaintenanceLog{}, "id = ?", id).Error
}
