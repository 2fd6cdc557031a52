package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type DriverService struct {
	drivers *repository.DriverRepository
}

func NewDriverService(drivers *repository.DriverRepository) *DriverService {
	return &DriverService{drivers: drivers}
}

type CreateDriverInput struct {
	Name          string
	LicenseNumber string
	LicenseExpiry time.Time
	SafetyScore   *float64
}

type UpdateDriverInput struct {
	Name          *string
	LicenseNumber *string
	LicenseExpiry *time.Time
	SafetyScore   *float64
}

func (s *DriverService) List(ctx context.Context) ([]model.Driver, error) {
	return s.drivers.List(ctx)
}

func (s *DriverService) Get(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: driver %s", ErrNotFound, id)
		}
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Create(ctx context.Context, input CreateDriverInput) (*model.Driver, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.LicenseExpiry.IsZero() {
		return nil, fmt.Errorf("%w: license_expiry is required", ErrInvalidInput)
	}

	driver := &model.Driver{
		Name:          strings.TrimSpace(input.Name),
		LicenseNumber: strings.TrimSpace(input.LicenseNumber),
		LicenseExpiry: input.LicenseExpiry,
		SafetyScore:   100,
		Status:        model.DriverStatusOffDuty,
	}
	if input.SafetyScore != nil {
		if err := validateSafetyScore(*input.SafetyScore); err != nil {
			return nil, err
		}
		driver.SafetyScore = *input.SafetyScore
	}

	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Update(ctx context.Context, id uuid.UUID, input UpdateDriverInput) (*model.Driver, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.LicenseNumber != nil {
		fields["license_number"] = strings.TrimSpace(*input.LicenseNumber)
	}
	if input.LicenseExpiry != nil {
		fields["license_expiry"] = *input.LicenseExpiry
	}
	if input.SafetyScore != nil {
		if err := validateSafetyScore(*input.SafetyScore); err != nil {
			return nil, err
		}
		fields["safety_score"] = *input.SafetyScore
	}

	if len(fields) > 0 {
		if err := s.drivers.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *DriverService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DriverStatus) (*model.Driver, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(status))
	}
	driver, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.drivers.Update(ctx, id, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	driver.Status = status
	return driver, nil
}

func (s *DriverService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.drivers.Delete(ctx, id)
}

func validateSafetyScore(score float64) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: safety_score must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}
