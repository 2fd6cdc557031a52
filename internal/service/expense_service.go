package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

type ExpenseService struct {
	expenses *repository.ExpenseRepository
	vehicles *repository.VehicleRepository
}

func NewExpenseService(expenses *repository.ExpenseRepository, vehicles *repository.VehicleRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, vehicles: vehicles}
}

func (s *ExpenseService) List(ctx context.Context) ([]model.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: expense %s", ErrNotFound, id)
		}
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) Create(ctx context.Context, vehicleID uuid.UUID, amount float64) (*model.Expense, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vehicle %s", ErrNotFound, vehicleID)
		}
		return nil, err
	}

	expense := &model.Expense{VehicleID: vehicleID, Amount: amount}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, err
	}
	return s.Get(ctx, expense.ID)
}

func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, amount float64) (*model.Expense, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.expenses.Update(ctx, id, map[string]interface{}{"amount": amount}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, id)
}
