package services

import (
	"fmt"
	"strings"
	"time"

	"telshop/internal/models"
	"telshop/internal/utils"
)

type ExpenseStore interface {
	Create(e *models.Expense) error
	Update(e *models.Expense) error
	GetByID(id string) (*models.Expense, error)
	List() ([]*models.Expense, error)
	Delete(id string) error
	TotalSince(since time.Time) (float64, error)
}

type ExpenseService struct {
	store ExpenseStore
}

func NewExpenseService(store ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store}
}

func validateExpense(e *models.Expense) error {
	if !models.ValidExpenseCategory(e.Category) {
		return fmt.Errorf("%w: unknown expense category %q", ErrValidation, e.Category)
	}
	if !validAmount(e.Amount) || e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return nil
}

func (s *ExpenseService) Create(e *models.Expense) (*models.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	if err := validateExpense(e); err != nil {
		return nil, err
	}
	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate expense id: %w", err)
	}
	e.ID = id
	if err := s.store.Create(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Update(e *models.Expense) (*models.Expense, error) {
	existing, err := s.store.GetByID(e.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: expense %s", ErrNotFound, e.ID)
	}
	e.Description = strings.TrimSpace(e.Description)
	if e.Date.IsZero() {
		e.Date = existing.Date
	}
	if err := validateExpense(e); err != nil {
		return nil, err
	}
	if err := s.store.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) GetByID(id string) (*models.Expense, error) {
	e, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	return e, nil
}

func (s *ExpenseService) List() ([]*models.Expense, error) {
	return s.store.List()
}

func (s *ExpenseService) Delete(id string) error {
	return s.store.Delete(id)
}
