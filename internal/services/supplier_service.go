package services

import (
	"fmt"
	"strings"
	"time"

	"telshop/internal/models"
	"telshop/internal/utils"
)

type SupplierStore interface {
	Create(s *models.Supplier) error
	Update(s *models.Supplier) error
	GetByID(id string) (*models.Supplier, error)
	List() ([]*models.Supplier, error)
	MarkPaid(id string, paidAt time.Time) (*models.Supplier, error)
	Delete(id string) error
	TotalUnpaid() (float64, error)
}

type SupplierService struct {
	store SupplierStore
}

func NewSupplierService(store SupplierStore) *SupplierService {
	return &SupplierService{store: store}
}

func validateSupplier(sup *models.Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validAmount(sup.AmountOwed) || sup.AmountOwed < 0 {
		return fmt.Errorf("%w: amount owed must be a non-negative amount", ErrValidation)
	}
	return nil
}

func (s *SupplierService) Create(sup *models.Supplier) (*models.Supplier, error) {
	sup.Name = strings.TrimSpace(sup.Name)
	if err := validateSupplier(sup); err != nil {
		return nil, err
	}
	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate supplier id: %w", err)
	}
	sup.ID = id
	sup.IsPaid = false
	sup.PaidAt = nil
	if err := s.store.Create(sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *SupplierService) Update(sup *models.Supplier) (*models.Supplier, error) {
	existing, err := s.store.GetByID(sup.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, sup.ID)
	}
	sup.Name = strings.TrimSpace(sup.Name)
	if err := validateSupplier(sup); err != nil {
		return nil, err
	}
	// paid state only changes through MarkPaid
	sup.IsPaid = existing.IsPaid
	sup.PaidAt = existing.PaidAt
	if err := s.store.Update(sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *SupplierService) GetByID(id string) (*models.Supplier, error) {
	sup, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	return sup, nil
}

func (s *SupplierService) List() ([]*models.Supplier, error) {
	return s.store.List()
}

// MarkPaid settles the payable. The returned record comes from the store
// after the write committed; callers must not flip their local copy first.
// Marking an already-paid supplier is a no-op success.
func (s *SupplierService) MarkPaid(id string) (*models.Supplier, error) {
	existing, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	if existing.IsPaid {
		return existing, nil
	}
	sup, err := s.store.MarkPaid(id, time.Now())
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}
	return sup, nil
}

func (s *SupplierService) Delete(id string) error {
	return s.store.Delete(id)
}

func (s *SupplierService) TotalUnpaid() (float64, error) {
	total, err := s.store.TotalUnpaid()
	if err != nil {
		return 0, err
	}
	return models.Round2(total), nil
}
