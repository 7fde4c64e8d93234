package services

import (
	"fmt"
	"strings"
	"time"

	"telshop/internal/models"
	"telshop/internal/utils"
)

type RepairStore interface {
	Create(r *models.Repair) error
	Update(r *models.Repair) error
	GetByID(id string) (*models.Repair, error)
	List() ([]*models.Repair, error)
	Delete(id string) error
}

type RepairService struct {
	store RepairStore
}

func NewRepairService(store RepairStore) *RepairService {
	return &RepairService{store: store}
}

func validateRepair(r *models.Repair) error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if strings.TrimSpace(r.Device) == "" {
		return fmt.Errorf("%w: device is required", ErrValidation)
	}
	if strings.TrimSpace(r.Issue) == "" {
		return fmt.Errorf("%w: issue is required", ErrValidation)
	}
	if !models.ValidRepairStatus(r.Status) {
		return fmt.Errorf("%w: unknown repair status %q", ErrValidation, r.Status)
	}
	if !validAmount(r.Cost) || r.Cost < 0 {
		return fmt.Errorf("%w: cost must be a non-negative amount", ErrValidation)
	}
	return nil
}

func (s *RepairService) Create(r *models.Repair) (*models.Repair, error) {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.Device = strings.TrimSpace(r.Device)
	r.Issue = strings.TrimSpace(r.Issue)
	if r.Status == "" {
		r.Status = models.RepairStatusReceived
	}
	if err := validateRepair(r); err != nil {
		return nil, err
	}
	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate repair id: %w", err)
	}
	r.ID = id
	r.CreatedAt = time.Now()
	if err := s.store.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RepairService) Update(r *models.Repair) (*models.Repair, error) {
	existing, err := s.store.GetByID(r.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: repair %s", ErrNotFound, r.ID)
	}
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.Device = strings.TrimSpace(r.Device)
	r.Issue = strings.TrimSpace(r.Issue)
	if err := validateRepair(r); err != nil {
		return nil, err
	}
	r.CreatedAt = existing.CreatedAt
	if err := s.store.Update(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RepairService) GetByID(id string) (*models.Repair, error) {
	r, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: repair %s", ErrNotFound, id)
	}
	return r, nil
}

func (s *RepairService) List() ([]*models.Repair, error) {
	return s.store.List()
}

func (s *RepairService) Delete(id string) error {
	return s.store.Delete(id)
}
