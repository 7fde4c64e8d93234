package services

import (
	"fmt"
	"strings"
	"time"

	"telshop/internal/models"
	"telshop/internal/utils"
)

type PhoneStore interface {
	Create(p *models.Phone) error
	Update(p *models.Phone) error
	GetByID(id string) (*models.Phone, error)
	List() ([]*models.Phone, error)
	Delete(id string) error
}

type PhoneService struct {
	store PhoneStore
}

func NewPhoneService(store PhoneStore) *PhoneService {
	return &PhoneService{store: store}
}

func validatePhone(p *models.Phone) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: model name is required", ErrValidation)
	}
	if strings.TrimSpace(p.Brand) == "" {
		return fmt.Errorf("%w: brand is required", ErrValidation)
	}
	if strings.TrimSpace(p.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if !validAmount(p.BuyingPrice) || p.BuyingPrice < 0 {
		return fmt.Errorf("%w: buying price must be a non-negative amount", ErrValidation)
	}
	if !validAmount(p.SellingPrice) || p.SellingPrice < 0 {
		return fmt.Errorf("%w: selling price must be a non-negative amount", ErrValidation)
	}
	if p.BatteryHealth < 0 || p.BatteryHealth > 100 {
		return fmt.Errorf("%w: battery health must be between 0 and 100", ErrValidation)
	}
	return nil
}

func (s *PhoneService) Create(p *models.Phone) (*models.Phone, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.CustomerName = strings.TrimSpace(p.CustomerName)
	p.IMEI = strings.TrimSpace(p.IMEI)
	if p.SaleDate.IsZero() {
		p.SaleDate = time.Now()
	}
	if err := validatePhone(p); err != nil {
		return nil, err
	}
	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate phone id: %w", err)
	}
	p.ID = id
	if err := s.store.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PhoneService) Update(p *models.Phone) (*models.Phone, error) {
	existing, err := s.store.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: phone %s", ErrNotFound, p.ID)
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.CustomerName = strings.TrimSpace(p.CustomerName)
	p.IMEI = strings.TrimSpace(p.IMEI)
	if p.SaleDate.IsZero() {
		p.SaleDate = existing.SaleDate
	}
	if err := validatePhone(p); err != nil {
		return nil, err
	}
	if err := s.store.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PhoneService) GetByID(id string) (*models.Phone, error) {
	p, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: phone %s", ErrNotFound, id)
	}
	return p, nil
}

func (s *PhoneService) List() ([]*models.Phone, error) {
	return s.store.List()
}

func (s *PhoneService) Delete(id string) error {
	return s.store.Delete(id)
}
