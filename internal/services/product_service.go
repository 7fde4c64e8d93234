package services

import (
	"fmt"
	"strings"

	"telshop/internal/models"
	"telshop/internal/utils"
)

type ProductStore interface {
	Create(p *models.Product) error
	Update(p *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetByBarcode(barcode string) (*models.Product, error)
	List() ([]*models.Product, error)
	ListLowStock() ([]*models.Product, error)
	Delete(id string) error
}

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !validAmount(p.BuyingPrice) || p.BuyingPrice < 0 {
		return fmt.Errorf("%w: buying price must be a non-negative amount", ErrValidation)
	}
	if !validAmount(p.SellingPrice) || p.SellingPrice < 0 {
		return fmt.Errorf("%w: selling price must be a non-negative amount", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}
	if p.LowStockThreshold < 0 {
		return fmt.Errorf("%w: low stock threshold cannot be negative", ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(p *models.Product) (*models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Barcode = strings.TrimSpace(p.Barcode)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate product id: %w", err)
	}
	p.ID = id
	if err := s.store.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(p *models.Product) (*models.Product, error) {
	existing, err := s.store.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, p.ID)
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Barcode = strings.TrimSpace(p.Barcode)
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.store.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) GetByID(id string) (*models.Product, error) {
	p, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	return p, nil
}

// GetByBarcode resolves a scanned code to a product. The scanning itself
// happens on the client; this is just the lookup.
func (s *ProductService) GetByBarcode(barcode string) (*models.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrValidation)
	}
	p, err := s.store.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: barcode %s", ErrNotFound, barcode)
	}
	return p, nil
}

func (s *ProductService) List() ([]*models.Product, error) {
	return s.store.List()
}

func (s *ProductService) ListLowStock() ([]*models.Product, error) {
	return s.store.ListLowStock()
}

func (s *ProductService) Delete(id string) error {
	return s.store.Delete(id)
}
