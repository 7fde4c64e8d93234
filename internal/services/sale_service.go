package services

import (
	"fmt"
	"strings"
	"time"

	"telshop/internal/models"
	"telshop/internal/utils"
)

type SaleStore interface {
	Create(sale *models.Sale) error
	List(limit, offset int) ([]*models.Sale, error)
	GetByID(id string) (*models.Sale, error)
}

type SaleService struct {
	store SaleStore
}

func NewSaleService(store SaleStore) *SaleService {
	return &SaleService{store: store}
}

// Create records a sale. The total is computed here; the stock movement
// happens inside the store transaction, so an insufficient-stock failure
// leaves nothing recorded.
func (s *SaleService) Create(items []models.SaleItem) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item", ErrValidation)
	}
	total := 0.0
	for i := range items {
		item := &items[i]
		item.Name = strings.TrimSpace(item.Name)
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: sale item is missing a product", ErrValidation)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if !validAmount(item.UnitPrice) || item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price must be a non-negative amount", ErrValidation)
		}
		total += item.Subtotal()
	}

	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate sale id: %w", err)
	}
	sale := &models.Sale{
		ID:    id,
		Date:  time.Now(),
		Items: items,
		Total: models.Round2(total),
	}
	if err := s.store.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *SaleService) List(limit, offset int) ([]*models.Sale, error) {
	return s.store.List(limit, offset)
}

func (s *SaleService) GetByID(id string) (*models.Sale, error) {
	sale, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: sale %s", ErrNotFound, id)
	}
	return sale, nil
}
