package services

import (
	"time"

	"telshop/internal/models"
)

// Aggregate sources the dashboard pulls from. The sums run in the store, not
// over records fetched into memory.
type RevenueSource interface {
	RevenueAndProfitSince(since time.Time) (revenue, profit float64, err error)
}

type ExpenseSource interface {
	TotalSince(since time.Time) (float64, error)
}

type InventorySource interface {
	InventoryValue() (float64, error)
	LowStockCount() (int, error)
}

type CreditSource interface {
	SumRemainingBalances() (float64, error)
}

type PayablesSource interface {
	TotalUnpaid() (float64, error)
}

type DashboardSummary struct {
	Since             time.Time `json:"since"`
	Revenue           float64   `json:"revenue"`
	Profit            float64   `json:"profit"`
	Expenses          float64   `json:"expenses"`
	InventoryValue    float64   `json:"inventory_value"`
	LowStockCount     int       `json:"low_stock_count"`
	OutstandingCredit float64   `json:"outstanding_credit"`
	UnpaidSuppliers   float64   `json:"unpaid_suppliers"`
}

type ReportService struct {
	sales     RevenueSource
	phones    RevenueSource
	expenses  ExpenseSource
	inventory InventorySource
	credit    CreditSource
	payables  PayablesSource
}

func NewReportService(sales, phones RevenueSource, expenses ExpenseSource, inventory InventorySource, credit CreditSource, payables PayablesSource) *ReportService {
	return &ReportService{
		sales:     sales,
		phones:    phones,
		expenses:  expenses,
		inventory: inventory,
		credit:    credit,
		payables:  payables,
	}
}

// Summary aggregates the books since the given instant. Revenue and profit
// combine regular sales and phone resales.
func (s *ReportService) Summary(since time.Time) (*DashboardSummary, error) {
	salesRevenue, salesProfit, err := s.sales.RevenueAndProfitSince(since)
	if err != nil {
		return nil, err
	}
	phoneRevenue, phoneProfit, err := s.phones.RevenueAndProfitSince(since)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.TotalSince(since)
	if err != nil {
		return nil, err
	}
	inventoryValue, err := s.inventory.InventoryValue()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.inventory.LowStockCount()
	if err != nil {
		return nil, err
	}
	outstanding, err := s.credit.SumRemainingBalances()
	if err != nil {
		return nil, err
	}
	unpaid, err := s.payables.TotalUnpaid()
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Since:             since,
		Revenue:           models.Round2(salesRevenue + phoneRevenue),
		Profit:            models.Round2(salesProfit + phoneProfit),
		Expenses:          models.Round2(expenses),
		InventoryValue:    models.Round2(inventoryValue),
		LowStockCount:     lowStock,
		OutstandingCredit: models.Round2(outstanding),
		UnpaidSuppliers:   models.Round2(unpaid),
	}, nil
}
