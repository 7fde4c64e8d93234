package services

import (
	"testing"
	"time"
)

type fixedRevenue struct{ revenue, profit float64 }

func (f fixedRevenue) RevenueAndProfitSince(time.Time) (float64, float64, error) {
	return f.revenue, f.profit, nil
}

type fixedExpenses float64

func (f fixedExpenses) TotalSince(time.Time) (float64, error) { return float64(f), nil }

type fixedInventory struct {
	value    float64
	lowStock int
}

func (f fixedInventory) InventoryValue() (float64, error) { return f.value, nil }
func (f fixedInventory) LowStockCount() (int, error)      { return f.lowStock, nil }

type fixedCredit float64

func (f fixedCredit) SumRemainingBalances() (float64, error) { return float64(f), nil }

type fixedPayables float64

func (f fixedPayables) TotalUnpaid() (float64, error) { return float64(f), nil }

func TestReportSummary(t *testing.T) {
	svc := NewReportService(
		fixedRevenue{revenue: 12000, profit: 3000},
		fixedRevenue{revenue: 8000, profit: 1500},
		fixedExpenses(2500),
		fixedInventory{value: 45000, lowStock: 3},
		fixedCredit(1850.5),
		fixedPayables(4200),
	)

	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Summary(since)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if got.Revenue != 20000 {
		t.Errorf("revenue=%.2f, want 20000 (sales + phones)", got.Revenue)
	}
	if got.Profit != 4500 {
		t.Errorf("profit=%.2f, want 4500", got.Profit)
	}
	if got.Expenses != 2500 {
		t.Errorf("expenses=%.2f, want 2500", got.Expenses)
	}
	if got.InventoryValue != 45000 {
		t.Errorf("inventory=%.2f, want 45000", got.InventoryValue)
	}
	if got.LowStockCount != 3 {
		t.Errorf("lowStock=%d, want 3", got.LowStockCount)
	}
	if got.OutstandingCredit != 1850.5 {
		t.Errorf("credit=%.2f, want 1850.5", got.OutstandingCredit)
	}
	if got.UnpaidSuppliers != 4200 {
		t.Errorf("payables=%.2f, want 4200", got.UnpaidSuppliers)
	}
	if !got.Since.Equal(since) {
		t.Errorf("since=%v, want %v", got.Since, since)
	}
}
