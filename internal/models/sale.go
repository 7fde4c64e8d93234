package models

import "time"

type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (i SaleItem) Subtotal() float64 {
	return Round2(float64(i.Quantity) * i.UnitPrice)
}

type Sale struct {
	ID    string     `json:"id"`
	Date  time.Time  `json:"date"`
	Items []SaleItem `json:"items"`
	Total float64    `json:"total"`
}
