package models

import "time"

// Supplier is a payable: an amount the shop owes, optionally with a due date.
type Supplier struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	AmountOwed float64    `json:"amountOwed"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	IsPaid     bool       `json:"isPaid"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}
