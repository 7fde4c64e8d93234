package models

import "time"

// CreditClient is a debtor tracked for store credit.
// Invariant: RemainingBalance == TotalDebt - AmountPaid after every
// committed mutation.
type CreditClient struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	TotalDebt        float64    `json:"totalDebt"`
	AmountPaid       float64    `json:"amountPaid"`
	RemainingBalance float64    `json:"remainingBalance"`
	PaymentDueDate   *time.Time `json:"paymentDueDate,omitempty"`
}

// Recalculate restores the derived balance after TotalDebt or AmountPaid
// changed. A balance below zero means the client overpaid and is in credit.
func (c *CreditClient) Recalculate() {
	c.RemainingBalance = Round2(c.TotalDebt - c.AmountPaid)
}

// ApplyPayment adds one repayment to the running totals.
func (c *CreditClient) ApplyPayment(amount float64) {
	c.AmountPaid = Round2(c.AmountPaid + amount)
	c.Recalculate()
}

// Payment is one recorded partial repayment. Immutable once written; removed
// only when the owning client is deleted.
type Payment struct {
	ID       string    `json:"id"`
	ClientID string    `json:"-"`
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Notes    string    `json:"notes,omitempty"`
}
