package models

import "testing"

func TestApplyPaymentKeepsBalanceDerived(t *testing.T) {
	c := &CreditClient{TotalDebt: 1000}
	c.Recalculate()
	if c.RemainingBalance != 1000 {
		t.Fatalf("balance=%.2f, want 1000", c.RemainingBalance)
	}

	c.ApplyPayment(400)
	if c.AmountPaid != 400 || c.RemainingBalance != 600 {
		t.Errorf("after 400: paid=%.2f balance=%.2f", c.AmountPaid, c.RemainingBalance)
	}

	c.ApplyPayment(600)
	if c.RemainingBalance != 0 {
		t.Errorf("after full repayment: balance=%.2f, want 0", c.RemainingBalance)
	}

	c.ApplyPayment(50)
	if c.RemainingBalance != -50 {
		t.Errorf("overpayment: balance=%.2f, want -50", c.RemainingBalance)
	}
}

func TestApplyPaymentRoundsCents(t *testing.T) {
	c := &CreditClient{TotalDebt: 10}
	c.Recalculate()
	// 0.1 + 0.2 style drift must not leak into the stored balance
	c.ApplyPayment(0.1)
	c.ApplyPayment(0.2)
	if c.AmountPaid != 0.3 {
		t.Errorf("paid=%v, want 0.3", c.AmountPaid)
	}
	if c.RemainingBalance != 9.7 {
		t.Errorf("balance=%v, want 9.7", c.RemainingBalance)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.234, 1.23},
		{1.236, 1.24},
		{-1.554, -1.55},
		{100, 100},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
}
