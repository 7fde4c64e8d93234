package services

import (
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"telshop/internal/models"
)

// fakeCreditStore keeps the ledger in memory with the same contract as the
// SQL store: (nil, nil) lookups for missing rows, atomic InsertPayment.
type fakeCreditStore struct {
	clients  map[string]*models.CreditClient
	payments map[string][]*models.Payment
}

func newFakeCreditStore() *fakeCreditStore {
	return &fakeCreditStore{
		clients:  map[string]*models.CreditClient{},
		payments: map[string][]*models.Payment{},
	}
}

func (f *fakeCreditStore) GetClient(id string) (*models.CreditClient, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCreditStore) ListClients() ([]*models.CreditClient, error) {
	var res []*models.CreditClient
	for _, c := range f.clients {
		cp := *c
		res = append(res, &cp)
	}
	return res, nil
}

func (f *fakeCreditStore) CreateClient(c *models.CreditClient) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeCreditStore) UpdateClient(c *models.CreditClient) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeCreditStore) DeleteClient(id string) error {
	delete(f.clients, id)
	delete(f.payments, id)
	return nil
}

func (f *fakeCreditStore) InsertPayment(clientID string, p *models.Payment) error {
	c, ok := f.clients[clientID]
	if !ok {
		return fmt.Errorf("insert payment: %w: client %s", ErrNotFound, clientID)
	}
	c.ApplyPayment(p.Amount)
	pp := *p
	f.payments[clientID] = append(f.payments[clientID], &pp)
	return nil
}

func (f *fakeCreditStore) GetPayment(clientID, paymentID string) (*models.Payment, error) {
	for _, p := range f.payments[clientID] {
		if p.ID == paymentID {
			pp := *p
			return &pp, nil
		}
	}
	return nil, nil
}

func (f *fakeCreditStore) PaymentsPage(clientID string, cursor *PaymentCursor, limit int) ([]*models.Payment, error) {
	all := append([]*models.Payment(nil), f.payments[clientID]...)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})
	var res []*models.Payment
	for _, p := range all {
		if cursor != nil {
			after := p.Date.Before(cursor.Date) ||
				(p.Date.Equal(cursor.Date) && p.ID < cursor.ID)
			if !after {
				continue
			}
		}
		res = append(res, p)
		if len(res) == limit {
			break
		}
	}
	return res, nil
}

func (f *fakeCreditStore) SumRemainingBalances() (float64, error) {
	total := 0.0
	for _, c := range f.clients {
		total += c.RemainingBalance
	}
	return total, nil
}

func (f *fakeCreditStore) OverdueClients(now time.Time) ([]*models.CreditClient, error) {
	var res []*models.CreditClient
	for _, c := range f.clients {
		if c.RemainingBalance > 0 && c.PaymentDueDate != nil && !c.PaymentDueDate.After(now) {
			cp := *c
			res = append(res, &cp)
		}
	}
	return res, nil
}

func TestAddClientComputesBalance(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())

	client, err := svc.AddClient("Karim", "0612345678", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if client.TotalDebt != 1000 || client.AmountPaid != 0 || client.RemainingBalance != 1000 {
		t.Errorf("got debt=%.2f paid=%.2f balance=%.2f, want 1000/0/1000",
			client.TotalDebt, client.AmountPaid, client.RemainingBalance)
	}
	if client.ID == "" {
		t.Error("client id not assigned")
	}
}

func TestAddClientValidation(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())

	cases := []struct {
		name  string
		cname string
		phone string
		debt  float64
	}{
		{"empty name", "  ", "0612345678", 100},
		{"empty phone", "Karim", "", 100},
		{"negative debt", "Karim", "0612345678", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddClient(tc.cname, tc.phone, tc.debt, nil)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestAddPaymentMovesBalances(t *testing.T) {
	store := newFakeCreditStore()
	svc := NewCreditService(store)

	client, err := svc.AddClient("Karim", "0612345678", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}

	if _, err := svc.AddPayment(client.ID, 400, "premier versement", ""); err != nil {
		t.Fatalf("AddPayment 400: %v", err)
	}
	got, err := svc.GetClient(client.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.AmountPaid != 400 || got.RemainingBalance != 600 {
		t.Errorf("after 400: paid=%.2f balance=%.2f, want 400/600", got.AmountPaid, got.RemainingBalance)
	}

	if _, err := svc.AddPayment(client.ID, 600, "", ""); err != nil {
		t.Fatalf("AddPayment 600: %v", err)
	}
	got, err = svc.GetClient(client.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.AmountPaid != 1000 || got.RemainingBalance != 0 {
		t.Errorf("after 600: paid=%.2f balance=%.2f, want 1000/0", got.AmountPaid, got.RemainingBalance)
	}
	if got.RemainingBalance != models.Round2(got.TotalDebt-got.AmountPaid) {
		t.Errorf("balance invariant broken: %.2f != %.2f - %.2f",
			got.RemainingBalance, got.TotalDebt, got.AmountPaid)
	}
}

func TestAddPaymentRejectsNonPositive(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	client, err := svc.AddClient("Karim", "0612345678", 500, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}

	for _, amount := range []float64{0, -50} {
		if _, err := svc.AddPayment(client.ID, amount, "", ""); !errors.Is(err, ErrValidation) {
			t.Errorf("amount %.2f: got %v, want ErrValidation", amount, err)
		}
	}

	got, err := svc.GetClient(client.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.AmountPaid != 0 || got.RemainingBalance != 500 {
		t.Errorf("rejected payment touched the balance: paid=%.2f balance=%.2f", got.AmountPaid, got.RemainingBalance)
	}
	page, err := svc.PaymentHistory(client.ID, nil, 0)
	if err != nil {
		t.Fatalf("PaymentHistory: %v", err)
	}
	if len(page.Payments) != 0 {
		t.Errorf("rejected payment was recorded: %d rows", len(page.Payments))
	}
}

func TestAddPaymentUnknownClient(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	if _, err := svc.AddPayment("missing", 100, "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestAddPaymentIdempotentRetry(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	client, err := svc.AddClient("Karim", "0612345678", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}

	first, err := svc.AddPayment(client.ID, 300, "retry me", "pay-1")
	if err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	second, err := svc.AddPayment(client.ID, 300, "retry me", "pay-1")
	if err != nil {
		t.Fatalf("AddPayment retry: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("retry returned a different payment: %s vs %s", second.ID, first.ID)
	}

	got, err := svc.GetClient(client.ID)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if got.AmountPaid != 300 || got.RemainingBalance != 700 {
		t.Errorf("retry double-charged: paid=%.2f balance=%.2f, want 300/700", got.AmountPaid, got.RemainingBalance)
	}
}

func TestPaymentHistoryPaging(t *testing.T) {
	store := newFakeCreditStore()
	svc := NewCreditService(store)
	client, err := svc.AddClient("Karim", "0612345678", 5000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		p := &models.Payment{
			ID:       fmt.Sprintf("p%02d", i),
			ClientID: client.ID,
			Date:     base.Add(time.Duration(i) * time.Minute),
			Amount:   10,
		}
		if err := store.InsertPayment(client.ID, p); err != nil {
			t.Fatalf("seed payment %d: %v", i, err)
		}
	}

	first, err := svc.PaymentHistory(client.ID, nil, 0)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Payments) != DefaultPaymentPageSize {
		t.Fatalf("first page has %d rows, want %d", len(first.Payments), DefaultPaymentPageSize)
	}
	if first.NextCursor == nil {
		t.Fatal("first page has no next cursor")
	}
	if first.Payments[0].ID != "p19" {
		t.Errorf("first row is %s, want newest p19", first.Payments[0].ID)
	}

	second, err := svc.PaymentHistory(client.ID, first.NextCursor, 0)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Payments) != 5 {
		t.Errorf("second page has %d rows, want 5", len(second.Payments))
	}
	if second.NextCursor != nil {
		t.Error("last page still advertises a next cursor")
	}

	seen := map[string]bool{}
	for _, p := range append(first.Payments, second.Payments...) {
		if seen[p.ID] {
			t.Errorf("payment %s paged twice", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != 20 {
		t.Errorf("paged %d distinct payments, want 20", len(seen))
	}
}

func TestPaymentHistorySameTimestamp(t *testing.T) {
	store := newFakeCreditStore()
	svc := NewCreditService(store)
	client, err := svc.AddClient("Karim", "0612345678", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}

	// all rows share paid_at; only the id breaks the tie
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		p := &models.Payment{ID: fmt.Sprintf("p%d", i), ClientID: client.ID, Date: when, Amount: 10}
		if err := store.InsertPayment(client.ID, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	first, err := svc.PaymentHistory(client.ID, nil, 3)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	second, err := svc.PaymentHistory(client.ID, first.NextCursor, 3)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	total := len(first.Payments) + len(second.Payments)
	if total != 5 {
		t.Errorf("paged %d rows, want 5", total)
	}
	seen := map[string]bool{}
	for _, p := range append(first.Payments, second.Payments...) {
		if seen[p.ID] {
			t.Errorf("payment %s paged twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestPaymentHistoryPageSizeCap(t *testing.T) {
	store := newFakeCreditStore()
	svc := NewCreditService(store)
	client, err := svc.AddClient("Karim", "0612345678", 0, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		p := &models.Payment{ID: fmt.Sprintf("p%03d", i), ClientID: client.ID, Date: base.Add(time.Duration(i) * time.Second), Amount: 1}
		if err := store.InsertPayment(client.ID, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	page, err := svc.PaymentHistory(client.ID, nil, 1000)
	if err != nil {
		t.Fatalf("PaymentHistory: %v", err)
	}
	if len(page.Payments) != 100 {
		t.Errorf("oversized request returned %d rows, want the 100 cap", len(page.Payments))
	}
}

func TestPaymentHistoryUnknownClient(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	page, err := svc.PaymentHistory("missing", nil, 0)
	if err != nil {
		t.Fatalf("PaymentHistory: %v", err)
	}
	if page.Payments == nil || len(page.Payments) != 0 {
		t.Errorf("want empty page, got %#v", page.Payments)
	}
	if page.NextCursor != nil {
		t.Error("empty page advertises a next cursor")
	}
}

func TestDeleteClientRemovesHistory(t *testing.T) {
	store := newFakeCreditStore()
	svc := NewCreditService(store)
	client, err := svc.AddClient("Karim", "0612345678", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, err := svc.AddPayment(client.ID, 200, "", ""); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}

	if err := svc.DeleteClient(client.ID); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if _, err := svc.GetClient(client.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted client still readable: %v", err)
	}
	page, err := svc.PaymentHistory(client.ID, nil, 0)
	if err != nil {
		t.Fatalf("PaymentHistory: %v", err)
	}
	if len(page.Payments) != 0 {
		t.Errorf("history survived the delete: %d rows", len(page.Payments))
	}

	// deleting again stays a no-op success
	if err := svc.DeleteClient(client.ID); err != nil {
		t.Errorf("repeat delete: %v", err)
	}
}

func TestUpdateClientBelowAmountPaid(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	client, err := svc.AddClient("Karim", "0612345678", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, err := svc.AddPayment(client.ID, 800, "", ""); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}

	updated, err := svc.UpdateClient(client.ID, "Karim", "0612345678", 500, nil)
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if updated.RemainingBalance != -300 {
		t.Errorf("balance=%.2f, want -300 (client in credit)", updated.RemainingBalance)
	}
	if updated.AmountPaid != 800 {
		t.Errorf("update clobbered amountPaid: %.2f", updated.AmountPaid)
	}
}

func TestTotalOutstanding(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	a, err := svc.AddClient("A", "061", 1000, nil)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, err := svc.AddClient("B", "062", 250.50, nil); err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, err := svc.AddPayment(a.ID, 400, "", ""); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}

	total, err := svc.TotalOutstanding()
	if err != nil {
		t.Fatalf("TotalOutstanding: %v", err)
	}
	if total != 850.50 {
		t.Errorf("total=%.2f, want 850.50", total)
	}
}

func TestOverdueClients(t *testing.T) {
	svc := NewCreditService(newFakeCreditStore())
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	late, err := svc.AddClient("Late", "061", 500, &past)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, err := svc.AddClient("OnTime", "062", 500, &future); err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	settled, err := svc.AddClient("Settled", "063", 200, &past)
	if err != nil {
		t.Fatalf("AddClient: %v", err)
	}
	if _, err := svc.AddPayment(settled.ID, 200, "", ""); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}

	overdue, err := svc.OverdueClients(now)
	if err != nil {
		t.Fatalf("OverdueClients: %v", err)
	}
	if len(overdue) != 1 || overdue[0].ID != late.ID {
		t.Errorf("got %d overdue clients, want exactly the late one", len(overdue))
	}
}
