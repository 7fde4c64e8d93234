package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/pdf"
	"telshop/internal/services"
)

type memCreditStore struct {
	clients  map[string]*models.CreditClient
	payments map[string][]*models.Payment
	failing  bool
}

func newMemCreditStore() *memCreditStore {
	return &memCreditStore{
		clients:  map[string]*models.CreditClient{},
		payments: map[string][]*models.Payment{},
	}
}

var errStoreDown = errors.New("store down")

func (m *memCreditStore) GetClient(id string) (*models.CreditClient, error) {
	if m.failing {
		return nil, errStoreDown
	}
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCreditStore) ListClients() ([]*models.CreditClient, error) {
	if m.failing {
		return nil, errStoreDown
	}
	var res []*models.CreditClient
	for _, c := range m.clients {
		cp := *c
		res = append(res, &cp)
	}
	return res, nil
}

func (m *memCreditStore) CreateClient(c *models.CreditClient) error {
	cp := *c
	m.clients[c.ID] = &cp
	return nil
}

func (m *memCreditStore) UpdateClient(c *models.CreditClient) error {
	cp := *c
	m.clients[c.ID] = &cp
	return nil
}

func (m *memCreditStore) DeleteClient(id string) error {
	delete(m.clients, id)
	delete(m.payments, id)
	return nil
}

func (m *memCreditStore) InsertPayment(clientID string, p *models.Payment) error {
	c, ok := m.clients[clientID]
	if !ok {
		return fmt.Errorf("%w: client %s", services.ErrNotFound, clientID)
	}
	c.ApplyPayment(p.Amount)
	pp := *p
	m.payments[clientID] = append(m.payments[clientID], &pp)
	return nil
}

func (m *memCreditStore) GetPayment(clientID, paymentID string) (*models.Payment, error) {
	for _, p := range m.payments[clientID] {
		if p.ID == paymentID {
			pp := *p
			return &pp, nil
		}
	}
	return nil, nil
}

func (m *memCreditStore) PaymentsPage(clientID string, cursor *services.PaymentCursor, limit int) ([]*models.Payment, error) {
	if m.failing {
		return nil, errStoreDown
	}
	all := append([]*models.Payment(nil), m.payments[clientID]...)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})
	var res []*models.Payment
	for _, p := range all {
		if cursor != nil {
			ok := p.Date.Before(cursor.Date) || (p.Date.Equal(cursor.Date) && p.ID < cursor.ID)
			if !ok {
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

func (m *memCreditStore) SumRemainingBalances() (float64, error) {
	total := 0.0
	for _, c := range m.clients {
		total += c.RemainingBalance
	}
	return total, nil
}

func (m *memCreditStore) OverdueClients(time.Time) ([]*models.CreditClient, error) {
	return nil, nil
}

type stubPDF struct{}

func (stubPDF) GenerateStatement(pdf.StatementData) (string, error)   { return "", nil }
func (stubPDF) GenerateWarrantySlip(pdf.WarrantyData) (string, error) { return "", nil }

func newCreditRouter(store *memCreditStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCreditHandler(services.NewCreditService(store), stubPDF{})
	r := gin.New()
	r.POST("/credits/clients", h.CreateClient)
	r.GET("/credits/clients", h.ListClients)
	r.GET("/credits/clients/:id", h.GetClient)
	r.PUT("/credits/clients/:id", h.UpdateClient)
	r.DELETE("/credits/clients/:id", h.DeleteClient)
	r.POST("/credits/clients/:id/payments", h.AddPayment)
	r.GET("/credits/clients/:id/payments", h.PaymentHistory)
	r.GET("/credits/summary", h.Summary)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateClientEndpoint(t *testing.T) {
	r := newCreditRouter(newMemCreditStore())

	w := doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{
		"name": "Karim", "phone": "0612345678", "totalDebt": 1000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RemainingBalance != 1000 {
		t.Errorf("balance=%.2f, want 1000", got.RemainingBalance)
	}
}

func TestCreateClientMissingFields(t *testing.T) {
	r := newCreditRouter(newMemCreditStore())
	w := doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{"name": "Karim"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status=%d, want 400", w.Code)
	}
}

func TestGetClientNotFound(t *testing.T) {
	r := newCreditRouter(newMemCreditStore())
	w := doJSON(t, r, http.MethodGet, "/credits/clients/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status=%d, want 404", w.Code)
	}
}

func TestAddPaymentEndpoint(t *testing.T) {
	store := newMemCreditStore()
	r := newCreditRouter(store)

	w := doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{
		"name": "Karim", "phone": "0612345678", "totalDebt": 1000,
	})
	var client models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/credits/clients/"+client.ID+"/payments", gin.H{"amount": 400})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/credits/clients/"+client.ID, nil)
	var got models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RemainingBalance != 600 {
		t.Errorf("balance=%.2f, want 600", got.RemainingBalance)
	}
}

func TestAddPaymentBadAmount(t *testing.T) {
	store := newMemCreditStore()
	r := newCreditRouter(store)
	w := doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{
		"name": "Karim", "phone": "0612345678", "totalDebt": 100,
	})
	var client models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodPost, "/credits/clients/"+client.ID+"/payments", gin.H{"amount": -5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status=%d, want 400", w.Code)
	}
}

func TestDeleteClientEndpoint(t *testing.T) {
	store := newMemCreditStore()
	r := newCreditRouter(store)
	w := doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{
		"name": "Karim", "phone": "0612345678", "totalDebt": 100,
	})
	var client models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, "/credits/clients/"+client.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status=%d, want 204", w.Code)
	}
	// unknown id deletes quietly too
	w = doJSON(t, r, http.MethodDelete, "/credits/clients/"+client.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("repeat delete status=%d, want 204", w.Code)
	}
}

func TestListClientsDegradesToEmpty(t *testing.T) {
	store := newMemCreditStore()
	store.failing = true
	r := newCreditRouter(store)

	w := doJSON(t, r, http.MethodGet, "/credits/clients", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200 even when the store fails", w.Code)
	}
	var got []*models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d clients, want empty list", len(got))
	}
}

func TestPaymentHistoryDegradesToEmpty(t *testing.T) {
	store := newMemCreditStore()
	store.failing = true
	r := newCreditRouter(store)

	w := doJSON(t, r, http.MethodGet, "/credits/clients/any/payments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200 even when the store fails", w.Code)
	}
	var page services.PaymentPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Payments) != 0 || page.NextCursor != nil {
		t.Errorf("want an empty page, got %+v", page)
	}
}

func TestPaymentHistoryCursorRoundTrip(t *testing.T) {
	store := newMemCreditStore()
	r := newCreditRouter(store)
	w := doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{
		"name": "Karim", "phone": "0612345678", "totalDebt": 500,
	})
	var client models.CreditClient
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		p := &models.Payment{ID: fmt.Sprintf("p%02d", i), ClientID: client.ID, Date: base.Add(time.Duration(i) * time.Minute), Amount: 5}
		if err := store.InsertPayment(client.ID, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w = doJSON(t, r, http.MethodGet, "/credits/clients/"+client.ID+"/payments", nil)
	var first services.PaymentPage
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(first.Payments) != services.DefaultPaymentPageSize || first.NextCursor == nil {
		t.Fatalf("first page: %d rows, cursor=%v", len(first.Payments), first.NextCursor)
	}

	next := fmt.Sprintf("/credits/clients/%s/payments?cursor=%s&cursor_id=%s",
		client.ID, first.NextCursor.Date.Format(time.RFC3339Nano), first.NextCursor.ID)
	w = doJSON(t, r, http.MethodGet, next, nil)
	var second services.PaymentPage
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(second.Payments) != 5 || second.NextCursor != nil {
		t.Errorf("second page: %d rows, cursor=%v, want 5 rows and no cursor", len(second.Payments), second.NextCursor)
	}
}

func TestPaymentHistoryBadCursor(t *testing.T) {
	r := newCreditRouter(newMemCreditStore())
	w := doJSON(t, r, http.MethodGet, "/credits/clients/any/payments?cursor=notatime", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status=%d, want 400", w.Code)
	}
}

func TestCreditSummaryEndpoint(t *testing.T) {
	store := newMemCreditStore()
	r := newCreditRouter(store)
	doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{"name": "A", "phone": "061", "totalDebt": 300})
	doJSON(t, r, http.MethodPost, "/credits/clients", gin.H{"name": "B", "phone": "062", "totalDebt": 200})

	w := doJSON(t, r, http.MethodGet, "/credits/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		TotalOutstanding float64 `json:"totalOutstanding"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalOutstanding != 500 {
		t.Errorf("total=%.2f, want 500", got.TotalOutstanding)
	}
}
