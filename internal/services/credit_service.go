package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"telshop/internal/models"
	"telshop/internal/utils"
)

const DefaultPaymentPageSize = 15
const maxPaymentPageSize = 100

// PaymentCursor marks where the next page of payment history resumes. The
// id disambiguates payments sharing a timestamp, so pages never skip or
// repeat a row.
type PaymentCursor struct {
	Date time.Time `json:"date"`
	ID   string    `json:"id"`
}

type PaymentPage struct {
	Payments   []*models.Payment `json:"payments"`
	NextCursor *PaymentCursor    `json:"nextCursor"`
}

// CreditStore is the persistence contract of the ledger. Lookup methods
// return (nil, nil) when the record does not exist; InsertPayment must apply
// the payment row and the balance update as one atomic unit.
type CreditStore interface {
	GetClient(id string) (*models.CreditClient, error)
	ListClients() ([]*models.CreditClient, error)
	CreateClient(c *models.CreditClient) error
	UpdateClient(c *models.CreditClient) error
	DeleteClient(id string) error
	InsertPayment(clientID string, p *models.Payment) error
	GetPayment(clientID, paymentID string) (*models.Payment, error)
	PaymentsPage(clientID string, cursor *PaymentCursor, limit int) ([]*models.Payment, error)
	SumRemainingBalances() (float64, error)
	OverdueClients(now time.Time) ([]*models.CreditClient, error)
}

// CreditService owns client balances and payment history.
type CreditService struct {
	store CreditStore
}

func NewCreditService(store CreditStore) *CreditService {
	return &CreditService{store: store}
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s *CreditService) AddClient(name, phone string, totalDebt float64, dueDate *time.Time) (*models.CreditClient, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !validAmount(totalDebt) || totalDebt < 0 {
		return nil, fmt.Errorf("%w: total debt must be a non-negative amount", ErrValidation)
	}

	id, err := utils.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate client id: %w", err)
	}
	client := &models.CreditClient{
		ID:             id,
		Name:           name,
		Phone:          phone,
		TotalDebt:      models.Round2(totalDebt),
		AmountPaid:     0,
		PaymentDueDate: dueDate,
	}
	client.Recalculate()

	if err := s.store.CreateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient overwrites the editable fields and recomputes the balance,
// preserving the amount already paid. Lowering the debt below amountPaid
// leaves a negative balance: the client is in credit, not an error.
func (s *CreditService) UpdateClient(id, name, phone string, totalDebt float64, dueDate *time.Time) (*models.CreditClient, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if !validAmount(totalDebt) || totalDebt < 0 {
		return nil, fmt.Errorf("%w: total debt must be a non-negative amount", ErrValidation)
	}

	client, err := s.store.GetClient(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %s", ErrNotFound, id)
	}

	client.Name = name
	client.Phone = phone
	client.TotalDebt = models.Round2(totalDebt)
	client.PaymentDueDate = dueDate
	client.Recalculate()

	if err := s.store.UpdateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *CreditService) GetClient(id string) (*models.CreditClient, error) {
	client, err := s.store.GetClient(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %s", ErrNotFound, id)
	}
	return client, nil
}

func (s *CreditService) ListClients() ([]*models.CreditClient, error) {
	return s.store.ListClients()
}

// DeleteClient removes the client together with its payment history.
// Deleting an unknown id is a no-op success.
func (s *CreditService) DeleteClient(id string) error {
	return s.store.DeleteClient(id)
}

// AddPayment appends one repayment and moves the balances in the same store
// transaction. A caller-supplied paymentID makes retries idempotent: posting
// the same id twice returns the stored payment without charging again.
func (s *CreditService) AddPayment(clientID string, amount float64, notes, paymentID string) (*models.Payment, error) {
	if !validAmount(amount) || amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}

	client, err := s.store.GetClient(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client %s", ErrNotFound, clientID)
	}

	if paymentID != "" {
		existing, err := s.store.GetPayment(clientID, paymentID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	} else {
		paymentID, err = utils.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate payment id: %w", err)
		}
	}

	payment := &models.Payment{
		ID:       paymentID,
		ClientID: clientID,
		Date:     time.Now(),
		Amount:   models.Round2(amount),
		Notes:    strings.TrimSpace(notes),
	}
	if err := s.store.InsertPayment(clientID, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// PaymentHistory pages the client's payments newest first. A nil cursor
// means the first page; a nil NextCursor in the result means the last one.
// An unknown client yields an empty page, not an error.
func (s *CreditService) PaymentHistory(clientID string, cursor *PaymentCursor, pageSize int) (*PaymentPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPaymentPageSize
	}
	if pageSize > maxPaymentPageSize {
		pageSize = maxPaymentPageSize
	}

	payments, err := s.store.PaymentsPage(clientID, cursor, pageSize)
	if err != nil {
		return nil, err
	}
	page := &PaymentPage{Payments: payments}
	if page.Payments == nil {
		page.Payments = []*models.Payment{}
	}
	if len(payments) == pageSize {
		last := payments[len(payments)-1]
		page.NextCursor = &PaymentCursor{Date: last.Date, ID: last.ID}
	}
	return page, nil
}

// TotalOutstanding sums remaining balances over all clients. Negative
// balances (overpaid clients) subtract naturally.
func (s *CreditService) TotalOutstanding() (float64, error) {
	total, err := s.store.SumRemainingBalances()
	if err != nil {
		return 0, err
	}
	return models.Round2(total), nil
}

// OverdueClients lists clients still owing money past their due date.
func (s *CreditService) OverdueClients(now time.Time) ([]*models.CreditClient, error) {
	return s.store.OverdueClients(now)
}
