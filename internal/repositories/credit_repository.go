package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"telshop/internal/models"
	"telshop/internal/services"
)

type CreditRepository struct {
	db *sql.DB
}

func NewCreditRepository(db *sql.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) CreateClient(c *models.CreditClient) error {
	const q = `
                INSERT INTO credit_clients (id, name, phone, total_debt, amount_paid, remaining_balance, payment_due_date)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
        `
	if _, err := r.db.Exec(q, c.ID, c.Name, c.Phone, c.TotalDebt, c.AmountPaid, c.RemainingBalance, nullTime(c.PaymentDueDate)); err != nil {
		return fmt.Errorf("create credit client: %w", err)
	}
	return nil
}

func (r *CreditRepository) UpdateClient(c *models.CreditClient) error {
	const q = `
                UPDATE credit_clients
                SET name=$1, phone=$2, total_debt=$3, remaining_balance=$4, payment_due_date=$5
                WHERE id=$6
        `
	if _, err := r.db.Exec(q, c.Name, c.Phone, c.TotalDebt, c.RemainingBalance, nullTime(c.PaymentDueDate), c.ID); err != nil {
		return fmt.Errorf("update credit client: %w", err)
	}
	return nil
}

func (r *CreditRepository) GetClient(id string) (*models.CreditClient, error) {
	const q = `
                SELECT id, name, phone, total_debt, amount_paid, remaining_balance, payment_due_date
                FROM credit_clients
                WHERE id=$1
        `
	var c models.CreditClient
	var due sql.NullTime
	if err := r.db.QueryRow(q, id).Scan(&c.ID, &c.Name, &c.Phone, &c.TotalDebt, &c.AmountPaid, &c.RemainingBalance, &due); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit client: %w", err)
	}
	if due.Valid {
		c.PaymentDueDate = &due.Time
	}
	return &c, nil
}

func (r *CreditRepository) ListClients() ([]*models.CreditClient, error) {
	const q = `
                SELECT id, name, phone, total_debt, amount_paid, remaining_balance, payment_due_date
                FROM credit_clients
                ORDER BY remaining_balance DESC
        `
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list credit clients: %w", err)
	}
	defer rows.Close()

	var res []*models.CreditClient
	for rows.Next() {
		var c models.CreditClient
		var due sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.TotalDebt, &c.AmountPaid, &c.RemainingBalance, &due); err != nil {
			return nil, err
		}
		if due.Valid {
			c.PaymentDueDate = &due.Time
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

// DeleteClient removes the client row; the payments go with it via
// ON DELETE CASCADE, so the history can never outlive the client.
func (r *CreditRepository) DeleteClient(id string) error {
	if _, err := r.db.Exec(`DELETE FROM credit_clients WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete credit client: %w", err)
	}
	return nil
}

// InsertPayment runs one transaction: lock the client row, write the payment
// and the moved balances together. Two terminals posting payments for the
// same client serialize on the row lock instead of losing an increment.
func (r *CreditRepository) InsertPayment(clientID string, p *models.Payment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin add payment: %w", err)
	}
	defer tx.Rollback()

	var c models.CreditClient
	err = tx.QueryRow(`SELECT total_debt, amount_paid FROM credit_clients WHERE id=$1 FOR UPDATE`, clientID).
		Scan(&c.TotalDebt, &c.AmountPaid)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("add payment: %w: client %s", services.ErrNotFound, clientID)
		}
		return fmt.Errorf("add payment: lock client: %w", err)
	}
	c.ApplyPayment(p.Amount)

	const insert = `
                INSERT INTO credit_payments (id, client_id, paid_at, amount, notes)
                VALUES ($1, $2, $3, $4, $5)
        `
	if _, err := tx.Exec(insert, p.ID, clientID, p.Date, p.Amount, p.Notes); err != nil {
		return fmt.Errorf("add payment: insert: %w", err)
	}

	const update = `
                UPDATE credit_clients SET amount_paid=$1, remaining_balance=$2 WHERE id=$3
        `
	if _, err := tx.Exec(update, c.AmountPaid, c.RemainingBalance, clientID); err != nil {
		return fmt.Errorf("add payment: update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add payment: commit: %w", err)
	}
	return nil
}

func (r *CreditRepository) GetPayment(clientID, paymentID string) (*models.Payment, error) {
	const q = `
                SELECT id, client_id, paid_at, amount, notes
                FROM credit_payments
                WHERE client_id=$1 AND id=$2
        `
	var p models.Payment
	if err := r.db.QueryRow(q, clientID, paymentID).Scan(&p.ID, &p.ClientID, &p.Date, &p.Amount, &p.Notes); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// PaymentsPage returns up to limit payments newest first, resuming strictly
// after the cursor. Ordering is (paid_at, id) descending so ties on paid_at
// still page exactly.
func (r *CreditRepository) PaymentsPage(clientID string, cursor *services.PaymentCursor, limit int) ([]*models.Payment, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor == nil {
		const q = `
                        SELECT id, client_id, paid_at, amount, notes
                        FROM credit_payments
                        WHERE client_id=$1
                        ORDER BY paid_at DESC, id DESC
                        LIMIT $2
                `
		rows, err = r.db.Query(q, clientID, limit)
	} else {
		const q = `
                        SELECT id, client_id, paid_at, amount, notes
                        FROM credit_payments
                        WHERE client_id=$1 AND (paid_at < $2 OR (paid_at = $2 AND id < $3))
                        ORDER BY paid_at DESC, id DESC
                        LIMIT $4
                `
		rows, err = r.db.Query(q, clientID, cursor.Date, cursor.ID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("page payments: %w", err)
	}
	defer rows.Close()

	var res []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Date, &p.Amount, &p.Notes); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *CreditRepository) SumRemainingBalances() (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(remaining_balance), 0) FROM credit_clients`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum remaining balances: %w", err)
	}
	return total, nil
}

func (r *CreditRepository) OverdueClients(now time.Time) ([]*models.CreditClient, error) {
	const q = `
                SELECT id, name, phone, total_debt, amount_paid, remaining_balance, payment_due_date
                FROM credit_clients
                WHERE remaining_balance > 0 AND payment_due_date IS NOT NULL AND payment_due_date <= $1
                ORDER BY payment_due_date
        `
	rows, err := r.db.Query(q, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue clients: %w", err)
	}
	defer rows.Close()

	var res []*models.CreditClient
	for rows.Next() {
		var c models.CreditClient
		var due sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.TotalDebt, &c.AmountPaid, &c.RemainingBalance, &due); err != nil {
			return nil, err
		}
		if due.Valid {
			c.PaymentDueDate = &due.Time
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
