package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"telshop/internal/models"
)

type SupplierRepository struct {
	db *sql.DB
}

func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

const supplierCols = `id, name, amount_owed, due_date, is_paid, paid_at`

func scanSupplier(row interface{ Scan(...any) error }) (*models.Supplier, error) {
	var s models.Supplier
	var due, paidAt sql.NullTime
	if err := row.Scan(&s.ID, &s.Name, &s.AmountOwed, &due, &s.IsPaid, &paidAt); err != nil {
		return nil, err
	}
	if due.Valid {
		s.DueDate = &due.Time
	}
	if paidAt.Valid {
		s.PaidAt = &paidAt.Time
	}
	return &s, nil
}

func (r *SupplierRepository) Create(s *models.Supplier) error {
	const q = `
                INSERT INTO suppliers (id, name, amount_owed, due_date, is_paid, paid_at)
                VALUES ($1, $2, $3, $4, $5, $6)
        `
	if _, err := r.db.Exec(q, s.ID, s.Name, s.AmountOwed, nullTime(s.DueDate), s.IsPaid, nullTime(s.PaidAt)); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) Update(s *models.Supplier) error {
	const q = `
                UPDATE suppliers
                SET name=$1, amount_owed=$2, due_date=$3
                WHERE id=$4
        `
	if _, err := r.db.Exec(q, s.Name, s.AmountOwed, nullTime(s.DueDate), s.ID); err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) GetByID(id string) (*models.Supplier, error) {
	s, err := scanSupplier(r.db.QueryRow(`SELECT `+supplierCols+` FROM suppliers WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// List returns unpaid suppliers first, each group ordered by due date.
func (r *SupplierRepository) List() ([]*models.Supplier, error) {
	const q = `
                SELECT ` + supplierCols + `
                FROM suppliers
                ORDER BY is_paid, due_date NULLS LAST
        `
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var res []*models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// MarkPaid flips the paid flag in the store and returns the stored row, or
// (nil, nil) when the supplier does not exist. Callers only update their
// view from the returned value, never ahead of it.
func (r *SupplierRepository) MarkPaid(id string, paidAt time.Time) (*models.Supplier, error) {
	const q = `
                UPDATE suppliers
                SET is_paid = TRUE, paid_at = $2
                WHERE id = $1
                RETURNING ` + supplierCols + `
        `
	s, err := scanSupplier(r.db.QueryRow(q, id, paidAt))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("mark supplier paid: %w", err)
	}
	return s, nil
}

func (r *SupplierRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM suppliers WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepository) TotalUnpaid() (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(amount_owed), 0) FROM suppliers WHERE NOT is_paid`).Scan(&total); err != nil {
		return 0, fmt.Errorf("total unpaid suppliers: %w", err)
	}
	return total, nil
}
