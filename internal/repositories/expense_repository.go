package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"telshop/internal/models"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseCols = `id, category, amount, spent_at, description`

func (r *ExpenseRepository) Create(e *models.Expense) error {
	const q = `
                INSERT INTO expenses (id, category, amount, spent_at, description)
                VALUES ($1, $2, $3, $4, $5)
        `
	if _, err := r.db.Exec(q, e.ID, e.Category, e.Amount, e.Date, e.Description); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Update(e *models.Expense) error {
	const q = `
                UPDATE expenses
                SET category=$1, amount=$2, spent_at=$3, description=$4
                WHERE id=$5
        `
	if _, err := r.db.Exec(q, e.Category, e.Amount, e.Date, e.Description, e.ID); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) GetByID(id string) (*models.Expense, error) {
	var e models.Expense
	if err := r.db.QueryRow(`SELECT `+expenseCols+` FROM expenses WHERE id=$1`, id).
		Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &e.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

func (r *ExpenseRepository) List() ([]*models.Expense, error) {
	rows, err := r.db.Query(`SELECT ` + expenseCols + ` FROM expenses ORDER BY spent_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var res []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &e.Description); err != nil {
			return nil, err
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}

func (r *ExpenseRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM expenses WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) TotalSince(since time.Time) (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE spent_at >= $1`, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("total expenses: %w", err)
	}
	return total, nil
}
