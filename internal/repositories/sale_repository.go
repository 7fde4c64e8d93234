package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"telshop/internal/models"
	"telshop/internal/services"
)

type SaleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create writes the sale, its line items and the stock decrements in one
// transaction. The conditional UPDATE refuses to oversell: zero rows moved
// means another terminal got the stock first.
func (r *SaleRepository) Create(sale *models.Sale) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO sales (id, sold_at, total) VALUES ($1, $2, $3)`,
		sale.ID, sale.Date, sale.Total); err != nil {
		return fmt.Errorf("create sale: %w", err)
	}

	const insertItem = `
                INSERT INTO sale_items (sale_id, product_id, name, quantity, unit_price)
                VALUES ($1, $2, $3, $4, $5)
        `
	const takeStock = `
                UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1
        `
	for _, item := range sale.Items {
		if _, err := tx.Exec(insertItem, sale.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}
		res, err := tx.Exec(takeStock, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: product %s", services.ErrInsufficientStock, item.ProductID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sale: %w", err)
	}
	return nil
}

func (r *SaleRepository) List(limit, offset int) ([]*models.Sale, error) {
	const q = `
                SELECT id, sold_at, total
                FROM sales
                ORDER BY sold_at DESC
                LIMIT $1 OFFSET $2
        `
	rows, err := r.db.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var res []*models.Sale
	byID := map[string]*models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Total); err != nil {
			return nil, err
		}
		s.Items = []models.SaleItem{}
		res = append(res, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return res, nil
	}

	ids := make([]string, 0, len(res))
	for _, s := range res {
		ids = append(ids, s.ID)
	}
	const itemsQ = `
                SELECT sale_id, product_id, name, quantity, unit_price
                FROM sale_items
                WHERE sale_id = ANY($1)
        `
	itemRows, err := r.db.Query(itemsQ, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var saleID string
		var item models.SaleItem
		if err := itemRows.Scan(&saleID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if s, ok := byID[saleID]; ok {
			s.Items = append(s.Items, item)
		}
	}
	return res, itemRows.Err()
}

func (r *SaleRepository) GetByID(id string) (*models.Sale, error) {
	var s models.Sale
	if err := r.db.QueryRow(`SELECT id, sold_at, total FROM sales WHERE id=$1`, id).
		Scan(&s.ID, &s.Date, &s.Total); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	rows, err := r.db.Query(`SELECT product_id, name, quantity, unit_price FROM sale_items WHERE sale_id=$1`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	s.Items = []models.SaleItem{}
	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, item)
	}
	return &s, rows.Err()
}

// RevenueAndProfitSince aggregates completed sales. Profit uses the current
// buying price of the sold product; items whose product was deleted count
// with zero cost.
func (r *SaleRepository) RevenueAndProfitSince(since time.Time) (revenue, profit float64, err error) {
	const q = `
                SELECT
                        COALESCE(SUM(i.quantity * i.unit_price), 0),
                        COALESCE(SUM(i.quantity * (i.unit_price - COALESCE(p.buying_price, 0))), 0)
                FROM sales s
                JOIN sale_items i ON i.sale_id = s.id
                LEFT JOIN products p ON p.id = i.product_id
                WHERE s.sold_at >= $1
        `
	if err := r.db.QueryRow(q, since).Scan(&revenue, &profit); err != nil {
		return 0, 0, fmt.Errorf("sales revenue: %w", err)
	}
	return revenue, profit, nil
}
