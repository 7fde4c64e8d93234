package repositories

import (
	"database/sql"
	"fmt"

	"telshop/internal/models"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productCols = `id, name, category, buying_price, selling_price, stock, low_stock_threshold, barcode`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.BuyingPrice, &p.SellingPrice, &p.Stock, &p.LowStockThreshold, &p.Barcode); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
                INSERT INTO products (id, name, category, buying_price, selling_price, stock, low_stock_threshold, barcode)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        `
	if _, err := r.db.Exec(q, p.ID, p.Name, p.Category, p.BuyingPrice, p.SellingPrice, p.Stock, p.LowStockThreshold, p.Barcode); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
                UPDATE products
                SET name=$1, category=$2, buying_price=$3, selling_price=$4, stock=$5, low_stock_threshold=$6, barcode=$7
                WHERE id=$8
        `
	if _, err := r.db.Exec(q, p.Name, p.Category, p.BuyingPrice, p.SellingPrice, p.Stock, p.LowStockThreshold, p.Barcode, p.ID); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) GetByBarcode(barcode string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productCols+` FROM products WHERE barcode=$1`, barcode))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) List() ([]*models.Product, error) {
	rows, err := r.db.Query(`SELECT ` + productCols + ` FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var res []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProductRepository) ListLowStock() ([]*models.Product, error) {
	rows, err := r.db.Query(`SELECT ` + productCols + ` FROM products WHERE stock <= low_stock_threshold ORDER BY stock`)
	if err != nil {
		return nil, fmt.Errorf("list low-stock products: %w", err)
	}
	defer rows.Close()

	var res []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProductRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM products WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepository) InventoryValue() (float64, error) {
	var total float64
	if err := r.db.QueryRow(`SELECT COALESCE(SUM(buying_price * stock), 0) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("inventory value: %w", err)
	}
	return total, nil
}

func (r *ProductRepository) LowStockCount() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE stock <= low_stock_threshold`).Scan(&n); err != nil {
		return 0, fmt.Errorf("low-stock count: %w", err)
	}
	return n, nil
}
