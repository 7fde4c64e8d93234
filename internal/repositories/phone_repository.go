package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"telshop/internal/models"
)

type PhoneRepository struct {
	db *sql.DB
}

func NewPhoneRepository(db *sql.DB) *PhoneRepository {
	return &PhoneRepository{db: db}
}

const phoneCols = `id, name, brand, imei, battery_health, charge_cycle, buying_price, selling_price, customer_name, sale_date`

func (r *PhoneRepository) Create(p *models.Phone) error {
	const q = `
                INSERT INTO phones (id, name, brand, imei, battery_health, charge_cycle, buying_price, selling_price, customer_name, sale_date)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `
	if _, err := r.db.Exec(q, p.ID, p.Name, p.Brand, p.IMEI, p.BatteryHealth, p.ChargeCycle, p.BuyingPrice, p.SellingPrice, p.CustomerName, p.SaleDate); err != nil {
		return fmt.Errorf("create phone: %w", err)
	}
	return nil
}

func (r *PhoneRepository) Update(p *models.Phone) error {
	const q = `
                UPDATE phones
                SET name=$1, brand=$2, imei=$3, battery_health=$4, charge_cycle=$5, buying_price=$6, selling_price=$7, customer_name=$8, sale_date=$9
                WHERE id=$10
        `
	if _, err := r.db.Exec(q, p.Name, p.Brand, p.IMEI, p.BatteryHealth, p.ChargeCycle, p.BuyingPrice, p.SellingPrice, p.CustomerName, p.SaleDate, p.ID); err != nil {
		return fmt.Errorf("update phone: %w", err)
	}
	return nil
}

func (r *PhoneRepository) GetByID(id string) (*models.Phone, error) {
	var p models.Phone
	if err := r.db.QueryRow(`SELECT `+phoneCols+` FROM phones WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Brand, &p.IMEI, &p.BatteryHealth, &p.ChargeCycle, &p.BuyingPrice, &p.SellingPrice, &p.CustomerName, &p.SaleDate); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get phone: %w", err)
	}
	return &p, nil
}

func (r *PhoneRepository) List() ([]*models.Phone, error) {
	rows, err := r.db.Query(`SELECT ` + phoneCols + ` FROM phones ORDER BY sale_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}
	defer rows.Close()

	var res []*models.Phone
	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.IMEI, &p.BatteryHealth, &p.ChargeCycle, &p.BuyingPrice, &p.SellingPrice, &p.CustomerName, &p.SaleDate); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *PhoneRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM phones WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete phone: %w", err)
	}
	return nil
}

func (r *PhoneRepository) RevenueAndProfitSince(since time.Time) (revenue, profit float64, err error) {
	const q = `
                SELECT COALESCE(SUM(selling_price), 0), COALESCE(SUM(selling_price - buying_price), 0)
                FROM phones
                WHERE sale_date >= $1
        `
	if err := r.db.QueryRow(q, since).Scan(&revenue, &profit); err != nil {
		return 0, 0, fmt.Errorf("phone revenue: %w", err)
	}
	return revenue, profit, nil
}
