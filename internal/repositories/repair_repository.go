package repositories

import (
	"database/sql"
	"fmt"

	"telshop/internal/models"
)

type RepairRepository struct {
	db *sql.DB
}

func NewRepairRepository(db *sql.DB) *RepairRepository {
	return &RepairRepository{db: db}
}

const repairCols = `id, customer_name, device, issue, status, cost, created_at`

func (r *RepairRepository) Create(rep *models.Repair) error {
	const q = `
                INSERT INTO repairs (id, customer_name, device, issue, status, cost, created_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
        `
	if _, err := r.db.Exec(q, rep.ID, rep.CustomerName, rep.Device, rep.Issue, rep.Status, rep.Cost, rep.CreatedAt); err != nil {
		return fmt.Errorf("create repair: %w", err)
	}
	return nil
}

func (r *RepairRepository) Update(rep *models.Repair) error {
	const q = `
                UPDATE repairs
                SET customer_name=$1, device=$2, issue=$3, status=$4, cost=$5
                WHERE id=$6
        `
	if _, err := r.db.Exec(q, rep.CustomerName, rep.Device, rep.Issue, rep.Status, rep.Cost, rep.ID); err != nil {
		return fmt.Errorf("update repair: %w", err)
	}
	return nil
}

func (r *RepairRepository) GetByID(id string) (*models.Repair, error) {
	var rep models.Repair
	if err := r.db.QueryRow(`SELECT `+repairCols+` FROM repairs WHERE id=$1`, id).
		Scan(&rep.ID, &rep.CustomerName, &rep.Device, &rep.Issue, &rep.Status, &rep.Cost, &rep.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	return &rep, nil
}

func (r *RepairRepository) List() ([]*models.Repair, error) {
	rows, err := r.db.Query(`SELECT ` + repairCols + ` FROM repairs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer rows.Close()

	var res []*models.Repair
	for rows.Next() {
		var rep models.Repair
		if err := rows.Scan(&rep.ID, &rep.CustomerName, &rep.Device, &rep.Issue, &rep.Status, &rep.Cost, &rep.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &rep)
	}
	return res, rows.Err()
}

func (r *RepairRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM repairs WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	return nil
}
