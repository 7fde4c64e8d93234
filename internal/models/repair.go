package models

import "time"

const (
	RepairStatusReceived   = "received"
	RepairStatusInProgress = "inProgress"
	RepairStatusCompleted  = "completed"
	RepairStatusDelivered  = "delivered"
)

func ValidRepairStatus(s string) bool {
	switch s {
	case RepairStatusReceived, RepairStatusInProgress, RepairStatusCompleted, RepairStatusDelivered:
		return true
	}
	return false
}

type Repair struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Device       string    `json:"device"`
	Issue        string    `json:"issue"`
	Status       string    `json:"status"`
	Cost         float64   `json:"cost"`
	CreatedAt    time.Time `json:"created_at"`
}
