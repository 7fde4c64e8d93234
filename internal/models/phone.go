package models

import "time"

// Phone is one resold handset. Battery health and charge cycles are recorded
// for the warranty slip.
type Phone struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	IMEI          string    `json:"imei,omitempty"`
	BatteryHealth int       `json:"battery_health,omitempty"`
	ChargeCycle   int       `json:"charge_cycle,omitempty"`
	BuyingPrice   float64   `json:"buying_price"`
	SellingPrice  float64   `json:"selling_price"`
	CustomerName  string    `json:"customer_name"`
	SaleDate      time.Time `json:"sale_date"`
}
