package models

type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	BuyingPrice       float64 `json:"buying_price"`
	SellingPrice      float64 `json:"selling_price"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	Barcode           string  `json:"barcode,omitempty"`
}

func (p *Product) LowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
