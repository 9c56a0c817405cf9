package models

// Product mirrors one row of the backend product catalog. IDs are
// server-assigned; the client never invents them.
type Product struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	Price             float64 `json:"price"`
	Stock             int64   `json:"stock"`
	LowStockThreshold int64   `json:"low_stock_threshold"`
}

// Category is a flat label, no hierarchy.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
