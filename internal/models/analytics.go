package models

// Summary is a read-only aggregate computed by the backend. It is never
// mutated locally, only replaced wholesale on fetch.
type Summary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalTransactions int64   `json:"total_transactions"`
	TotalProducts     int64   `json:"total_products"`
	LowStockCount     int64   `json:"low_stock_count"`
}

// DailySalesPoint is one point of the daily sales series.
type DailySalesPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}
