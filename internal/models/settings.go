package models

// Settings is the per-deployment singleton record. The client keeps a
// cached copy with last-fetched-wins semantics; there is no versioning.
type Settings struct {
	StoreName                string `json:"store_name"`
	StoreAddress             string `json:"store_address"`
	DefaultLowStockThreshold int64  `json:"default_low_stock_threshold"`
	PICName                  string `json:"pic_name"`
}
