package api

// Wire types mirror the upstream JSON. Required fields are pointers so that
// a missing key is distinguishable from a zero value.

// BazaarResponse is the top-level bazaar payload.
type BazaarResponse struct {
	Success     *bool              `json:"success" validate:"required"`
	LastUpdated *int64             `json:"lastUpdated" validate:"required"`
	Products    map[string]Product `json:"products" validate:"required,dive"`
}

// Product is one product entry keyed by product id.
type Product struct {
	ProductID   *string        `json:"product_id" validate:"required"`
	SellSummary []SummaryEntry `json:"sell_summary" validate:"required,dive"`
	BuySummary  []SummaryEntry `json:"buy_summary" validate:"required,dive"`
	QuickStatus *QuickStatus   `json:"quick_status" validate:"required"`
}

// SummaryEntry is one aggregated order bucket.
type SummaryEntry struct {
	Amount       *int64   `json:"amount" validate:"required"`
	PricePerUnit *float64 `json:"pricePerUnit" validate:"required"`
	Orders       *int32   `json:"orders" validate:"required"`
}

// QuickStatus is the current-instant summary for a product.
type QuickStatus struct {
	ProductID      *string  `json:"productId" validate:"required"`
	SellPrice      *float64 `json:"sellPrice" validate:"required"`
	SellVolume     *int64   `json:"sellVolume" validate:"required"`
	SellMovingWeek *int64   `json:"sellMovingWeek" validate:"required"`
	SellOrders     *int32   `json:"sellOrders" validate:"required"`
	BuyPrice       *float64 `json:"buyPrice" validate:"required"`
	BuyVolume      *int64   `json:"buyVolume" validate:"required"`
	BuyMovingWeek  *int64   `json:"buyMovingWeek" validate:"required"`
	BuyOrders      *int32   `json:"buyOrders" validate:"required"`
}
