package model

import "time"

// -----------------------------------------------------------------------------
// Snapshot Types
// -----------------------------------------------------------------------------

// MarketSnapshot is one full point-in-time response from the bazaar endpoint.
type MarketSnapshot struct {
	IsValid      bool            // Upstream "success" flag (decoded, not enforced by default)
	VersionToken int64           // Upstream "lastUpdated"; compared for equality only
	Items        map[string]Item // Keyed by product id
}

// Item represents one tradable product.
type Item struct {
	ID          string       // Upstream product_id
	SellHistory []PricePoint // Aggregated sell buckets, most-recent-first
	BuyHistory  []PricePoint // Aggregated buy buckets, most-recent-first
	Status      QuickStatus  // Current-instant summary
}

// PricePoint is one aggregated order bucket.
type PricePoint struct {
	Quantity   int64   // Total amount in the bucket
	UnitPrice  float64 // Price per unit
	OrderCount int32   // Number of orders in the bucket
}

// QuickStatus is the current-instant market summary for a product.
type QuickStatus struct {
	ItemID string

	SellPrice       float64
	SellVolume      int64
	SellWeeklyMoved int64
	SellOrderCount  int32

	BuyPrice       float64
	BuyVolume      int64
	BuyWeeklyMoved int64
	BuyOrderCount  int32
}

// -----------------------------------------------------------------------------
// Storage Types
// -----------------------------------------------------------------------------

// PersistedRecord is the bounded projection of an Item written to storage.
// All records produced in one persist cycle share ObservedAt.
type PersistedRecord struct {
	ItemID      string
	SellSummary []PricePoint // At most projection depth entries
	BuySummary  []PricePoint // At most projection depth entries
	Status      QuickStatus
	ObservedAt  time.Time // UTC, generated at write time
}

// HasHistory reports whether the item has at least one sell or buy bucket.
func (i Item) HasHistory() bool {
	return len(i.SellHistory) > 0 || len(i.BuyHistory) > 0
}
