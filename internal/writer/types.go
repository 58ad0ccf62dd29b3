package writer

import (
	"errors"
	"fmt"
	"time"

	"github.com/rickgao/bazaar-data/internal/model"
)

// CounterField marks the freshness counter document and holds its value.
const CounterField = "bazaarupdated"

// ErrCounterMissing is reported when the freshness update matched no document.
var ErrCounterMissing = errors.New("freshness counter document not found")

// WriterConfig contains configuration for the snapshot writer.
type WriterConfig struct {
	// CreateCounter upserts the freshness document when none exists.
	CreateCounter bool

	// Transactional wraps record inserts and the counter bump in one transaction.
	Transactional bool
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		CreateCounter: true,
		Transactional: false,
	}
}

// StoreError indicates a failed write to the document store.
type StoreError struct {
	Op      string // "insert record", "bump counter", "transaction"
	ItemID  string // Record being written, if any
	Written int    // Records committed before the failure
	Err     error
}

func (e *StoreError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("store error: %s %s (%d written): %v", e.Op, e.ItemID, e.Written, e.Err)
	}
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// recordDocument is the stored layout of a PersistedRecord.
type recordDocument struct {
	ProductID   string               `bson:"product_id"`
	SellSummary []pricePointDocument `bson:"sell_summary"`
	BuySummary  []pricePointDocument `bson:"buy_summary"`
	QuickStatus quickStatusDocument  `bson:"quick_status"`
	Timestamp   time.Time            `bson:"timestamp"`
}

type pricePointDocument struct {
	Amount       int64   `bson:"amount"`
	PricePerUnit float64 `bson:"pricePerUnit"`
	Orders       int32   `bson:"orders"`
}

type quickStatusDocument struct {
	ProductID      string  `bson:"productId"`
	SellPrice      float64 `bson:"sellPrice"`
	SellVolume     int64   `bson:"sellVolume"`
	SellMovingWeek int64   `bson:"sellMovingWeek"`
	SellOrders     int32   `bson:"sellOrders"`
	BuyPrice       float64 `bson:"buyPrice"`
	BuyVolume      int64   `bson:"buyVolume"`
	BuyMovingWeek  int64   `bson:"buyMovingWeek"`
	BuyOrders      int32   `bson:"buyOrders"`
}

// WriterMetrics holds metrics for a writer.
type WriterMetrics struct {
	Inserts       int64
	Errors        int64
	Cycles        int64 // Successful counter bumps
	CounterMisses int64
}

// toRecordDocument converts a record to its stored layout.
func toRecordDocument(r model.PersistedRecord) recordDocument {
	q := r.Status
	return recordDocument{
		ProductID:   r.ItemID,
		SellSummary: toPricePointDocuments(r.SellSummary),
		BuySummary:  toPricePointDocuments(r.BuySummary),
		QuickStatus: quickStatusDocument{
			ProductID:      q.ItemID,
			SellPrice:      q.SellPrice,
			SellVolume:     q.SellVolume,
			SellMovingWeek: q.SellWeeklyMoved,
			SellOrders:     q.SellOrderCount,
			BuyPrice:       q.BuyPrice,
			BuyVolume:      q.BuyVolume,
			BuyMovingWeek:  q.BuyWeeklyMoved,
			BuyOrders:      q.BuyOrderCount,
		},
		Timestamp: r.ObservedAt,
	}
}

// toPricePointDocuments always returns a non-nil slice so empty summaries
// are stored as [] rather than null.
func toPricePointDocuments(points []model.PricePoint) []pricePointDocument {
	docs := make([]pricePointDocument, len(points))
	for i, p := range points {
		docs[i] = pricePointDocument{
			Amount:       p.Quantity,
			PricePerUnit: p.UnitPrice,
			Orders:       p.OrderCount,
		}
	}
	return docs
}
