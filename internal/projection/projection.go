// Package projection derives bounded, storage-ready records from bazaar snapshots.
package projection

import (
	"maps"
	"slices"
	"time"

	"github.com/rickgao/bazaar-data/internal/model"
)

// DefaultDepth is the number of history entries kept per side.
const DefaultDepth = 3

// Project builds one PersistedRecord per item that has at least one non-empty
// history. Each summary holds the first depth entries in upstream order.
// Records are ordered by item id and share observedAt. A depth <= 0 uses DefaultDepth.
func Project(items map[string]model.Item, observedAt time.Time, depth int) []model.PersistedRecord {
	if depth <= 0 {
		depth = DefaultDepth
	}

	records := make([]model.PersistedRecord, 0, len(items))
	for _, id := range slices.Sorted(maps.Keys(items)) {
		item := items[id]
		if !item.HasHistory() {
			continue
		}
		records = append(records, model.PersistedRecord{
			// The map key is authoritative for identity.
			ItemID:      id,
			SellSummary: head(item.SellHistory, depth),
			BuySummary:  head(item.BuyHistory, depth),
			Status:      item.Status,
			ObservedAt:  observedAt,
		})
	}
	return records
}

// head copies at most n leading points so records never alias snapshot memory.
func head(points []model.PricePoint, n int) []model.PricePoint {
	n = min(n, len(points))
	out := make([]model.PricePoint, n)
	copy(out, points[:n])
	return out
}
