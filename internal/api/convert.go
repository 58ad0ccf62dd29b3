package api

import "github.com/rickgao/bazaar-data/internal/model"

// ToMarketSnapshot converts a validated response to the internal model.
// It must only be called after validation; required pointers are dereferenced.
func (r *BazaarResponse) ToMarketSnapshot() *model.MarketSnapshot {
	items := make(map[string]model.Item, len(r.Products))
	for key, p := range r.Products {
		items[key] = p.toItem()
	}
	return &model.MarketSnapshot{
		IsValid:      *r.Success,
		VersionToken: *r.LastUpdated,
		Items:        items,
	}
}

func (p Product) toItem() model.Item {
	return model.Item{
		ID:          *p.ProductID,
		SellHistory: toPricePoints(p.SellSummary),
		BuyHistory:  toPricePoints(p.BuySummary),
		Status:      p.QuickStatus.toModel(),
	}
}

func toPricePoints(entries []SummaryEntry) []model.PricePoint {
	points := make([]model.PricePoint, len(entries))
	for i, e := range entries {
		points[i] = model.PricePoint{
			Quantity:   *e.Amount,
			UnitPrice:  *e.PricePerUnit,
			OrderCount: *e.Orders,
		}
	}
	return points
}

func (q *QuickStatus) toModel() model.QuickStatus {
	return model.QuickStatus{
		ItemID:          *q.ProductID,
		SellPrice:       *q.SellPrice,
		SellVolume:      *q.SellVolume,
		SellWeeklyMoved: *q.SellMovingWeek,
		SellOrderCount:  *q.SellOrders,
		BuyPrice:        *q.BuyPrice,
		BuyVolume:       *q.BuyVolume,
		BuyWeeklyMoved:  *q.BuyMovingWeek,
		BuyOrderCount:   *q.BuyOrders,
	}
}
