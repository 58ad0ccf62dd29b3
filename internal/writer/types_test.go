package writer

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/rickgao/bazaar-data/internal/model"
)

func testRecord(id string, observedAt time.Time) model.PersistedRecord {
	return model.PersistedRecord{
		ItemID: id,
		SellSummary: []model.PricePoint{
			{Quantity: 10, UnitPrice: 1.5, OrderCount: 2},
		},
		BuySummary: []model.PricePoint{},
		Status: model.QuickStatus{
			ItemID:          id,
			SellPrice:       1.5,
			SellVolume:      10,
			SellWeeklyMoved: 300,
			SellOrderCount:  2,
			BuyPrice:        1.7,
			BuyVolume:       20,
			BuyWeeklyMoved:  400,
			BuyOrderCount:   3,
		},
		ObservedAt: observedAt,
	}
}

func TestToRecordDocument_Layout(t *testing.T) {
	observedAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data, err := bson.Marshal(toRecordDocument(testRecord("A", observedAt)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := bson.Raw(data)

	if v, err := raw.LookupErr("product_id"); err != nil || v.StringValue() != "A" {
		t.Errorf("product_id = %v (err %v), want A", v, err)
	}
	if v, err := raw.LookupErr("sell_summary", "0", "amount"); err != nil || v.Int64() != 10 {
		t.Errorf("sell_summary.0.amount = %v (err %v), want 10", v, err)
	}
	if v, err := raw.LookupErr("sell_summary", "0", "pricePerUnit"); err != nil || v.Double() != 1.5 {
		t.Errorf("sell_summary.0.pricePerUnit = %v (err %v), want 1.5", v, err)
	}
	if v, err := raw.LookupErr("sell_summary", "0", "orders"); err != nil || v.Int32() != 2 {
		t.Errorf("sell_summary.0.orders = %v (err %v), want 2", v, err)
	}

	buy, err := raw.LookupErr("buy_summary")
	if err != nil {
		t.Fatalf("buy_summary missing: %v", err)
	}
	if buy.Type != bson.TypeArray {
		t.Errorf("buy_summary type = %v, want array", buy.Type)
	}

	statusFields := map[string]func(bson.RawValue) bool{
		"productId":      func(v bson.RawValue) bool { return v.StringValue() == "A" },
		"sellPrice":      func(v bson.RawValue) bool { return v.Double() == 1.5 },
		"sellVolume":     func(v bson.RawValue) bool { return v.Int64() == 10 },
		"sellMovingWeek": func(v bson.RawValue) bool { return v.Int64() == 300 },
		"sellOrders":     func(v bson.RawValue) bool { return v.Int32() == 2 },
		"buyPrice":       func(v bson.RawValue) bool { return v.Double() == 1.7 },
		"buyVolume":      func(v bson.RawValue) bool { return v.Int64() == 20 },
		"buyMovingWeek":  func(v bson.RawValue) bool { return v.Int64() == 400 },
		"buyOrders":      func(v bson.RawValue) bool { return v.Int32() == 3 },
	}
	for field, check := range statusFields {
		v, err := raw.LookupErr("quick_status", field)
		if err != nil {
			t.Errorf("quick_status.%s missing: %v", field, err)
			continue
		}
		if !check(v) {
			t.Errorf("quick_status.%s = %v", field, v)
		}
	}

	ts, err := raw.LookupErr("timestamp")
	if err != nil {
		t.Fatalf("timestamp missing: %v", err)
	}
	if !ts.Time().Equal(observedAt) {
		t.Errorf("timestamp = %v, want %v", ts.Time(), observedAt)
	}
}

func TestToPricePointDocuments_NilIsEmpty(t *testing.T) {
	docs := toPricePointDocuments(nil)
	if docs == nil || len(docs) != 0 {
		t.Errorf("toPricePointDocuments(nil) = %#v, want empty non-nil", docs)
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("with item", func(t *testing.T) {
		err := &StoreError{Op: "insert record", ItemID: "B", Written: 1, Err: cause}
		want := "store error: insert record B (1 written): connection reset"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
		if !errors.Is(err, cause) {
			t.Error("StoreError should unwrap to cause")
		}
	})

	t.Run("without item", func(t *testing.T) {
		err := &StoreError{Op: "bump counter", Err: cause}
		want := "store error: bump counter: connection reset"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})
}
