package model

import "testing"

func TestItem_HasHistory(t *testing.T) {
	point := PricePoint{Quantity: 10, UnitPrice: 1.5, OrderCount: 2}

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"both empty", Item{ID: "A"}, false},
		{"empty non-nil slices", Item{ID: "A", SellHistory: []PricePoint{}, BuyHistory: []PricePoint{}}, false},
		{"sell only", Item{ID: "A", SellHistory: []PricePoint{point}}, true},
		{"buy only", Item{ID: "A", BuyHistory: []PricePoint{point}}, true},
		{"both", Item{ID: "A", SellHistory: []PricePoint{point}, BuyHistory: []PricePoint{point}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.HasHistory(); got != tt.want {
				t.Errorf("HasHistory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarketSnapshot_ZeroValue(t *testing.T) {
	var s MarketSnapshot

	if s.IsValid {
		t.Error("zero IsValid should be false")
	}
	if s.VersionToken != 0 {
		t.Errorf("zero VersionToken = %d, want 0", s.VersionToken)
	}
	if len(s.Items) != 0 {
		t.Errorf("zero Items len = %d, want 0", len(s.Items))
	}
}
