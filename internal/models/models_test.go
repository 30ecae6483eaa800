package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInvoiceItem_LineTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		price    string
		want     string
	}{
		{"two widgets", "2", "5.00", "10"},
		{"fractional quantity", "1.5", "10", "15"},
		{"zero quantity", "0", "99.99", "0"},
		{"cent precision", "3", "0.10", "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := InvoiceItem{
				Quantity:  decimal.RequireFromString(tt.quantity),
				UnitPrice: decimal.RequireFromString(tt.price),
			}
			if got := it.LineTotal(); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("LineTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}
