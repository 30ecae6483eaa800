package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotalsWorkedExample(t *testing.T) {
	svc := NewInvoiceService()
	items := []LineAmount{{Quantity: d("2"), UnitPrice: d("5.00")}}

	totals := svc.ComputeTotals(items, d("0.2"))

	assert.Equal(t, "10.00", totals.DisplaySubtotal())
	assert.Equal(t, "2.00", totals.DisplayTax())
	assert.Equal(t, "12.00", totals.DisplayTotal())
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	svc := NewInvoiceService()
	for _, rate := range []string{"0", "0.2", "0.55", "1"} {
		totals := svc.ComputeTotals(nil, d(rate))
		assert.True(t, totals.Subtotal.IsZero(), "subtotal at rate %s", rate)
		assert.True(t, totals.Tax.IsZero(), "tax at rate %s", rate)
		assert.True(t, totals.Total.IsZero(), "total at rate %s", rate)
	}
}

func TestComputeTotalsIdentity(t *testing.T) {
	svc := NewInvoiceService()
	tests := []struct {
		name  string
		items []LineAmount
		rate  string
	}{
		{"single item", []LineAmount{{d("2"), d("5.00")}}, "0.2"},
		{"fractional quantities", []LineAmount{{d("1.5"), d("3.33")}, {d("0.25"), d("19.99")}}, "0.085"},
		{"many cheap items", []LineAmount{{d("100"), d("0.01")}, {d("7"), d("0.07")}, {d("13"), d("1.01")}}, "0.196"},
		{"zero rate", []LineAmount{{d("4"), d("2.50")}}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := svc.ComputeTotals(tt.items, d(tt.rate))
			// total = subtotal + tax must hold exactly, not approximately.
			assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)),
				"total %s != subtotal %s + tax %s", totals.Total, totals.Subtotal, totals.Tax)
		})
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	svc := NewInvoiceService()
	items := []LineAmount{{d("3"), d("7.77")}, {d("1.1"), d("0.09")}}

	first := svc.ComputeTotals(items, d("0.2"))
	second := svc.ComputeTotals(items, d("0.2"))

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestComputeTotalsNegativeRateTreatedAsZero(t *testing.T) {
	svc := NewInvoiceService()
	totals := svc.ComputeTotals([]LineAmount{{d("2"), d("5")}}, d("-0.2"))

	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}
