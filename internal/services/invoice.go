package services

import "github.com/shopspring/decimal"

// LineAmount is the slice of an invoice item the calculator needs.
type LineAmount struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Totals holds the computed amounts at full precision. Rounding to two
// decimals happens only at display time, via the DisplayX helpers.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

func (t Totals) DisplaySubtotal() string { return t.Subtotal.StringFixed(2) }
func (t Totals) DisplayTax() string      { return t.Tax.StringFixed(2) }
func (t Totals) DisplayTotal() string    { return t.Total.StringFixed(2) }

// InvoiceService encapsulates invoice-related business logic.
type InvoiceService struct{}

func NewInvoiceService() *InvoiceService { return &InvoiceService{} }

// ComputeTotals computes subtotal, tax, and total amounts for a set of line
// items at the given tax rate. It is pure and deterministic: callers invoke
// it on every item change and once more at save time, and both runs must
// agree. total = subtotal + tax holds exactly.
func (s *InvoiceService) ComputeTotals(items []LineAmount, rate decimal.Decimal) Totals {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Quantity.Mul(it.UnitPrice))
	}
	tax := subtotal.Mul(rate)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}
