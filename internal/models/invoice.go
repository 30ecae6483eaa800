package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. The app only ever produces drafts today; the column is
// text so further workflow states can be added without a migration.
const StatusDraft = "Draft"

// Invoicing models
type Invoice struct {
	ID          uint            `gorm:"primaryKey"`
	CustomerID  uint            `gorm:"not null;index"`
	InvoiceDate string          `gorm:"size:10;not null"` // YYYY-MM-DD
	DueDate     string          `gorm:"size:10;not null"` // YYYY-MM-DD
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// TaxRate is the global rate captured when the invoice was created.
	// Totals are always recomputed against this frozen rate, so editing the
	// global setting never rewrites historical invoices.
	TaxRate   decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Status    string          `gorm:"size:50;not null;default:'Draft'"`
	Items     []InvoiceItem   `gorm:"foreignKey:InvoiceID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type InvoiceItem struct {
	ID          uint            `gorm:"primaryKey"`
	InvoiceID   uint            `gorm:"index;not null"`
	Description string          `gorm:"size:255"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// LineTotal is quantity × unit price. It is derived, never stored.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}
