package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/bookkeeping/internal/models"
	"github.com/diewo77/bookkeeping/internal/services"
	"github.com/diewo77/bookkeeping/internal/validation"
)

// ItemDraft is an unsaved line item as entered in the invoice form.
type ItemDraft struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// InvoiceSummary is one row of the invoice listing, joined with the
// customer's name.
type InvoiceSummary struct {
	ID           uint
	CustomerName string
	InvoiceDate  string
	DueDate      string
	TotalAmount  decimal.Decimal
	TaxAmount    decimal.Decimal
	Status       string
}

// InvoiceRepository owns invoices and their line items. Every multi-row
// write runs in a single transaction so a failure never leaves orphaned
// items behind.
type InvoiceRepository struct {
	db       *gorm.DB
	settings *SettingsRepository
	svc      *services.InvoiceService
}

func NewInvoiceRepository(db *gorm.DB, settings *SettingsRepository, svc *services.InvoiceService) *InvoiceRepository {
	return &InvoiceRepository{db: db, settings: settings, svc: svc}
}

// ListWithCustomerNames returns all invoices joined with their customer's
// name, ordered by invoice id. Inner join: an invoice whose customer row is
// gone (legacy data) does not appear.
func (r *InvoiceRepository) ListWithCustomerNames() ([]InvoiceSummary, error) {
	var rows []InvoiceSummary
	err := r.db.Table("invoices").
		Select("invoices.id, customers.name AS customer_name, invoices.invoice_date, invoices.due_date, invoices.total_amount, invoices.tax_amount, invoices.status").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Order("invoices.id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("list invoices", err)
	}
	return rows, nil
}

// Get returns an invoice with its items preloaded.
func (r *InvoiceRepository) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.Preload("Items").First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "invoice", ID: id}
		}
		return nil, storeErr("get invoice", err)
	}
	return &inv, nil
}

func validateDraft(invoiceDate, dueDate string, items []ItemDraft) *ValidationError {
	v := make(validation.Violations)
	validation.Date("invoice_date", invoiceDate, v)
	validation.Date("due_date", dueDate, v)
	if len(items) == 0 {
		v["items"] = "required"
	}
	for _, it := range items {
		if !it.Quantity.IsPositive() {
			v["quantity"] = "must_be_positive"
		}
		if it.UnitPrice.IsNegative() {
			v["unit_price"] = "must_not_be_negative"
		}
	}
	if v.Empty() {
		return nil
	}
	return &ValidationError{Fields: v}
}

func lineAmounts(items []ItemDraft) []services.LineAmount {
	amounts := make([]services.LineAmount, len(items))
	for i, it := range items {
		amounts[i] = services.LineAmount{Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return amounts
}

// Create validates the draft, computes totals at the current tax rate, and
// persists the invoice and its items atomically. The rate is stored on the
// invoice so later edits reuse it.
func (r *InvoiceRepository) Create(customerID uint, invoiceDate, dueDate string, items []ItemDraft) (uint, error) {
	if verr := validateDraft(invoiceDate, dueDate, items); verr != nil {
		return 0, verr
	}
	var customer models.Customer
	if err := r.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, violation("customer_id", "unknown_customer")
		}
		return 0, storeErr("resolve customer", err)
	}
	rate, err := r.settings.TaxRate()
	if err != nil {
		return 0, err
	}
	totals := r.svc.ComputeTotals(lineAmounts(items), rate)
	inv := models.Invoice{
		CustomerID:  customer.ID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		TotalAmount: totals.Total,
		TaxAmount:   totals.Tax,
		TaxRate:     rate,
		Status:      models.StatusDraft,
	}
	for _, it := range items {
		inv.Items = append(inv.Items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	// gorm persists the associated items in the same transaction.
	err = r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&inv).Error
	})
	if err != nil {
		return 0, storeErr("create invoice", err)
	}
	return inv.ID, nil
}

// Update replaces the invoice's items and recomputes totals against the
// rate frozen on the invoice at creation, not the current global rate.
// Items are deleted and reinserted in one transaction.
func (r *InvoiceRepository) Update(id, customerID uint, invoiceDate, dueDate string, items []ItemDraft) error {
	if verr := validateDraft(invoiceDate, dueDate, items); verr != nil {
		return verr
	}
	inv, err := r.Get(id)
	if err != nil {
		return err
	}
	var customer models.Customer
	if err := r.db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return violation("customer_id", "unknown_customer")
		}
		return storeErr("resolve customer", err)
	}
	totals := r.svc.ComputeTotals(lineAmounts(items), inv.TaxRate)
	replacement := make([]models.InvoiceItem, len(items))
	for i, it := range items {
		replacement[i] = models.InvoiceItem{
			InvoiceID:   inv.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&replacement).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"customer_id":  customer.ID,
			"invoice_date": invoiceDate,
			"due_date":     dueDate,
			"total_amount": totals.Total,
			"tax_amount":   totals.Tax,
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(updates).Error
	})
	if err != nil {
		return storeErr("update invoice", err)
	}
	return nil
}

// Delete removes the invoice and all its items in one transaction.
func (r *InvoiceRepository) Delete(id uint) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
	if err != nil {
		return storeErr("delete invoice", err)
	}
	return nil
}
