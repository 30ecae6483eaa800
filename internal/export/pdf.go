package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/diewo77/bookkeeping/internal/models"
)

var hundred = decimal.NewFromInt(100)

// WriteInvoicePDF renders a one-page summary of the invoice to path.
func WriteInvoicePDF(path string, inv *models.Invoice, customerName string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Invoice #%d", inv.ID))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Bill To: "+customerName)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Invoice Date: "+inv.InvoiceDate)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Due Date: "+inv.DueDate)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status: "+inv.Status)
	pdf.Ln(12)

	// Items table
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, it := range inv.Items {
		pdf.CellFormat(90, 8, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, it.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, it.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, it.LineTotal().StringFixed(2), "1", 1, "R", false, 0, "")
	}

	subtotal := inv.TotalAmount.Sub(inv.TaxAmount)
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 7, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, fmt.Sprintf("Tax (%s%%)", inv.TaxRate.Mul(hundred).StringFixed(1)), "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, inv.TaxAmount.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, inv.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
