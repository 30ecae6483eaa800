package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/diewo77/bookkeeping/internal/models"
	"github.com/diewo77/bookkeeping/internal/repository"
)

func renderCustomers(w io.Writer, customers []models.Customer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Name", "Email", "Contact"})
	for _, c := range customers {
		t.AppendRow(table.Row{c.ID, c.Name, c.Email, c.Contact})
	}
	t.Render()
}

func renderInvoices(w io.Writer, rows []repository.InvoiceSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Customer", "Date", "Due", "Tax", "Total", "Status"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.ID, r.CustomerName, r.InvoiceDate, r.DueDate,
			r.TaxAmount.StringFixed(2), r.TotalAmount.StringFixed(2), r.Status,
		})
	}
	t.Render()
}

func renderInvoiceDetail(w io.Writer, inv *models.Invoice) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Invoice #%d  %s  (due %s)", inv.ID, inv.InvoiceDate, inv.DueDate)
	t.AppendHeader(table.Row{"Description", "Qty", "Unit Price", "Amount"})
	for _, it := range inv.Items {
		t.AppendRow(table.Row{
			it.Description, it.Quantity.StringFixed(2),
			it.UnitPrice.StringFixed(2), it.LineTotal().StringFixed(2),
		})
	}
	subtotal := inv.TotalAmount.Sub(inv.TaxAmount)
	t.AppendFooter(table.Row{"", "", "Subtotal", subtotal.StringFixed(2)})
	t.AppendFooter(table.Row{"", "", "Tax", inv.TaxAmount.StringFixed(2)})
	t.AppendFooter(table.Row{"", "", "Total", inv.TotalAmount.StringFixed(2)})
	t.Render()
}
