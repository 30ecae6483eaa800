package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/bookkeeping/internal/config"
	"github.com/diewo77/bookkeeping/internal/export"
	"github.com/diewo77/bookkeeping/internal/prefs"
	"github.com/diewo77/bookkeeping/internal/repository"
	"github.com/diewo77/bookkeeping/internal/services"
)

func newRootCommand(cfg config.Config) *cobra.Command {
	var dbPath string

	root := &cobra.Command{
		Use:           "bookkeeping",
		Short:         "Manage customers and invoices in a local database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to the database file")

	// withApp opens the store for the duration of one command.
	withApp := func(run func(a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(dbPath, cfg.UndoDepth)
			if err != nil {
				return err
			}
			defer cleanup()
			return run(a, args)
		}
	}

	root.AddCommand(newCustomerCommand(withApp))
	root.AddCommand(newInvoiceCommand(withApp))
	root.AddCommand(newTaxRateCommand(withApp))
	root.AddCommand(newShellCommand(withApp))
	return root
}

type appRunner func(func(a *app, args []string) error) func(*cobra.Command, []string) error

func newCustomerCommand(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{Use: "customer", Short: "Customer records"}

	var search, sortColumn string
	var desc bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers, ordered by id",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			customers, err := a.customers.List(search)
			if err != nil {
				return err
			}
			if sortColumn != "" {
				services.SortCustomers(customers, sortColumn, desc)
			}
			renderCustomers(os.Stdout, customers)
			return nil
		}),
	}
	list.Flags().StringVar(&search, "search", "", "filter by name substring")
	list.Flags().StringVar(&sortColumn, "sort", "", "sort column: id, name, email, contact")
	list.Flags().BoolVar(&desc, "desc", false, "sort descending")

	add := &cobra.Command{
		Use:   "add NAME [EMAIL] [CONTACT]",
		Short: "Add a customer",
		Args:  cobra.RangeArgs(1, 3),
		RunE: withApp(func(a *app, args []string) error {
			email, contact := optionalArgs(args)
			id, err := a.customers.Add(args[0], email, contact)
			if err != nil {
				return err
			}
			fmt.Printf("Customer %d added\n", id)
			return nil
		}),
	}

	update := &cobra.Command{
		Use:   "update ID NAME [EMAIL] [CONTACT]",
		Short: "Update a customer in place",
		Args:  cobra.RangeArgs(2, 4),
		RunE: withApp(func(a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			email, contact := optionalArgs(args[1:])
			if err := a.customers.Update(id, args[1], email, contact); err != nil {
				return err
			}
			fmt.Printf("Customer %d updated\n", id)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a customer (undoable with 'customer undo')",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deleted, err := a.customers.Delete(id)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %q (id %d)\n", deleted.Name, deleted.ID)
			return nil
		}),
	}

	undo := &cobra.Command{
		Use:   "undo",
		Short: "Restore the most recently deleted customer",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			if err := a.customers.Undo(); err != nil {
				return err
			}
			fmt.Println("Customer restored")
			return nil
		}),
	}

	exportCmd := &cobra.Command{
		Use:   "export PATH",
		Short: "Export all customers to CSV, ordered by name",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			customers, err := a.customers.ListByName()
			if err != nil {
				return err
			}
			if err := export.ExportCustomersCSV(args[0], customers); err != nil {
				return err
			}
			fmt.Printf("Exported %d customers to %s\n", len(customers), args[0])
			return nil
		}),
	}

	cmd.AddCommand(list, add, update, del, undo, exportCmd)
	return cmd
}

func newInvoiceCommand(withApp appRunner) *cobra.Command {
	cmd := &cobra.Command{Use: "invoice", Short: "Invoices and line items"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List invoices with customer names",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			rows, err := a.invoices.ListWithCustomerNames()
			if err != nil {
				return err
			}
			renderInvoices(os.Stdout, rows)
			return nil
		}),
	}

	var customerID uint
	var invoiceDate, dueDate string
	var itemSpecs []string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a draft invoice",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			items, err := parseItems(itemSpecs)
			if err != nil {
				return err
			}
			id, err := a.invoices.Create(customerID, invoiceDate, dueDate, items)
			if err != nil {
				return err
			}
			fmt.Printf("Invoice %d created\n", id)
			return nil
		}),
	}
	create.Flags().UintVar(&customerID, "customer", 0, "customer id")
	create.Flags().StringVar(&invoiceDate, "date", "", "invoice date (YYYY-MM-DD)")
	create.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	create.Flags().StringArrayVar(&itemSpecs, "item", nil, `line item "description:qty:price" (repeatable)`)

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace an invoice's details and items",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := parseItems(itemSpecs)
			if err != nil {
				return err
			}
			if err := a.invoices.Update(id, customerID, invoiceDate, dueDate, items); err != nil {
				return err
			}
			fmt.Printf("Invoice %d updated\n", id)
			return nil
		}),
	}
	update.Flags().UintVar(&customerID, "customer", 0, "customer id")
	update.Flags().StringVar(&invoiceDate, "date", "", "invoice date (YYYY-MM-DD)")
	update.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	update.Flags().StringArrayVar(&itemSpecs, "item", nil, `line item "description:qty:price" (repeatable)`)

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one invoice with its items",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			inv, err := a.invoices.Get(id)
			if err != nil {
				return err
			}
			renderInvoiceDetail(os.Stdout, inv)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an invoice and all its items",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.invoices.Delete(id); err != nil {
				return err
			}
			fmt.Printf("Invoice %d deleted\n", id)
			return nil
		}),
	}

	pdf := &cobra.Command{
		Use:   "pdf ID PATH",
		Short: "Write an invoice as a PDF",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(a *app, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			inv, err := a.invoices.Get(id)
			if err != nil {
				return err
			}
			customer, err := a.customers.Get(inv.CustomerID)
			if err != nil {
				return err
			}
			if err := export.WriteInvoicePDF(args[1], inv, customer.Name); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", args[1])
			return nil
		}),
	}

	cmd.AddCommand(list, create, update, show, del, pdf)
	return cmd
}

func newTaxRateCommand(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "tax-rate [VALUE]",
		Short: "Show or set the global tax rate (a fraction, e.g. 0.2)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(a *app, args []string) error {
			if len(args) == 0 {
				rate, err := a.settings.TaxRate()
				if err != nil {
					return err
				}
				fmt.Println(rate.String())
				return nil
			}
			rate, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[0], err)
			}
			if err := a.settings.SetTaxRate(rate); err != nil {
				return err
			}
			fmt.Printf("Tax rate set to %s\n", rate.String())
			return nil
		}),
	}
}

func newShellCommand(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, _ []string) error {
			sh, err := newShell(a, prefs.DefaultPath())
			if err != nil {
				return err
			}
			defer sh.close()
			return sh.run()
		}),
	}
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

func optionalArgs(args []string) (email, contact string) {
	if len(args) > 1 {
		email = args[1]
	}
	if len(args) > 2 {
		contact = args[2]
	}
	return email, contact
}

// parseItems parses "description:qty:price" specs. The description may
// itself contain colons, so qty and price are taken from the right.
func parseItems(specs []string) ([]repository.ItemDraft, error) {
	items := make([]repository.ItemDraft, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid item %q, want description:qty:price", spec)
		}
		qty, err := decimal.NewFromString(parts[len(parts)-2])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", spec, err)
		}
		price, err := decimal.NewFromString(parts[len(parts)-1])
		if err != nil {
			return nil, fmt.Errorf("invalid price in %q: %w", spec, err)
		}
		items = append(items, repository.ItemDraft{
			Description: strings.Join(parts[:len(parts)-2], ":"),
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return items, nil
}
