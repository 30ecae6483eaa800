package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/diewo77/bookkeeping/internal/export"
	"github.com/diewo77/bookkeeping/internal/models"
	"github.com/diewo77/bookkeeping/internal/prefs"
	"github.com/diewo77/bookkeeping/internal/services"

	"github.com/shopspring/decimal"
)

// shell is an interactive session over the same repositories the one-shot
// commands use. It keeps the last customer listing in memory so repeated
// sort commands toggle direction the way column-header clicks do.
type shell struct {
	app       *app
	readline  *readline.Instance
	prefsPath string
	prefs     prefs.Prefs
	listing   []models.Customer
	sortState services.SortState
}

func newShell(a *app, prefsPath string) (*shell, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	p := prefs.Load(prefsPath)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            shellPrompt(p.Theme),
		HistoryFile:       filepath.Join(homeDir, ".bookkeeping_history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %v", err)
	}
	return &shell{app: a, readline: rl, prefsPath: prefsPath, prefs: p}, nil
}

func shellPrompt(theme string) string {
	if theme == prefs.ThemeDark {
		return "\033[1;37mbk>\033[0m "
	}
	return "\033[1;34mbk>\033[0m "
}

func (s *shell) close() {
	if s.readline != nil {
		s.readline.Close()
	}
}

func (s *shell) run() error {
	fmt.Println("Type 'help' for commands, 'exit' to quit.")
	for {
		line, err := s.readline.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}
		if err := s.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func (s *shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case "help":
		s.printHelp()
		return nil
	case "customers":
		return s.listCustomers(strings.Join(args, " "))
	case "sort":
		if len(args) != 1 {
			return fmt.Errorf("usage: sort id|name|email|contact")
		}
		return s.sortListing(args[0])
	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: add NAME [EMAIL] [CONTACT]")
		}
		email, contact := optionalArgs(args)
		id, err := s.app.customers.Add(args[0], email, contact)
		if err != nil {
			return err
		}
		fmt.Printf("Customer %d added\n", id)
		return nil
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete ID")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		deleted, err := s.app.customers.Delete(id)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %q (id %d)\n", deleted.Name, deleted.ID)
		return nil
	case "undo":
		if err := s.app.customers.Undo(); err != nil {
			return err
		}
		fmt.Println("Customer restored")
		return nil
	case "invoices":
		rows, err := s.app.invoices.ListWithCustomerNames()
		if err != nil {
			return err
		}
		renderInvoices(os.Stdout, rows)
		return nil
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: show INVOICE_ID")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		inv, err := s.app.invoices.Get(id)
		if err != nil {
			return err
		}
		renderInvoiceDetail(os.Stdout, inv)
		return nil
	case "tax":
		if len(args) == 0 {
			rate, err := s.app.settings.TaxRate()
			if err != nil {
				return err
			}
			fmt.Println(rate.String())
			return nil
		}
		rate, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid rate %q", args[0])
		}
		return s.app.settings.SetTaxRate(rate)
	case "theme":
		if len(args) == 0 {
			fmt.Println(s.prefs.Theme)
			return nil
		}
		return s.setTheme(args[0])
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("usage: export PATH")
		}
		customers, err := s.app.customers.ListByName()
		if err != nil {
			return err
		}
		if err := export.ExportCustomersCSV(args[0], customers); err != nil {
			return err
		}
		fmt.Printf("Exported %d customers to %s\n", len(customers), args[0])
		return nil
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (s *shell) listCustomers(search string) error {
	customers, err := s.app.customers.List(search)
	if err != nil {
		return err
	}
	s.listing = customers
	s.sortState = services.SortState{}
	renderCustomers(os.Stdout, customers)
	return nil
}

func (s *shell) sortListing(column string) error {
	switch column {
	case services.ColumnID, services.ColumnName, services.ColumnEmail, services.ColumnContact:
	default:
		return fmt.Errorf("unknown column %q", column)
	}
	if s.listing == nil {
		if err := s.listCustomers(""); err != nil {
			return err
		}
	}
	reverse := s.sortState.Toggle(column)
	services.SortCustomers(s.listing, column, reverse)
	renderCustomers(os.Stdout, s.listing)
	return nil
}

func (s *shell) setTheme(theme string) error {
	if theme != prefs.ThemeLight && theme != prefs.ThemeDark {
		return fmt.Errorf("theme must be %q or %q", prefs.ThemeLight, prefs.ThemeDark)
	}
	s.prefs.Theme = theme
	if err := prefs.Save(s.prefsPath, s.prefs); err != nil {
		return err
	}
	s.readline.SetPrompt(shellPrompt(theme))
	return nil
}

func (s *shell) printHelp() {
	fmt.Print(`Commands:
  customers [SEARCH]        list customers, optionally filtered by name
  sort COLUMN               re-sort the last listing (repeat to reverse)
  add NAME [EMAIL] [CONTACT]
  delete ID                 delete a customer
  undo                      restore the most recently deleted customer
  invoices                  list invoices with customer names
  show INVOICE_ID           show one invoice with items
  tax [RATE]                show or set the global tax rate
  theme [light|dark]        show or set the theme
  export PATH               write customers to a CSV file
  exit
`)
}
