package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/diewo77/bookkeeping/internal/config"
	"github.com/diewo77/bookkeeping/internal/db"
	"github.com/diewo77/bookkeeping/internal/repository"
	"github.com/diewo77/bookkeeping/internal/services"
)

// app bundles the repositories behind the CLI. Everything is built once at
// startup and passed explicitly; there is no shared global state.
type app struct {
	db        *gorm.DB
	customers *repository.CustomerRepository
	invoices  *repository.InvoiceRepository
	settings  *repository.SettingsRepository
	svc       *services.InvoiceService
}

func newApp(conn *gorm.DB, undoDepth int) *app {
	settings := repository.NewSettingsRepository(conn)
	svc := services.NewInvoiceService()
	return &app{
		db:        conn,
		customers: repository.NewCustomerRepository(conn, undoDepth),
		invoices:  repository.NewInvoiceRepository(conn, settings, svc),
		settings:  settings,
		svc:       svc,
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	root := newRootCommand(cfg)
	if err := root.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func openApp(dbPath string, undoDepth int) (*app, func(), error) {
	conn, err := db.ConnectAndMigrate(dbPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if cerr := db.Close(conn); cerr != nil {
			log.Printf("Error closing database: %v", cerr)
		}
	}
	return newApp(conn, undoDepth), cleanup, nil
}
