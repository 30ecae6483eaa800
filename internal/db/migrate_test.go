package db

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/bookkeeping/internal/models"
	"github.com/diewo77/bookkeeping/internal/repository"
)

func TestConnectAndMigrateCreatesSchemaAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	conn, err := ConnectAndMigrate(path)
	require.NoError(t, err)
	defer Close(conn)

	for _, table := range []string{"customers", "invoices", "invoice_items", "settings"} {
		assert.True(t, conn.Migrator().HasTable(table), "missing table %s", table)
	}

	rate, err := repository.NewSettingsRepository(conn).TaxRate()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTaxRate, rate.String())
}

func TestSeedDoesNotOverwriteExistingRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	conn, err := ConnectAndMigrate(path)
	require.NoError(t, err)
	settings := repository.NewSettingsRepository(conn)
	require.NoError(t, settings.SetTaxRate(decimal.RequireFromString("0.15")))
	require.NoError(t, Close(conn))

	// Second startup must leave the edited value alone.
	conn, err = ConnectAndMigrate(path)
	require.NoError(t, err)
	defer Close(conn)

	rate, err := repository.NewSettingsRepository(conn).TaxRate()
	require.NoError(t, err)
	assert.Equal(t, "0.15", rate.String())
}

func TestConnectAndMigrateEmptyPath(t *testing.T) {
	_, err := ConnectAndMigrate("  ")
	assert.Error(t, err)
}
