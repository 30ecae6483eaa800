package repository

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/bookkeeping/internal/models"
	"github.com/diewo77/bookkeeping/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.Invoice{}, &models.InvoiceItem{}, &models.Setting{}), "migrate")
	return db
}

func seedTaxRate(t *testing.T, db *gorm.DB, rate string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Setting{Key: models.SettingTaxRate, Value: rate}).Error)
}

func TestCustomerAddEmptyNameRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := repo.Add(name, "a@b.c", "555")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "name %q", name)
		assert.Equal(t, "required", verr.Fields["name"])
	}

	customers, err := repo.List("")
	require.NoError(t, err)
	assert.Empty(t, customers, "rejected adds must not change the list")
}

func TestCustomerAddTrimsAndLists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)

	id, err := repo.Add("  Ann  ", " a@x.com ", " 111 ")
	require.NoError(t, err)

	c, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, "a@x.com", c.Email)
	assert.Equal(t, "111", c.Contact)
}

func TestCustomerListSearchFiltersByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)
	for _, name := range []string{"Ann Smith", "Bob Jones", "Susanna"} {
		_, err := repo.Add(name, "", "")
		require.NoError(t, err)
	}

	hits, err := repo.List("ann")
	require.NoError(t, err)
	// SQLite LIKE is case-insensitive for ASCII: Ann and Susanna match.
	require.Len(t, hits, 2)
	assert.Equal(t, "Ann Smith", hits[0].Name)
	assert.Equal(t, "Susanna", hits[1].Name)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCustomerUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)
	id, err := repo.Add("Ann", "old@x.com", "111")
	require.NoError(t, err)

	require.NoError(t, repo.Update(id, "Ann Smith", "new@x.com", "222"))
	c, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", c.Name)
	assert.Equal(t, "new@x.com", c.Email)

	err = repo.Update(id, "  ", "x", "y")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	var nferr *NotFoundError
	err = repo.Update(9999, "Nobody", "", "")
	assert.ErrorAs(t, err, &nferr)
}

func TestCustomerDeleteUndoRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)
	id, err := repo.Add("Bob", "b@x.com", "555")
	require.NoError(t, err)

	deleted, err := repo.Delete(id)
	require.NoError(t, err)
	assert.Equal(t, id, deleted.ID)

	_, err = repo.Get(id)
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)

	require.NoError(t, repo.Undo())
	restored, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, deleted.ID, restored.ID)
	assert.Equal(t, "Bob", restored.Name)
	assert.Equal(t, "b@x.com", restored.Email)
	assert.Equal(t, "555", restored.Contact)

	// Undo is usable exactly once per delete.
	assert.ErrorIs(t, repo.Undo(), ErrNothingToUndo)
}

func TestCustomerUndoDepthOneKeepsOnlyLastDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)
	first, err := repo.Add("First", "", "")
	require.NoError(t, err)
	second, err := repo.Add("Second", "", "")
	require.NoError(t, err)

	_, err = repo.Delete(first)
	require.NoError(t, err)
	_, err = repo.Delete(second)
	require.NoError(t, err)

	require.NoError(t, repo.Undo())
	_, err = repo.Get(second)
	assert.NoError(t, err, "last delete is restored")
	var nferr *NotFoundError
	_, err = repo.Get(first)
	assert.ErrorAs(t, err, &nferr, "older delete is discarded")

	assert.ErrorIs(t, repo.Undo(), ErrNothingToUndo)
}

func TestCustomerUndoDepthTwo(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 2)
	first, err := repo.Add("First", "", "")
	require.NoError(t, err)
	second, err := repo.Add("Second", "", "")
	require.NoError(t, err)

	_, err = repo.Delete(first)
	require.NoError(t, err)
	_, err = repo.Delete(second)
	require.NoError(t, err)

	require.NoError(t, repo.Undo())
	require.NoError(t, repo.Undo())

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCustomerDeleteBlockedWhenReferenced(t *testing.T) {
	db := setupTestDB(t)
	seedTaxRate(t, db, "0.2")
	repo := NewCustomerRepository(db, 1)
	invoices := NewInvoiceRepository(db, NewSettingsRepository(db), services.NewInvoiceService())

	id, err := repo.Add("Billed", "", "")
	require.NoError(t, err)
	_, err = invoices.Create(id, "2026-01-15", "2026-02-15", []ItemDraft{
		{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)

	_, err = repo.Delete(id)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)

	c, err := repo.Get(id)
	require.NoError(t, err, "refused delete leaves the row in place")
	assert.Equal(t, "Billed", c.Name)
}

func TestCustomerListByNameOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db, 1)
	_, err := repo.Add("Bob", "b@x.com", "555")
	require.NoError(t, err)
	_, err = repo.Add("Ann", "", "")
	require.NoError(t, err)

	ordered, err := repo.ListByName()
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "Ann", ordered[0].Name)
	assert.Equal(t, "Bob", ordered[1].Name)
}
