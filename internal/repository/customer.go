package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/bookkeeping/internal/models"
	"github.com/diewo77/bookkeeping/internal/validation"
)

// CustomerRepository owns all reads and writes of the customers table.
type CustomerRepository struct {
	db      *gorm.DB
	history *History
}

// NewCustomerRepository builds a repository with an undo history of the
// given depth (1 matches the single-slot behavior of the original tool).
func NewCustomerRepository(db *gorm.DB, undoDepth int) *CustomerRepository {
	return &CustomerRepository{db: db, history: NewHistory(undoDepth)}
}

// List returns customers ordered by id. A non-empty search term filters to
// names containing it, with the store's default LIKE matching.
func (r *CustomerRepository) List(search string) ([]models.Customer, error) {
	q := r.db.Order("id")
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("name LIKE ?", "%"+s+"%")
	}
	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, storeErr("list customers", err)
	}
	return customers, nil
}

// ListByName returns all customers ordered by name, for export.
func (r *CustomerRepository) ListByName() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Order("name").Find(&customers).Error; err != nil {
		return nil, storeErr("list customers", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Get(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "customer", ID: id}
		}
		return nil, storeErr("get customer", err)
	}
	return &c, nil
}

func (r *CustomerRepository) Add(name, email, contact string) (uint, error) {
	v := make(validation.Violations)
	validation.Required("name", name, v)
	if !v.Empty() {
		return 0, &ValidationError{Fields: v}
	}
	c := models.Customer{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Contact: strings.TrimSpace(contact),
	}
	if err := r.db.Create(&c).Error; err != nil {
		return 0, storeErr("add customer", err)
	}
	return c.ID, nil
}

func (r *CustomerRepository) Update(id uint, name, email, contact string) error {
	v := make(validation.Violations)
	validation.Required("name", name, v)
	if !v.Empty() {
		return &ValidationError{Fields: v}
	}
	c, err := r.Get(id)
	if err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Email = strings.TrimSpace(email)
	c.Contact = strings.TrimSpace(contact)
	if err := r.db.Save(c).Error; err != nil {
		return storeErr("update customer", err)
	}
	return nil
}

// Delete removes a customer and returns the deleted record so callers can
// show what went away. Customers still referenced by invoices are refused;
// silently orphaning their invoices would hide them from every listing.
// The deletion is pushed onto the undo history.
func (r *CustomerRepository) Delete(id uint) (*models.Customer, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	var refs int64
	if err := r.db.Model(&models.Invoice{}).Where("customer_id = ?", id).Count(&refs).Error; err != nil {
		return nil, storeErr("count invoices", err)
	}
	if refs > 0 {
		return nil, &ConflictError{Entity: "customer", ID: id, Reason: "still referenced by invoices"}
	}
	if err := r.db.Delete(&models.Customer{}, id).Error; err != nil {
		return nil, storeErr("delete customer", err)
	}
	deleted := *c
	r.history.Push(func(tx *gorm.DB) error {
		// Re-insert with the original id so references stay valid.
		restored := deleted
		return tx.Create(&restored).Error
	})
	return &deleted, nil
}

// Undo reverses the most recent delete. Each delete is undoable exactly
// once; with the default depth a second delete discards the first.
func (r *CustomerRepository) Undo() error {
	comp, ok := r.history.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	if err := comp(r.db); err != nil {
		return storeErr("undo delete", err)
	}
	return nil
}
