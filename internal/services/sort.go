package services

import (
	"sort"
	"strings"

	"github.com/diewo77/bookkeeping/internal/models"
)

// Customer list columns.
const (
	ColumnID      = "id"
	ColumnName    = "name"
	ColumnEmail   = "email"
	ColumnContact = "contact"
)

// SortState tracks the column-header toggle: clicking the same column again
// reverses the order, switching columns resets to ascending.
type SortState struct {
	column  string
	reverse bool
}

// Toggle records a click on column and returns the direction to apply.
func (s *SortState) Toggle(column string) bool {
	if s.column == column {
		s.reverse = !s.reverse
	} else {
		s.column = column
		s.reverse = false
	}
	return s.reverse
}

func (s *SortState) Column() string { return s.column }

// SortCustomers orders rows in place: numeric for the id column,
// case-insensitive lexicographic for every other column. The sort is stable
// so equal keys keep their relative order.
func SortCustomers(rows []models.Customer, column string, reverse bool) {
	less := func(a, b models.Customer) bool {
		switch column {
		case ColumnID:
			return a.ID < b.ID
		case ColumnEmail:
			return strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case ColumnContact:
			return strings.ToLower(a.Contact) < strings.ToLower(b.Contact)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if reverse {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
