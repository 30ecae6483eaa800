package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/diewo77/bookkeeping/internal/models"
)

// WriteCustomersCSV writes the header row followed by the customers in the
// given order. Callers pass a name-ordered listing.
func WriteCustomersCSV(w io.Writer, customers []models.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Email", "Contact"}); err != nil {
		return err
	}
	for _, c := range customers {
		row := []string{strconv.FormatUint(uint64(c.ID), 10), c.Name, c.Email, c.Contact}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCustomersCSV writes the listing to a file at path.
func ExportCustomersCSV(path string, customers []models.Customer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCustomersCSV(f, customers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
