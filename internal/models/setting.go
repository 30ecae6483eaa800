package models

// Setting is a single key/value row. The only key in use is tax_rate.
type Setting struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:255;not null"`
}

const SettingTaxRate = "tax_rate"

// DefaultTaxRate seeds new databases.
const DefaultTaxRate = "0.2"
