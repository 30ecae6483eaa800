package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/bookkeeping/internal/models"
)

// SettingsRepository reads and writes the settings table. The only key in
// use is tax_rate, seeded by the migration.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// TaxRate returns the current global tax rate. A missing or unparsable row
// is a ConfigError, never a crash: the seed makes this unreachable in
// practice but a hand-edited database stays recoverable.
func (r *SettingsRepository) TaxRate() (decimal.Decimal, error) {
	var s models.Setting
	err := r.db.First(&s, "key = ?", models.SettingTaxRate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, &ConfigError{Key: models.SettingTaxRate, Reason: "missing"}
		}
		return decimal.Zero, storeErr("read setting", err)
	}
	rate, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, &ConfigError{Key: models.SettingTaxRate, Reason: "unparsable value " + s.Value}
	}
	return rate, nil
}

// SetTaxRate stores a new rate. Rates outside [0, 1] are rejected.
func (r *SettingsRepository) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return violation("tax_rate", "out_of_range")
	}
	s := models.Setting{Key: models.SettingTaxRate, Value: rate.String()}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
	if err != nil {
		return storeErr("write setting", err)
	}
	return nil
}
