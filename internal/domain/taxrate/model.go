package taxrate

import (
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/shopspring/decimal"
)

// TaxRate represents a percentage tax applied to invoice line amounts.
type TaxRate struct {
	// ID is the unique identifier for the tax rate
	ID string `db:"id" json:"id"`

	// Name is the human-readable name for the tax rate
	Name string `db:"name" json:"name"`

	// Code is the unique alphanumeric identifier for the tax rate
	Code string `db:"code" json:"code"`

	// Percentage is the tax percentage applied to the line amount
	// (10 means 10%)
	Percentage decimal.Decimal `db:"percentage" json:"percentage"`

	// EnvironmentID is the environment identifier for the tax rate
	EnvironmentID string `db:"environment_id" json:"environment_id"`

	Metadata types.Metadata `db:"metadata" json:"metadata,omitempty"`

	types.BaseModel
}

// AmountOn returns the tax amount due on base, rounded at the given
// currency's precision.
func (t *TaxRate) AmountOn(base decimal.Decimal, currency string) decimal.Decimal {
	return base.Mul(t.Percentage).Div(decimal.NewFromInt(100)).
		Round(types.GetCurrencyPrecision(currency))
}
