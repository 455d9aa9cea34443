package types

import "github.com/shopspring/decimal"

// DefaultDiscountPrecision is the number of fractional digits discount
// rates are stored at when no precision is configured.
const DefaultDiscountPrecision int32 = 4

// QuantizeDiscountRate rounds a discount rate to the configured number of
// fractional digits. Monetary rounding of line and invoice totals is a
// separate concern handled at currency precision.
func QuantizeDiscountRate(rate decimal.Decimal, precision int32) decimal.Decimal {
	if precision < 0 {
		precision = DefaultDiscountPrecision
	}
	return rate.Round(precision)
}
