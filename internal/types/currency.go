package types

import "strings"

// zeroDecimalCurrencies are ISO 4217 currencies without minor units.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {},
	"KRW": {}, "MGA": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// GetCurrencyPrecision returns the number of fractional digits used for
// monetary rounding in the given currency. Defaults to 2.
func GetCurrencyPrecision(currency string) int32 {
	if _, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]; ok {
		return 0
	}
	return 2
}
