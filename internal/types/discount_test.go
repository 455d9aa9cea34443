package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuantizeDiscountRate(t *testing.T) {
	tests := []struct {
		name      string
		rate      string
		precision int32
		want      string
	}{
		{"exact at precision", "0.05", 4, "0.05"},
		{"rounds half up", "0.12345", 4, "0.1235"},
		{"truncates trailing digits", "0.123449", 4, "0.1234"},
		{"zero", "0", 4, "0"},
		{"coarser precision", "0.056", 1, "0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := decimal.RequireFromString(tt.rate)
			want := decimal.RequireFromString(tt.want)
			got := QuantizeDiscountRate(rate, tt.precision)
			assert.True(t, got.Equal(want), "got %s want %s", got, want)
		})
	}
}

func TestGetCurrencyPrecision(t *testing.T) {
	assert.Equal(t, int32(2), GetCurrencyPrecision("usd"))
	assert.Equal(t, int32(2), GetCurrencyPrecision("EUR"))
	assert.Equal(t, int32(0), GetCurrencyPrecision("jpy"))
	assert.Equal(t, int32(2), GetCurrencyPrecision("unknown"))
}
