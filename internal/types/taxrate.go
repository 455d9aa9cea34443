package types

// TaxRateFilter represents the filter options for listing tax rates
type TaxRateFilter struct {
	*QueryFilter
	TaxRateIDs   []string `json:"tax_rate_ids,omitempty" form:"tax_rate_ids"`
	TaxRateCodes []string `json:"tax_rate_codes,omitempty" form:"tax_rate_codes"`
}

// NewDefaultTaxRateFilter creates a filter with default pagination
func NewDefaultTaxRateFilter() *TaxRateFilter {
	return &TaxRateFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitTaxRateFilter creates an unpaginated tax rate filter
func NewNoLimitTaxRateFilter() *TaxRateFilter {
	return &TaxRateFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}
