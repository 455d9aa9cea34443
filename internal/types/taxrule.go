package types

// TaxRulePattern carries the matching context a tax rule line is evaluated
// against. The rule engine compares it with each line's declared criteria;
// unset criteria match anything.
type TaxRulePattern struct {
	Direction InvoiceDirection `json:"direction,omitempty"`
}

// TaxRuleFilter represents the filter options for listing tax rules
type TaxRuleFilter struct {
	*QueryFilter
	TaxRuleIDs []string `json:"tax_rule_ids,omitempty" form:"tax_rule_ids"`
}

// NewNoLimitTaxRuleFilter creates an unpaginated tax rule filter
func NewNoLimitTaxRuleFilter() *TaxRuleFilter {
	return &TaxRuleFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}
