package taxrule

import (
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// TaxRule maps the taxes a product declares to the taxes that actually
// apply for a given counterparty, e.g. substituting a domestic VAT with an
// intra-community one, dropping it, or injecting a tax unconditionally.
type TaxRule struct {
	// ID is the unique identifier for the tax rule
	ID string `db:"id" json:"id"`

	// Name is the human-readable name for the tax rule
	Name string `db:"name" json:"name"`

	// Lines are the substitution entries, evaluated in order
	Lines []*TaxRuleLine `json:"lines,omitempty"`

	// EnvironmentID is the environment identifier for the tax rule
	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

// TaxRuleLine is a single substitution entry. An entry with a nil
// OriginTaxRateID matches only "apply with no base tax" calls and is how
// unconditional taxes are injected.
type TaxRuleLine struct {
	// ID is the unique identifier for the rule line
	ID string `db:"id" json:"id"`

	// OriginTaxRateID is the declared tax this entry substitutes.
	// Nil entries match applications with no base tax.
	OriginTaxRateID *string `db:"origin_tax_rate_id" json:"origin_tax_rate_id,omitempty"`

	// Direction restricts the entry to one invoice direction when set
	Direction *types.InvoiceDirection `db:"direction" json:"direction,omitempty"`

	// SubstituteTaxRateIDs are the taxes that replace the origin tax.
	// Empty means the origin tax is dropped.
	SubstituteTaxRateIDs []string `db:"substitute_tax_rate_ids" json:"substitute_tax_rate_ids"`
}

// Apply resolves the taxes for one declared tax (or none) under this rule.
// The first matching entry wins and its substitutes replace the origin
// tax. With no matching entry the origin tax is kept verbatim; a nil
// origin with no matching entry yields nothing.
func (r *TaxRule) Apply(originTaxRateID *string, pattern types.TaxRulePattern) []string {
	for _, line := range r.Lines {
		if !line.matches(originTaxRateID, pattern) {
			continue
		}
		return append([]string{}, line.SubstituteTaxRateIDs...)
	}
	if originTaxRateID != nil {
		return []string{*originTaxRateID}
	}
	return nil
}

func (l *TaxRuleLine) matches(originTaxRateID *string, pattern types.TaxRulePattern) bool {
	if l.Direction != nil && *l.Direction != pattern.Direction {
		return false
	}
	if l.OriginTaxRateID == nil {
		return originTaxRateID == nil
	}
	return originTaxRateID != nil && *l.OriginTaxRateID == *originTaxRateID
}

// TaxRateIDs returns every tax rate referenced by the rule's entries.
func (r *TaxRule) TaxRateIDs() []string {
	var ids []string
	for _, line := range r.Lines {
		if line.OriginTaxRateID != nil {
			ids = append(ids, *line.OriginTaxRateID)
		}
		ids = append(ids, line.SubstituteTaxRateIDs...)
	}
	return lo.Uniq(ids)
}
