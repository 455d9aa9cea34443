package party

import (
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/shopspring/decimal"
)

// Party represents a counterparty the host system bills or is billed by.
// The same party may act as a customer and as a supplier, each role with
// its own default invoice discount and tax rule.
type Party struct {
	// ID is the unique identifier for the party
	ID string `db:"id" json:"id"`

	// Name is the display name of the party
	Name string `db:"name" json:"name"`

	// CustomerDiscountRate is the default discount applied to receivable
	// invoices for this party, as a decimal fraction (0.05 = 5%).
	// Nil means no discount is configured.
	CustomerDiscountRate *decimal.Decimal `db:"customer_discount_rate" json:"customer_discount_rate,omitempty"`

	// SupplierDiscountRate is the default discount applied to payable
	// invoices for this party. Nil means no discount is configured.
	SupplierDiscountRate *decimal.Decimal `db:"supplier_discount_rate" json:"supplier_discount_rate,omitempty"`

	// CustomerTaxRuleID is the tax rule applied to receivable invoice lines
	CustomerTaxRuleID *string `db:"customer_tax_rule_id" json:"customer_tax_rule_id,omitempty"`

	// SupplierTaxRuleID is the tax rule applied to payable invoice lines
	SupplierTaxRuleID *string `db:"supplier_tax_rule_id" json:"supplier_tax_rule_id,omitempty"`

	// EnvironmentID is the environment identifier for the party
	EnvironmentID string `db:"environment_id" json:"environment_id"`

	Metadata types.Metadata `db:"metadata" json:"metadata,omitempty"`

	types.BaseModel
}

// DiscountRateFor returns the party's stored discount rate for the given
// invoice direction. Nil when no rate is configured for that role.
func (p *Party) DiscountRateFor(direction types.InvoiceDirection) *decimal.Decimal {
	if p == nil {
		return nil
	}
	if direction == types.InvoiceDirectionPayable {
		return p.SupplierDiscountRate
	}
	return p.CustomerDiscountRate
}

// TaxRuleIDFor returns the party's tax rule for the given invoice
// direction, or nil when none is configured.
func (p *Party) TaxRuleIDFor(direction types.InvoiceDirection) *string {
	if p == nil {
		return nil
	}
	if direction == types.InvoiceDirectionPayable {
		return p.SupplierTaxRuleID
	}
	return p.CustomerTaxRuleID
}
