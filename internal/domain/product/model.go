package product

import (
	"github.com/ledgerline/ledgerline/internal/types"
)

// Product represents a billable product or service as exposed by the host
// catalog. The globally configured discount product is an ordinary Product
// used exclusively to tag discount lines.
type Product struct {
	// ID is the unique identifier for the product
	ID string `db:"id" json:"id"`

	// Name is the display name of the product, used as the description of
	// lines created from it
	Name string `db:"name" json:"name"`

	// DefaultUnit is the unit of measure new lines default to
	DefaultUnit string `db:"default_unit" json:"default_unit"`

	// ExpenseAccountID is the account used on payable invoice lines
	ExpenseAccountID string `db:"expense_account_id" json:"expense_account_id"`

	// RevenueAccountID is the account used on receivable invoice lines
	RevenueAccountID string `db:"revenue_account_id" json:"revenue_account_id"`

	// CustomerTaxIDs are the taxes declared for customer-side (receivable) use
	CustomerTaxIDs []string `db:"customer_tax_ids" json:"customer_tax_ids,omitempty"`

	// SupplierTaxIDs are the taxes declared for supplier-side (payable) use
	SupplierTaxIDs []string `db:"supplier_tax_ids" json:"supplier_tax_ids,omitempty"`

	// EnvironmentID is the environment identifier for the product
	EnvironmentID string `db:"environment_id" json:"environment_id"`

	types.BaseModel
}

// AccountFor returns the account a line for this product books to in the
// given invoice direction.
func (p *Product) AccountFor(direction types.InvoiceDirection) string {
	if direction == types.InvoiceDirectionPayable {
		return p.ExpenseAccountID
	}
	return p.RevenueAccountID
}

// DeclaredTaxIDs returns the taxes declared for the given direction.
func (p *Product) DeclaredTaxIDs(direction types.InvoiceDirection) []string {
	if direction == types.InvoiceDirectionPayable {
		return p.SupplierTaxIDs
	}
	return p.CustomerTaxIDs
}
