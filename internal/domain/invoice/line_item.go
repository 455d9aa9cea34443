package invoice

import (
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceLineItem represents a single line item in an invoice. A line
// referencing the globally configured discount product is the invoice's
// discount line; everything else is an ordinary line owned by the host.
type InvoiceLineItem struct {
	ID        string                    `json:"id"`
	InvoiceID string                    `json:"invoice_id"`
	Type      types.InvoiceLineItemType `json:"type"`

	// ProductID is optional; pure account/description lines have none
	ProductID *string `json:"product_id,omitempty"`

	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit,omitempty"`

	// AccountID is the ledger account the line books to
	AccountID string `json:"account_id,omitempty"`

	// TaxRateIDs are the taxes applied to this line's amount
	TaxRateIDs []string `json:"tax_rate_ids,omitempty"`

	Currency      string `json:"currency"`
	EnvironmentID string `json:"environment_id"`

	types.BaseModel
}

// Amount returns the untaxed amount of the line. Quantities and unit
// prices may both be negative (credit notes, discount lines).
func (i *InvoiceLineItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// IsForProduct reports whether the line references the given product.
func (i *InvoiceLineItem) IsForProduct(productID string) bool {
	return i.ProductID != nil && *i.ProductID == productID
}

// Validate validates the invoice line item
func (i *InvoiceLineItem) Validate() error {
	if err := i.Type.Validate(); err != nil {
		return err
	}

	if i.InvoiceID == "" {
		return NewValidationError("invoice_id", "is required")
	}

	if i.Type == types.InvoiceLineItemTypeLine && i.Quantity.IsZero() {
		return NewValidationError("quantity", "must be non zero")
	}

	return nil
}
