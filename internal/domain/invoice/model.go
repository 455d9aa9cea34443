package invoice

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model. The workflow status is
// owned by the host workflow engine; this core hooks its transitions to
// keep the global discount line in sync.
type Invoice struct {
	ID            string                 `json:"id"`
	InvoiceNumber *string                `json:"invoice_number,omitempty"`
	PartyID       *string                `json:"party_id,omitempty"`
	Direction     types.InvoiceDirection `json:"direction"`
	InvoiceStatus types.InvoiceStatus    `json:"invoice_status"`
	Currency      string                 `json:"currency"`

	// DiscountRate is the global discount applied to the invoice as a
	// decimal fraction (0.05 = 5%). Seeded from the party profile at
	// creation time and editable only while the invoice is in draft.
	DiscountRate decimal.Decimal `json:"discount_rate"`

	Description string `json:"description,omitempty"`

	// Aggregates recomputed from the line set after every line mutation
	UntaxedAmount decimal.Decimal `json:"untaxed_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`

	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Metadata      types.Metadata     `json:"metadata,omitempty"`
	LineItems     []*InvoiceLineItem `json:"line_items,omitempty"`
	EnvironmentID string             `json:"environment_id"`

	types.BaseModel
}

// DisplayName identifies the invoice in messages shown to operators.
func (i *Invoice) DisplayName() string {
	if i.InvoiceNumber != nil && *i.InvoiceNumber != "" {
		return *i.InvoiceNumber
	}
	return i.ID
}

// IsDraft reports whether the invoice is still editable.
func (i *Invoice) IsDraft() bool {
	return i.InvoiceStatus == types.InvoiceStatusDraft
}

// UntaxedAmountExcluding sums the line amounts, skipping lines that
// reference the given product. Used to compute the discount base without
// a previously materialized discount line.
func (i *Invoice) UntaxedAmountExcluding(productID string) decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.LineItems {
		if item.Type != types.InvoiceLineItemTypeLine {
			continue
		}
		if productID != "" && item.ProductID != nil && *item.ProductID == productID {
			continue
		}
		total = total.Add(item.Amount())
	}
	return total
}

// Validate validates the invoice
func (i *Invoice) Validate() error {
	if err := i.Direction.Validate(); err != nil {
		return err
	}

	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}

	if i.DiscountRate.IsNegative() {
		return NewValidationError("discount_rate", "must be non negative")
	}

	for _, item := range i.LineItems {
		if item.Currency != i.Currency {
			return NewValidationError("line_items", "currency must match invoice currency")
		}
		if err := item.Validate(); err != nil {
			return err
		}
	}

	return nil
}
