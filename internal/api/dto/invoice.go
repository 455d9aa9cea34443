package dto

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/ledgerline/ledgerline/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents the request to create a draft invoice
type CreateInvoiceRequest struct {
	// party_id is the counterparty the invoice is billed to or from
	PartyID *string `json:"party_id,omitempty"`

	// direction is payable (supplier invoice) or receivable (customer invoice)
	Direction types.InvoiceDirection `json:"direction" validate:"required"`

	// currency is the three-letter currency code of the invoice
	Currency string `json:"currency" validate:"required,len=3"`

	// discount_rate overrides the rate resolved from the party profile
	// when set; the stored rate becomes authoritative afterwards
	DiscountRate *decimal.Decimal `json:"discount_rate,omitempty"`

	Description string         `json:"description,omitempty"`
	Metadata    types.Metadata `json:"metadata,omitempty"`

	LineItems []*CreateInvoiceLineItemRequest `json:"line_items,omitempty"`
}

// CreateInvoiceLineItemRequest represents one line of a new invoice
type CreateInvoiceLineItemRequest struct {
	// product_id is optional; account/description lines carry none
	ProductID *string `json:"product_id,omitempty"`

	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`

	// tax_rate_ids set explicitly skip product/party tax resolution
	TaxRateIDs []string `json:"tax_rate_ids,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.Direction.Validate(); err != nil {
		return err
	}

	if r.DiscountRate != nil && r.DiscountRate.IsNegative() {
		return ierr.NewError("discount_rate must be non negative").
			WithHint("Discount rate must be a decimal fraction between 0 and 1").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToInvoice converts the request to a draft invoice domain model
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		PartyID:       r.PartyID,
		Direction:     r.Direction,
		InvoiceStatus: types.InvoiceStatusDraft,
		Currency:      r.Currency,
		DiscountRate:  decimal.Zero,
		Description:   r.Description,
		Metadata:      r.Metadata,
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if r.DiscountRate != nil {
		inv.DiscountRate = *r.DiscountRate
	}
	return inv
}

// ToInvoiceLineItem converts the request to a line item of the given invoice
func (r *CreateInvoiceLineItemRequest) ToInvoiceLineItem(ctx context.Context, inv *invoice.Invoice) *invoice.InvoiceLineItem {
	return &invoice.InvoiceLineItem{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:     inv.ID,
		Type:          types.InvoiceLineItemTypeLine,
		ProductID:     r.ProductID,
		Description:   r.Description,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		Unit:          r.Unit,
		AccountID:     r.AccountID,
		TaxRateIDs:    r.TaxRateIDs,
		Currency:      inv.Currency,
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// InvoiceResponse represents the response for invoice operations
type InvoiceResponse struct {
	*invoice.Invoice `json:",inline"`
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse struct {
	Items      []*InvoiceResponse        `json:"items"`
	Pagination *types.PaginationResponse `json:"pagination,omitempty"`
}
