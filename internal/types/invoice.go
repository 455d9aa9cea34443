package types

import (
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its workflow.
// Draft invoices are editable; validation and posting freeze them and
// materialize the global discount; reverting to draft or cancelling
// removes it again.
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice can still be modified
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusValidated indicates the invoice passed validation and is awaiting posting
	InvoiceStatusValidated InvoiceStatus = "validated"
	// InvoiceStatusPosted indicates the invoice is booked and immutable
	InvoiceStatusPosted InvoiceStatus = "posted"
	// InvoiceStatusCancelled indicates the invoice is no longer valid
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusValidated,
		InvoiceStatusPosted,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceDirection indicates whether an invoice is payable (supplier side)
// or receivable (customer side). It determines which of the counterparty's
// discount rates and tax rules apply.
type InvoiceDirection string

const (
	// InvoiceDirectionPayable indicates a supplier invoice (purchases)
	InvoiceDirectionPayable InvoiceDirection = "payable"
	// InvoiceDirectionReceivable indicates a customer invoice (sales)
	InvoiceDirectionReceivable InvoiceDirection = "receivable"
)

func (d InvoiceDirection) String() string {
	return string(d)
}

func (d InvoiceDirection) Validate() error {
	allowed := []InvoiceDirection{
		InvoiceDirectionPayable,
		InvoiceDirectionReceivable,
	}
	if !lo.Contains(allowed, d) {
		return ierr.NewError("invalid invoice direction").
			WithHint("Please provide a valid invoice direction").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceLineItemType differentiates billable lines from informational ones.
type InvoiceLineItemType string

const (
	// InvoiceLineItemTypeLine is a regular billable line
	InvoiceLineItemTypeLine InvoiceLineItemType = "line"
	// InvoiceLineItemTypeComment is a non-billable comment line
	InvoiceLineItemTypeComment InvoiceLineItemType = "comment"
)

func (t InvoiceLineItemType) Validate() error {
	allowed := []InvoiceLineItemType{
		InvoiceLineItemTypeLine,
		InvoiceLineItemTypeComment,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid invoice line item type").
			WithHint("Please provide a valid invoice line item type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceFilter represents the filter options for listing invoices
type InvoiceFilter struct {
	*QueryFilter
	InvoiceIDs []string           `json:"invoice_ids,omitempty" form:"invoice_ids"`
	PartyIDs   []string           `json:"party_ids,omitempty" form:"party_ids"`
	Direction  InvoiceDirection   `json:"direction,omitempty" form:"direction"`
	Statuses   []InvoiceStatus    `json:"statuses,omitempty" form:"statuses"`
}

// NewDefaultInvoiceFilter creates a filter with default pagination
func NewDefaultInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitInvoiceFilter creates an unpaginated invoice filter
func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}
