package types

import (
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/samber/lo"
)

// OrderType differentiates sale orders (which invoice receivables) from
// purchase orders (which invoice payables).
type OrderType string

const (
	OrderTypeSale     OrderType = "sale"
	OrderTypePurchase OrderType = "purchase"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) Validate() error {
	allowed := []OrderType{
		OrderTypeSale,
		OrderTypePurchase,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid order type").
			WithHint("Please provide a valid order type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceDirection returns the direction of invoices generated from an
// order of this type.
func (t OrderType) InvoiceDirection() InvoiceDirection {
	if t == OrderTypePurchase {
		return InvoiceDirectionPayable
	}
	return InvoiceDirectionReceivable
}

// OrderStatus represents the confirmation state of an order.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// OrderFilter represents the filter options for listing orders
type OrderFilter struct {
	*QueryFilter
	OrderIDs []string  `json:"order_ids,omitempty" form:"order_ids"`
	Type     OrderType `json:"type,omitempty" form:"type"`
}

// NewNoLimitOrderFilter creates an unpaginated order filter
func NewNoLimitOrderFilter() *OrderFilter {
	return &OrderFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}
