package dto

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/order"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/ledgerline/ledgerline/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents the request to record a confirmed order
type CreateOrderRequest struct {
	// type is sale (invoices a receivable) or purchase (invoices a payable)
	Type types.OrderType `json:"type" validate:"required"`

	PartyID     string         `json:"party_id" validate:"required"`
	Currency    string         `json:"currency" validate:"required,len=3"`
	Description string         `json:"description,omitempty"`

	Lines []*CreateOrderLineRequest `json:"lines,omitempty"`
}

// CreateOrderLineRequest represents one line of a new order
type CreateOrderLineRequest struct {
	ProductID   *string         `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
}

func (r *CreateOrderRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

// ToOrder converts the request to an order domain model
func (r *CreateOrderRequest) ToOrder(ctx context.Context) *order.Order {
	o := &order.Order{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		Type:          r.Type,
		OrderStatus:   types.OrderStatusConfirmed,
		PartyID:       r.PartyID,
		Currency:      r.Currency,
		Description:   r.Description,
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	for _, line := range r.Lines {
		o.Lines = append(o.Lines, &order.OrderLine{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER_LINE),
			OrderID:     o.ID,
			ProductID:   line.ProductID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Unit:        line.Unit,
			AccountID:   line.AccountID,
		})
	}
	return o
}

// OrderResponse represents the response for order operations
type OrderResponse struct {
	*order.Order `json:",inline"`
}
