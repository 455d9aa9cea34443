package order

import (
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/shopspring/decimal"
)

// Order represents a confirmed sale or purchase order the host system
// generates invoices from. Only the fields the invoice generator needs
// are modeled here.
type Order struct {
	ID            string            `json:"id"`
	OrderNumber   *string           `json:"order_number,omitempty"`
	Type          types.OrderType   `json:"type"`
	OrderStatus   types.OrderStatus `json:"order_status"`
	PartyID       string            `json:"party_id"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description,omitempty"`
	Lines         []*OrderLine      `json:"lines,omitempty"`
	EnvironmentID string            `json:"environment_id"`

	types.BaseModel
}

// OrderLine is a single order line carried over to the generated invoice.
type OrderLine struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   *string         `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
}

// Validate validates the order
func (o *Order) Validate() error {
	if err := o.Type.Validate(); err != nil {
		return err
	}
	return nil
}
