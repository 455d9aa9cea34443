package settings

import (
	"github.com/ledgerline/ledgerline/internal/types"
)

// BillingSettings is the tenant-scoped billing configuration this core
// reads. The discount product is the marker product discount lines
// reference; without it no non-zero discount can be materialized.
type BillingSettings struct {
	ID string `json:"id"`

	// DiscountProductID is the product used exclusively to tag discount
	// lines. Nil until an operator configures it.
	DiscountProductID *string `json:"discount_product_id,omitempty"`

	EnvironmentID string `json:"environment_id"`

	types.BaseModel
}
