package taxrule

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/types"
)

// Repository defines the interface for tax rule persistence operations
type Repository interface {
	// Create creates a new tax rule
	Create(ctx context.Context, r *TaxRule) error

	// Get retrieves a tax rule by ID
	Get(ctx context.Context, id string) (*TaxRule, error)

	// Update updates an existing tax rule
	Update(ctx context.Context, r *TaxRule) error

	// List retrieves tax rules based on filter criteria
	List(ctx context.Context, filter *types.TaxRuleFilter) ([]*TaxRule, error)
}
