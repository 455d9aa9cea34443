package taxrate

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/types"
)

// Repository defines the interface for tax rate persistence operations
type Repository interface {
	// Create creates a new tax rate
	Create(ctx context.Context, tr *TaxRate) error

	// Get retrieves a tax rate by ID
	Get(ctx context.Context, id string) (*TaxRate, error)

	// GetByCode retrieves a tax rate by its code
	GetByCode(ctx context.Context, code string) (*TaxRate, error)

	// Update updates an existing tax rate
	Update(ctx context.Context, tr *TaxRate) error

	// List retrieves tax rates based on filter criteria
	List(ctx context.Context, filter *types.TaxRateFilter) ([]*TaxRate, error)
}
