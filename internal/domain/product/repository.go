package product

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/types"
)

// Repository defines the interface for product persistence operations
type Repository interface {
	// Create creates a new product
	Create(ctx context.Context, p *Product) error

	// Get retrieves a product by ID
	Get(ctx context.Context, id string) (*Product, error)

	// Update updates an existing product
	Update(ctx context.Context, p *Product) error

	// List retrieves products based on filter criteria
	List(ctx context.Context, filter *types.ProductFilter) ([]*Product, error)
}
