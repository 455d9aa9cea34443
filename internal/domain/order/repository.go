package order

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/types"
)

// Repository defines the interface for order persistence operations.
// Orders include their lines; they are owned by the host sale/purchase
// modules and read-only from this core's perspective.
type Repository interface {
	// Create creates a new order
	Create(ctx context.Context, o *Order) error

	// Get retrieves an order by ID, including its lines
	Get(ctx context.Context, id string) (*Order, error)

	// List retrieves orders based on filter criteria
	List(ctx context.Context, filter *types.OrderFilter) ([]*Order, error)
}
