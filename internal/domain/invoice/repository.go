package invoice

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/types"
)

// Repository defines the interface for invoice persistence operations.
// Invoices returned by Get and List do not include line items; use
// LineItemRepository to load them.
type Repository interface {
	// Create creates a new invoice
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, inv *Invoice) error

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices based on filter criteria
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
}
