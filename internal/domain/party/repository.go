package party

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/types"
)

// Repository defines the interface for party persistence operations.
// Parties are owned and mutated by the host party-management system; this
// core only reads them.
type Repository interface {
	// Create creates a new party
	Create(ctx context.Context, p *Party) error

	// Get retrieves a party by ID
	Get(ctx context.Context, id string) (*Party, error)

	// Update updates an existing party
	Update(ctx context.Context, p *Party) error

	// List retrieves parties based on filter criteria
	List(ctx context.Context, filter *types.PartyFilter) ([]*Party, error)
}
