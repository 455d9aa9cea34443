package settings

import "context"

// Repository defines the interface for billing settings persistence.
// Get never fails on absence: a tenant with no stored record gets empty
// settings, and the missing-discount-product case surfaces as a
// configuration error only when a discount must actually materialize.
type Repository interface {
	// Get retrieves the billing settings for the tenant in context
	Get(ctx context.Context) (*BillingSettings, error)

	// Update stores the billing settings for the tenant in context
	Update(ctx context.Context, s *BillingSettings) error
}
