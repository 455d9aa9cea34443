package invoice

import "context"

// LineItemRepository defines the interface for invoice line item
// persistence operations. The discount synchronizer relies on bulk create
// and delete so a whole invoice batch persists its discount lines in one
// operation.
type LineItemRepository interface {
	// CreateBulk persists a batch of line items
	CreateBulk(ctx context.Context, items []*InvoiceLineItem) error

	// DeleteBulk removes a batch of line items by ID
	DeleteBulk(ctx context.Context, ids []string) error

	// ListByInvoiceIDs retrieves the line items of the given invoices,
	// keyed by invoice ID
	ListByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*InvoiceLineItem, error)
}
