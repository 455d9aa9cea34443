package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

// copyInvoice returns a deep copy without line items; the repository
// contract keeps lines in the line item store only.
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	copied := *inv
	copied.InvoiceNumber = copyStringPtr(inv.InvoiceNumber)
	copied.PartyID = copyStringPtr(inv.PartyID)
	copied.ValidatedAt = copyTimePtr(inv.ValidatedAt)
	copied.PostedAt = copyTimePtr(inv.PostedAt)
	copied.CancelledAt = copyTimePtr(inv.CancelledAt)
	copied.Metadata = lo.Assign(types.Metadata{}, inv.Metadata)
	copied.LineItems = nil
	return &copied
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	f, ok := filter.(*types.InvoiceFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && inv.TenantID != tenantID {
		return false
	}

	if !CheckEnvironmentFilter(ctx, inv.EnvironmentID) {
		return false
	}

	if len(f.InvoiceIDs) > 0 && !lo.Contains(f.InvoiceIDs, inv.ID) {
		return false
	}

	if len(f.PartyIDs) > 0 {
		if inv.PartyID == nil || !lo.Contains(f.PartyIDs, *inv.PartyID) {
			return false
		}
	}

	if f.Direction != "" && inv.Direction != f.Direction {
		return false
	}

	if len(f.Statuses) > 0 && !lo.Contains(f.Statuses, inv.InvoiceStatus) {
		return false
	}

	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
