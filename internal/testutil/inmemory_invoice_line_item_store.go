package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/samber/lo"
)

// InMemoryInvoiceLineItemStore implements invoice.LineItemRepository
type InMemoryInvoiceLineItemStore struct {
	*InMemoryStore[*invoice.InvoiceLineItem]
}

// NewInMemoryInvoiceLineItemStore creates a new in-memory invoice line item store
func NewInMemoryInvoiceLineItemStore() *InMemoryInvoiceLineItemStore {
	return &InMemoryInvoiceLineItemStore{
		InMemoryStore: NewInMemoryStore[*invoice.InvoiceLineItem](),
	}
}

func copyInvoiceLineItem(item *invoice.InvoiceLineItem) *invoice.InvoiceLineItem {
	if item == nil {
		return nil
	}

	copied := *item
	copied.ProductID = copyStringPtr(item.ProductID)
	copied.TaxRateIDs = append([]string{}, item.TaxRateIDs...)
	return &copied
}

func (s *InMemoryInvoiceLineItemStore) CreateBulk(ctx context.Context, items []*invoice.InvoiceLineItem) error {
	for _, item := range items {
		if err := s.InMemoryStore.Create(ctx, item.ID, copyInvoiceLineItem(item)); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryInvoiceLineItemStore) DeleteBulk(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.InMemoryStore.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryInvoiceLineItemStore) ListByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*invoice.InvoiceLineItem, error) {
	filterFn := func(ctx context.Context, item *invoice.InvoiceLineItem, _ interface{}) bool {
		return lo.Contains(invoiceIDs, item.InvoiceID)
	}
	sortFn := func(i, j *invoice.InvoiceLineItem) bool {
		if i.CreatedAt.Equal(j.CreatedAt) {
			return i.ID < j.ID
		}
		return i.CreatedAt.Before(j.CreatedAt)
	}

	items, err := s.InMemoryStore.List(ctx, nil, filterFn, sortFn)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]*invoice.InvoiceLineItem, len(invoiceIDs))
	for _, item := range items {
		result[item.InvoiceID] = append(result[item.InvoiceID], copyInvoiceLineItem(item))
	}
	return result, nil
}
