package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}

	copied := *p
	copied.CustomerTaxIDs = append([]string{}, p.CustomerTaxIDs...)
	copied.SupplierTaxIDs = append([]string{}, p.SupplierTaxIDs...)
	return &copied
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Update(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) List(ctx context.Context, filter *types.ProductFilter) ([]*product.Product, error) {
	items, err := s.InMemoryStore.List(ctx, filter, productFilterFn, productSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *product.Product, _ int) *product.Product {
		return copyProduct(p)
	}), nil
}

func productFilterFn(ctx context.Context, p *product.Product, filter interface{}) bool {
	f, ok := filter.(*types.ProductFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && p.TenantID != tenantID {
		return false
	}

	if !CheckEnvironmentFilter(ctx, p.EnvironmentID) {
		return false
	}

	if len(f.ProductIDs) > 0 && !lo.Contains(f.ProductIDs, p.ID) {
		return false
	}

	return true
}

func productSortFn(i, j *product.Product) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
