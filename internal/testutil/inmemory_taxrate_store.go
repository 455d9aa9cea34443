package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/taxrate"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// InMemoryTaxRateStore implements taxrate.Repository
type InMemoryTaxRateStore struct {
	*InMemoryStore[*taxrate.TaxRate]
}

// NewInMemoryTaxRateStore creates a new in-memory tax rate store
func NewInMemoryTaxRateStore() *InMemoryTaxRateStore {
	return &InMemoryTaxRateStore{
		InMemoryStore: NewInMemoryStore[*taxrate.TaxRate](),
	}
}

func copyTaxRate(tr *taxrate.TaxRate) *taxrate.TaxRate {
	if tr == nil {
		return nil
	}

	copied := *tr
	copied.Metadata = lo.Assign(types.Metadata{}, tr.Metadata)
	return &copied
}

func (s *InMemoryTaxRateStore) Create(ctx context.Context, tr *taxrate.TaxRate) error {
	return s.InMemoryStore.Create(ctx, tr.ID, copyTaxRate(tr))
}

func (s *InMemoryTaxRateStore) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	tr, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTaxRate(tr), nil
}

func (s *InMemoryTaxRateStore) GetByCode(ctx context.Context, code string) (*taxrate.TaxRate, error) {
	filterFn := func(ctx context.Context, tr *taxrate.TaxRate, _ interface{}) bool {
		return tr.Code == code && tr.TenantID == types.GetTenantID(ctx)
	}

	rates, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, ierr.NewError("tax rate not found").
			WithHintf("Tax rate with code %s was not found", code).
			Mark(ierr.ErrNotFound)
	}
	return copyTaxRate(rates[0]), nil
}

func (s *InMemoryTaxRateStore) Update(ctx context.Context, tr *taxrate.TaxRate) error {
	return s.InMemoryStore.Update(ctx, tr.ID, copyTaxRate(tr))
}

func (s *InMemoryTaxRateStore) List(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	items, err := s.InMemoryStore.List(ctx, filter, taxRateFilterFn, taxRateSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(tr *taxrate.TaxRate, _ int) *taxrate.TaxRate {
		return copyTaxRate(tr)
	}), nil
}

func taxRateFilterFn(ctx context.Context, tr *taxrate.TaxRate, filter interface{}) bool {
	f, ok := filter.(*types.TaxRateFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && tr.TenantID != tenantID {
		return false
	}

	if !CheckEnvironmentFilter(ctx, tr.EnvironmentID) {
		return false
	}

	if len(f.TaxRateIDs) > 0 && !lo.Contains(f.TaxRateIDs, tr.ID) {
		return false
	}

	if len(f.TaxRateCodes) > 0 && !lo.Contains(f.TaxRateCodes, tr.Code) {
		return false
	}

	return true
}

func taxRateSortFn(i, j *taxrate.TaxRate) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
