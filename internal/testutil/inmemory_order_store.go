package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/order"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
}

// NewInMemoryOrderStore creates a new in-memory order store
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
	}
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}

	copied := *o
	copied.OrderNumber = copyStringPtr(o.OrderNumber)
	copied.Lines = lo.Map(o.Lines, func(line *order.OrderLine, _ int) *order.OrderLine {
		lineCopy := *line
		lineCopy.ProductID = copyStringPtr(line.ProductID)
		return &lineCopy
	})
	return &copied
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	return s.InMemoryStore.Create(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) List(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	items, err := s.InMemoryStore.List(ctx, filter, orderFilterFn, orderSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(o *order.Order, _ int) *order.Order {
		return copyOrder(o)
	}), nil
}

func orderFilterFn(ctx context.Context, o *order.Order, filter interface{}) bool {
	f, ok := filter.(*types.OrderFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && o.TenantID != tenantID {
		return false
	}

	if !CheckEnvironmentFilter(ctx, o.EnvironmentID) {
		return false
	}

	if len(f.OrderIDs) > 0 && !lo.Contains(f.OrderIDs, o.ID) {
		return false
	}

	if f.Type != "" && o.Type != f.Type {
		return false
	}

	return true
}

func orderSortFn(i, j *order.Order) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
