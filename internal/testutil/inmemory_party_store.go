package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// InMemoryPartyStore implements party.Repository
type InMemoryPartyStore struct {
	*InMemoryStore[*party.Party]
}

// NewInMemoryPartyStore creates a new in-memory party store
func NewInMemoryPartyStore() *InMemoryPartyStore {
	return &InMemoryPartyStore{
		InMemoryStore: NewInMemoryStore[*party.Party](),
	}
}

func copyParty(p *party.Party) *party.Party {
	if p == nil {
		return nil
	}

	copied := *p
	copied.CustomerDiscountRate = copyDecimalPtr(p.CustomerDiscountRate)
	copied.SupplierDiscountRate = copyDecimalPtr(p.SupplierDiscountRate)
	copied.CustomerTaxRuleID = copyStringPtr(p.CustomerTaxRuleID)
	copied.SupplierTaxRuleID = copyStringPtr(p.SupplierTaxRuleID)
	copied.Metadata = lo.Assign(types.Metadata{}, p.Metadata)
	return &copied
}

func (s *InMemoryPartyStore) Create(ctx context.Context, p *party.Party) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyParty(p))
}

func (s *InMemoryPartyStore) Get(ctx context.Context, id string) (*party.Party, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyParty(p), nil
}

func (s *InMemoryPartyStore) Update(ctx context.Context, p *party.Party) error {
	return s.InMemoryStore.Update(ctx, p.ID, copyParty(p))
}

func (s *InMemoryPartyStore) List(ctx context.Context, filter *types.PartyFilter) ([]*party.Party, error) {
	items, err := s.InMemoryStore.List(ctx, filter, partyFilterFn, partySortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *party.Party, _ int) *party.Party {
		return copyParty(p)
	}), nil
}

func partyFilterFn(ctx context.Context, p *party.Party, filter interface{}) bool {
	f, ok := filter.(*types.PartyFilter)
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

	if len(f.PartyIDs) > 0 && !lo.Contains(f.PartyIDs, p.ID) {
		return false
	}

	return true
}

func partySortFn(i, j *party.Party) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
