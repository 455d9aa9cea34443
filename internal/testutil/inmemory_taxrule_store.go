package testutil

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/taxrule"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
)

// InMemoryTaxRuleStore implements taxrule.Repository
type InMemoryTaxRuleStore struct {
	*InMemoryStore[*taxrule.TaxRule]
}

// NewInMemoryTaxRuleStore creates a new in-memory tax rule store
func NewInMemoryTaxRuleStore() *InMemoryTaxRuleStore {
	return &InMemoryTaxRuleStore{
		InMemoryStore: NewInMemoryStore[*taxrule.TaxRule](),
	}
}

func copyTaxRule(r *taxrule.TaxRule) *taxrule.TaxRule {
	if r == nil {
		return nil
	}

	copied := *r
	copied.Lines = lo.Map(r.Lines, func(line *taxrule.TaxRuleLine, _ int) *taxrule.TaxRuleLine {
		lineCopy := *line
		lineCopy.OriginTaxRateID = copyStringPtr(line.OriginTaxRateID)
		if line.Direction != nil {
			d := *line.Direction
			lineCopy.Direction = &d
		}
		lineCopy.SubstituteTaxRateIDs = append([]string{}, line.SubstituteTaxRateIDs...)
		return &lineCopy
	})
	return &copied
}

func (s *InMemoryTaxRuleStore) Create(ctx context.Context, r *taxrule.TaxRule) error {
	return s.InMemoryStore.Create(ctx, r.ID, copyTaxRule(r))
}

func (s *InMemoryTaxRuleStore) Get(ctx context.Context, id string) (*taxrule.TaxRule, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyTaxRule(r), nil
}

func (s *InMemoryTaxRuleStore) Update(ctx context.Context, r *taxrule.TaxRule) error {
	return s.InMemoryStore.Update(ctx, r.ID, copyTaxRule(r))
}

func (s *InMemoryTaxRuleStore) List(ctx context.Context, filter *types.TaxRuleFilter) ([]*taxrule.TaxRule, error) {
	items, err := s.InMemoryStore.List(ctx, filter, taxRuleFilterFn, taxRuleSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(r *taxrule.TaxRule, _ int) *taxrule.TaxRule {
		return copyTaxRule(r)
	}), nil
}

func taxRuleFilterFn(ctx context.Context, r *taxrule.TaxRule, filter interface{}) bool {
	f, ok := filter.(*types.TaxRuleFilter)
	if !ok {
		return false
	}

	tenantID := types.GetTenantID(ctx)
	if tenantID != "" && r.TenantID != tenantID {
		return false
	}

	if !CheckEnvironmentFilter(ctx, r.EnvironmentID) {
		return false
	}

	if len(f.TaxRuleIDs) > 0 && !lo.Contains(f.TaxRuleIDs, r.ID) {
		return false
	}

	return true
}

func taxRuleSortFn(i, j *taxrule.TaxRule) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
