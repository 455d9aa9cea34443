package testutil

import (
	"context"
	"sync"

	"github.com/ledgerline/ledgerline/internal/domain/settings"
	"github.com/ledgerline/ledgerline/internal/types"
)

// InMemorySettingsStore implements settings.Repository. One record per
// tenant, created empty on first read.
type InMemorySettingsStore struct {
	mu    sync.RWMutex
	items map[string]*settings.BillingSettings
}

// NewInMemorySettingsStore creates a new in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		items: make(map[string]*settings.BillingSettings),
	}
}

func copyBillingSettings(s *settings.BillingSettings) *settings.BillingSettings {
	if s == nil {
		return nil
	}

	copied := *s
	copied.DiscountProductID = copyStringPtr(s.DiscountProductID)
	return &copied
}

func (s *InMemorySettingsStore) Get(ctx context.Context) (*settings.BillingSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenantID := types.GetTenantID(ctx)
	if stored, ok := s.items[tenantID]; ok {
		return copyBillingSettings(stored), nil
	}

	return &settings.BillingSettings{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SETTINGS),
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}, nil
}

func (s *InMemorySettingsStore) Update(ctx context.Context, billingSettings *settings.BillingSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[types.GetTenantID(ctx)] = copyBillingSettings(billingSettings)
	return nil
}

// Clear removes all stored settings
func (s *InMemorySettingsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]*settings.BillingSettings)
}
