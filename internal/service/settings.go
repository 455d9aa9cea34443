package service

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/settings"
)

// SettingsService exposes the tenant billing configuration.
type SettingsService interface {
	GetSettings(ctx context.Context) (*settings.BillingSettings, error)

	// SetDiscountProduct configures the product used to tag discount
	// lines. The product must exist.
	SetDiscountProduct(ctx context.Context, productID string) (*settings.BillingSettings, error)
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{
		ServiceParams: params,
	}
}

func (s *settingsService) GetSettings(ctx context.Context) (*settings.BillingSettings, error) {
	return s.SettingsRepo.Get(ctx)
}

func (s *settingsService) SetDiscountProduct(ctx context.Context, productID string) (*settings.BillingSettings, error) {
	if _, err := s.ProductRepo.Get(ctx, productID); err != nil {
		return nil, err
	}

	billingSettings, err := s.SettingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	billingSettings.DiscountProductID = &productID
	if err := s.SettingsRepo.Update(ctx, billingSettings); err != nil {
		return nil, err
	}

	s.Logger.Infow("configured discount product", "product_id", productID)
	return billingSettings, nil
}
