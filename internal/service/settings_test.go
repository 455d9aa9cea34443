package service

import (
	"testing"

	"github.com/ledgerline/ledgerline/internal/domain/product"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/testutil"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SettingsService
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewSettingsService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		ProductRepo:  s.GetStores().ProductRepo,
		SettingsRepo: s.GetStores().SettingsRepo,
	})
}

func (s *SettingsServiceSuite) TestGetSettingsDefaultsToEmpty() {
	billingSettings, err := s.service.GetSettings(s.GetContext())
	s.NoError(err)
	s.Nil(billingSettings.DiscountProductID)
}

func (s *SettingsServiceSuite) TestSetDiscountProduct() {
	prod := &product.Product{
		ID:               "prod_discount",
		Name:             "Global Discount",
		DefaultUnit:      "unit",
		ExpenseAccountID: "acct_expense",
		RevenueAccountID: "acct_revenue",
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), prod))

	billingSettings, err := s.service.SetDiscountProduct(s.GetContext(), prod.ID)
	s.NoError(err)
	s.NotNil(billingSettings.DiscountProductID)
	s.Equal(prod.ID, *billingSettings.DiscountProductID)

	stored, err := s.service.GetSettings(s.GetContext())
	s.NoError(err)
	s.Equal(prod.ID, *stored.DiscountProductID)
}

func (s *SettingsServiceSuite) TestSetDiscountProductUnknownProduct() {
	_, err := s.service.SetDiscountProduct(s.GetContext(), "prod_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
