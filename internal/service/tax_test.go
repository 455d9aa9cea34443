package service

import (
	"testing"

	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/domain/taxrate"
	"github.com/ledgerline/ledgerline/internal/domain/taxrule"
	"github.com/ledgerline/ledgerline/internal/testutil"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  TaxService
	testData struct {
		domesticVAT *taxrate.TaxRate
		exportVAT   *taxrate.TaxRate
		ecoLevy     *taxrate.TaxRate
		prod        *product.Product
	}
}

func TestTaxService(t *testing.T) {
	suite.Run(t, new(TaxServiceSuite))
}

func (s *TaxServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTaxService(ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		DB:                  s.GetDB(),
		PartyRepo:           s.GetStores().PartyRepo,
		ProductRepo:         s.GetStores().ProductRepo,
		TaxRateRepo:         s.GetStores().TaxRateRepo,
		TaxRuleRepo:         s.GetStores().TaxRuleRepo,
		InvoiceRepo:         s.GetStores().InvoiceRepo,
		InvoiceLineItemRepo: s.GetStores().InvoiceLineItemRepo,
		OrderRepo:           s.GetStores().OrderRepo,
		SettingsRepo:        s.GetStores().SettingsRepo,
	})
	s.setupTestData()
}

func (s *TaxServiceSuite) setupTestData() {
	s.testData.domesticVAT = &taxrate.TaxRate{
		ID:         "txr_domestic",
		Name:       "VAT 10%",
		Code:       "VAT10",
		Percentage: decimal.NewFromInt(10),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.testData.exportVAT = &taxrate.TaxRate{
		ID:         "txr_export",
		Name:       "VAT 0% export",
		Code:       "VAT0",
		Percentage: decimal.Zero,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.testData.ecoLevy = &taxrate.TaxRate{
		ID:         "txr_eco",
		Name:       "Eco levy 2%",
		Code:       "ECO2",
		Percentage: decimal.NewFromInt(2),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	for _, tr := range []*taxrate.TaxRate{s.testData.domesticVAT, s.testData.exportVAT, s.testData.ecoLevy} {
		s.NoError(s.GetStores().TaxRateRepo.Create(s.GetContext(), tr))
	}

	s.testData.prod = &product.Product{
		ID:               "prod_service",
		Name:             "Consulting",
		DefaultUnit:      "unit",
		ExpenseAccountID: "acct_expense",
		RevenueAccountID: "acct_revenue",
		CustomerTaxIDs:   []string{s.testData.domesticVAT.ID},
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), s.testData.prod))
}

func (s *TaxServiceSuite) createRule(lines []*taxrule.TaxRuleLine) *taxrule.TaxRule {
	rule := &taxrule.TaxRule{
		ID:        "rule_test",
		Name:      "Test rule",
		Lines:     lines,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().TaxRuleRepo.Create(s.GetContext(), rule))
	return rule
}

func (s *TaxServiceSuite) createParty(ruleID *string) *party.Party {
	p := &party.Party{
		ID:                "party_test",
		Name:              "Test Party",
		CustomerTaxRuleID: ruleID,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PartyRepo.Create(s.GetContext(), p))
	return p
}

func (s *TaxServiceSuite) TestResolveLineTaxesWithoutRule() {
	p := s.createParty(nil)

	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Equal([]string{s.testData.domesticVAT.ID}, taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesWithoutParty() {
	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, nil, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Equal([]string{s.testData.domesticVAT.ID}, taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesSubstitution() {
	rule := s.createRule([]*taxrule.TaxRuleLine{
		{
			ID:                   "rule_line_1",
			OriginTaxRateID:      &s.testData.domesticVAT.ID,
			SubstituteTaxRateIDs: []string{s.testData.exportVAT.ID},
		},
	})
	p := s.createParty(&rule.ID)

	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Equal([]string{s.testData.exportVAT.ID}, taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesDrop() {
	rule := s.createRule([]*taxrule.TaxRuleLine{
		{
			ID:              "rule_line_1",
			OriginTaxRateID: &s.testData.domesticVAT.ID,
			// no substitutes: the declared tax is dropped
		},
	})
	p := s.createParty(&rule.ID)

	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Empty(taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesUnconditionalInjection() {
	rule := s.createRule([]*taxrule.TaxRuleLine{
		{
			ID:                   "rule_line_1",
			SubstituteTaxRateIDs: []string{s.testData.ecoLevy.ID},
		},
	})
	p := s.createParty(&rule.ID)

	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.ElementsMatch([]string{s.testData.domesticVAT.ID, s.testData.ecoLevy.ID}, taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesDirectionScoped() {
	rule := s.createRule([]*taxrule.TaxRuleLine{
		{
			ID:                   "rule_line_1",
			OriginTaxRateID:      &s.testData.domesticVAT.ID,
			Direction:            lo.ToPtr(types.InvoiceDirectionPayable),
			SubstituteTaxRateIDs: []string{s.testData.exportVAT.ID},
		},
	})
	p := s.createParty(&rule.ID)

	// entry is scoped to payable; a receivable invoice keeps the tax
	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Equal([]string{s.testData.domesticVAT.ID}, taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesFirstMatchWins() {
	rule := s.createRule([]*taxrule.TaxRuleLine{
		{
			ID:                   "rule_line_1",
			OriginTaxRateID:      &s.testData.domesticVAT.ID,
			SubstituteTaxRateIDs: []string{s.testData.exportVAT.ID},
		},
		{
			ID:                   "rule_line_2",
			OriginTaxRateID:      &s.testData.domesticVAT.ID,
			SubstituteTaxRateIDs: []string{s.testData.ecoLevy.ID},
		},
	})
	p := s.createParty(&rule.ID)

	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Equal([]string{s.testData.exportVAT.ID}, taxIDs)
}

func (s *TaxServiceSuite) TestResolveLineTaxesDeduplicates() {
	rule := s.createRule([]*taxrule.TaxRuleLine{
		{
			ID:                   "rule_line_1",
			OriginTaxRateID:      &s.testData.domesticVAT.ID,
			SubstituteTaxRateIDs: []string{s.testData.ecoLevy.ID},
		},
		{
			ID:                   "rule_line_2",
			SubstituteTaxRateIDs: []string{s.testData.ecoLevy.ID},
		},
	})
	p := s.createParty(&rule.ID)

	taxIDs, err := s.service.ResolveLineTaxes(s.GetContext(), s.testData.prod, p, types.InvoiceDirectionReceivable)
	s.NoError(err)
	s.Equal([]string{s.testData.ecoLevy.ID}, taxIDs)
}
