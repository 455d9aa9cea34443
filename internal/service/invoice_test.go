package service

import (
	"strings"
	"testing"

	"github.com/ledgerline/ledgerline/internal/api/dto"
	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/domain/taxrate"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/testutil"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	testData struct {
		vat             *taxrate.TaxRate
		serviceProduct  *product.Product
		discountProduct *product.Product
		customer        *party.Party
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *InvoiceServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
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
	}
}

func (s *InvoiceServiceSuite) setupService() {
	s.service = NewInvoiceService(s.serviceParams())
}

func (s *InvoiceServiceSuite) setupTestData() {
	s.testData.vat = &taxrate.TaxRate{
		ID:         "txr_vat10",
		Name:       "VAT 10%",
		Code:       "VAT10",
		Percentage: decimal.NewFromInt(10),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().TaxRateRepo.Create(s.GetContext(), s.testData.vat))

	s.testData.serviceProduct = &product.Product{
		ID:               "prod_service",
		Name:             "Consulting",
		DefaultUnit:      "unit",
		ExpenseAccountID: "acct_expense",
		RevenueAccountID: "acct_revenue",
		CustomerTaxIDs:   []string{s.testData.vat.ID},
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), s.testData.serviceProduct))

	s.testData.discountProduct = &product.Product{
		ID:               "prod_discount",
		Name:             "Global Discount",
		DefaultUnit:      "unit",
		ExpenseAccountID: "acct_expense",
		RevenueAccountID: "acct_revenue",
		CustomerTaxIDs:   []string{s.testData.vat.ID},
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), s.testData.discountProduct))

	s.testData.customer = &party.Party{
		ID:                   "party_customer",
		Name:                 "Acme Corp",
		CustomerDiscountRate: lo.ToPtr(decimal.NewFromFloat(0.10)),
		BaseModel:            types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PartyRepo.Create(s.GetContext(), s.testData.customer))

	billingSettings, err := s.GetStores().SettingsRepo.Get(s.GetContext())
	s.NoError(err)
	billingSettings.DiscountProductID = &s.testData.discountProduct.ID
	s.NoError(s.GetStores().SettingsRepo.Update(s.GetContext(), billingSettings))
}

// createReferenceInvoice creates the 5 x 40 taxed plus 20 untaxed draft
// used across the workflow tests.
func (s *InvoiceServiceSuite) createReferenceInvoice() *dto.InvoiceResponse {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		PartyID:   &s.testData.customer.ID,
		Direction: types.InvoiceDirectionReceivable,
		Currency:  "usd",
		LineItems: []*dto.CreateInvoiceLineItemRequest{
			{
				ProductID: &s.testData.serviceProduct.ID,
				Quantity:  decimal.NewFromInt(5),
				UnitPrice: decimal.NewFromInt(40),
			},
			{
				Description: "Shipping",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(20),
				AccountID:   "acct_revenue",
			},
		},
	})
	s.NoError(err)
	return resp
}

func (s *InvoiceServiceSuite) getInvoice(id string) *invoice.Invoice {
	resp, err := s.service.GetInvoice(s.GetContext(), id)
	s.NoError(err)
	return resp.Invoice
}

func (s *InvoiceServiceSuite) discountLines(inv *invoice.Invoice) []*invoice.InvoiceLineItem {
	return lo.Filter(inv.LineItems, func(item *invoice.InvoiceLineItem, _ int) bool {
		return item.IsForProduct(s.testData.discountProduct.ID)
	})
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSeedsRateFromParty() {
	resp := s.createReferenceInvoice()

	s.True(resp.DiscountRate.Equal(decimal.NewFromFloat(0.10)))
	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus)
	s.True(resp.UntaxedAmount.Equal(decimal.NewFromInt(220)))
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(20)))
	s.True(resp.Total.Equal(decimal.NewFromInt(240)))

	// the rate is stored but no discount line materializes yet
	inv := s.getInvoice(resp.Invoice.ID)
	s.Len(inv.LineItems, 2)
	s.Empty(s.discountLines(inv))

	// product line picked up the declared tax
	productLine, found := lo.Find(inv.LineItems, func(item *invoice.InvoiceLineItem) bool {
		return item.IsForProduct(s.testData.serviceProduct.ID)
	})
	s.True(found)
	s.Equal([]string{s.testData.vat.ID}, productLine.TaxRateIDs)
	s.Equal("Consulting", productLine.Description)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceExplicitRateWins() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		PartyID:      &s.testData.customer.ID,
		Direction:    types.InvoiceDirectionReceivable,
		Currency:     "usd",
		DiscountRate: lo.ToPtr(decimal.NewFromFloat(0.25)),
	})
	s.NoError(err)
	s.True(resp.DiscountRate.Equal(decimal.NewFromFloat(0.25)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceQuantizesRate() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Direction:    types.InvoiceDirectionReceivable,
		Currency:     "usd",
		DiscountRate: lo.ToPtr(decimal.NewFromFloat(0.123456)),
	})
	s.NoError(err)
	s.True(resp.DiscountRate.Equal(decimal.NewFromFloat(0.1235)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceWithoutParty() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Direction: types.InvoiceDirectionReceivable,
		Currency:  "usd",
	})
	s.NoError(err)
	s.True(resp.DiscountRate.IsZero())
}

func (s *InvoiceServiceSuite) TestUpdateDiscountRateDraftOnly() {
	resp := s.createReferenceInvoice()

	updated, err := s.service.UpdateDiscountRate(s.GetContext(), resp.Invoice.ID, decimal.NewFromFloat(0.05))
	s.NoError(err)
	s.True(updated.DiscountRate.Equal(decimal.NewFromFloat(0.05)))

	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	_, err = s.service.UpdateDiscountRate(s.GetContext(), resp.Invoice.ID, decimal.NewFromFloat(0.20))
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestValidateInvoicesAppliesDiscount() {
	resp := s.createReferenceInvoice()

	s.NoError(s.service.ValidateInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	inv := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusValidated, inv.InvoiceStatus)
	s.NotNil(inv.ValidatedAt)
	s.Len(s.discountLines(inv), 1)
	s.True(inv.UntaxedAmount.Equal(decimal.NewFromInt(198)))
	s.True(inv.TaxAmount.Equal(decimal.NewFromFloat(17.80)))
	s.True(inv.Total.Equal(decimal.NewFromFloat(215.80)))

	// already validated
	err := s.service.ValidateInvoices(s.GetContext(), []string{resp.Invoice.ID})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestPostInvoices() {
	resp := s.createReferenceInvoice()

	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	inv := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusPosted, inv.InvoiceStatus)
	s.NotNil(inv.PostedAt)
	s.NotNil(inv.InvoiceNumber)
	s.True(strings.HasPrefix(*inv.InvoiceNumber, "INV-"))
	s.Len(s.discountLines(inv), 1)
	s.True(inv.Total.Equal(decimal.NewFromFloat(215.80)))
}

func (s *InvoiceServiceSuite) TestPostValidatedInvoice() {
	resp := s.createReferenceInvoice()

	s.NoError(s.service.ValidateInvoices(s.GetContext(), []string{resp.Invoice.ID}))
	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	inv := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusPosted, inv.InvoiceStatus)
	s.Len(s.discountLines(inv), 1)
}

func (s *InvoiceServiceSuite) TestPostCancelledInvoiceFails() {
	resp := s.createReferenceInvoice()
	s.NoError(s.service.CancelInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	err := s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestDraftInvoicesRemovesDiscount() {
	resp := s.createReferenceInvoice()
	s.NoError(s.service.ValidateInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	s.NoError(s.service.DraftInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	inv := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusDraft, inv.InvoiceStatus)
	s.Nil(inv.ValidatedAt)
	s.Len(inv.LineItems, 2)
	s.Empty(s.discountLines(inv))
	s.True(inv.UntaxedAmount.Equal(decimal.NewFromInt(220)))

	// the stored rate survives for the next apply
	s.True(inv.DiscountRate.Equal(decimal.NewFromFloat(0.10)))
}

func (s *InvoiceServiceSuite) TestCancelInvoicesRemovesDiscount() {
	resp := s.createReferenceInvoice()
	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	s.NoError(s.service.CancelInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	inv := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusCancelled, inv.InvoiceStatus)
	s.NotNil(inv.CancelledAt)
	s.Len(inv.LineItems, 2)
	s.Empty(s.discountLines(inv))
}

func (s *InvoiceServiceSuite) TestCreditInvoiceWithRefund() {
	resp := s.createReferenceInvoice()
	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	credit, err := s.service.CreditInvoice(s.GetContext(), resp.Invoice.ID, true)
	s.NoError(err)

	// the original is cancelled and its discount line removed
	original := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusCancelled, original.InvoiceStatus)
	s.Empty(s.discountLines(original))

	// the credit note carries the rate but not the discount line
	creditInv := s.getInvoice(credit.Invoice.ID)
	s.Equal(types.InvoiceStatusDraft, creditInv.InvoiceStatus)
	s.True(creditInv.DiscountRate.Equal(decimal.NewFromFloat(0.10)))
	s.Len(creditInv.LineItems, 2)
	s.Empty(s.discountLines(creditInv))
	s.True(creditInv.UntaxedAmount.Equal(decimal.NewFromInt(-220)))

	// posting the credit regenerates the discount on the negated base
	s.NoError(s.service.PostInvoices(s.GetContext(), []string{creditInv.ID}))
	posted := s.getInvoice(creditInv.ID)
	s.Len(s.discountLines(posted), 1)
	s.True(posted.UntaxedAmount.Equal(decimal.NewFromInt(-198)))
	s.True(posted.TaxAmount.Equal(decimal.NewFromFloat(-17.80)))
}

func (s *InvoiceServiceSuite) TestCreditInvoiceWithoutRefund() {
	resp := s.createReferenceInvoice()
	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	credit, err := s.service.CreditInvoice(s.GetContext(), resp.Invoice.ID, false)
	s.NoError(err)

	original := s.getInvoice(resp.Invoice.ID)
	s.Equal(types.InvoiceStatusPosted, original.InvoiceStatus)
	s.Len(s.discountLines(original), 1)

	creditInv := s.getInvoice(credit.Invoice.ID)
	s.True(creditInv.UntaxedAmount.Equal(decimal.NewFromInt(-220)))
}

func (s *InvoiceServiceSuite) TestDuplicateInvoice() {
	resp := s.createReferenceInvoice()
	s.NoError(s.service.PostInvoices(s.GetContext(), []string{resp.Invoice.ID}))

	duplicate, err := s.service.DuplicateInvoice(s.GetContext(), resp.Invoice.ID)
	s.NoError(err)

	dup := s.getInvoice(duplicate.Invoice.ID)
	s.Equal(types.InvoiceStatusDraft, dup.InvoiceStatus)
	s.Nil(dup.InvoiceNumber)
	s.True(dup.DiscountRate.Equal(decimal.NewFromFloat(0.10)))
	s.Len(dup.LineItems, 2)
	s.Empty(s.discountLines(dup))
	s.True(dup.UntaxedAmount.Equal(decimal.NewFromInt(220)))
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	s.createReferenceInvoice()
	s.createReferenceInvoice()

	filter := types.NewDefaultInvoiceFilter()
	resp, err := s.service.ListInvoices(s.GetContext(), filter)
	s.NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(2, resp.Pagination.Total)
}
