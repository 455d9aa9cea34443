package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/ledgerline/ledgerline/internal/api/dto"
	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/domain/taxrate"
	"github.com/ledgerline/ledgerline/internal/logger"
	"github.com/ledgerline/ledgerline/internal/service"
	"github.com/ledgerline/ledgerline/internal/testutil"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/ledgerline/ledgerline/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Walks one invoice through the discount lifecycle against in-memory
// repositories: configure the discount product, create a draft with a
// party-seeded rate, post it, inspect the materialized discount line,
// then cancel and watch the line disappear.
func main() {
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	validator.NewValidator()

	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxTenantID, types.DefaultTenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())

	params := service.ServiceParams{
		Logger:              l,
		Config:              cfg,
		DB:                  testutil.NewInMemoryDBClient(l),
		PartyRepo:           testutil.NewInMemoryPartyStore(),
		ProductRepo:         testutil.NewInMemoryProductStore(),
		TaxRateRepo:         testutil.NewInMemoryTaxRateStore(),
		TaxRuleRepo:         testutil.NewInMemoryTaxRuleStore(),
		InvoiceRepo:         testutil.NewInMemoryInvoiceStore(),
		InvoiceLineItemRepo: testutil.NewInMemoryInvoiceLineItemStore(),
		OrderRepo:           testutil.NewInMemoryOrderStore(),
		SettingsRepo:        testutil.NewInMemorySettingsStore(),
	}

	if err := run(ctx, params); err != nil {
		l.Fatalw("walkthrough failed", "error", err)
	}
}

func run(ctx context.Context, params service.ServiceParams) error {
	if err := seed(ctx, params); err != nil {
		return err
	}

	settingsService := service.NewSettingsService(params)
	invoiceService := service.NewInvoiceService(params)

	if _, err := settingsService.SetDiscountProduct(ctx, "prod_discount"); err != nil {
		return err
	}

	partyID := "party_acme"
	created, err := invoiceService.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		PartyID:   &partyID,
		Direction: types.InvoiceDirectionReceivable,
		Currency:  "usd",
		LineItems: []*dto.CreateInvoiceLineItemRequest{
			{
				ProductID: lo.ToPtr("prod_consulting"),
				Quantity:  decimal.NewFromInt(5),
				UnitPrice: decimal.NewFromInt(40),
			},
			{
				Description: "Travel expenses",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(20),
				AccountID:   "acct_revenue",
			},
		},
	})
	if err != nil {
		return err
	}
	fmt.Printf("draft %s  rate=%s  untaxed=%s  tax=%s  total=%s\n",
		created.Invoice.ID, created.DiscountRate, created.UntaxedAmount, created.TaxAmount, created.Total)

	if err := invoiceService.PostInvoices(ctx, []string{created.Invoice.ID}); err != nil {
		return err
	}
	posted, err := invoiceService.GetInvoice(ctx, created.Invoice.ID)
	if err != nil {
		return err
	}
	fmt.Printf("posted %s  untaxed=%s  tax=%s  total=%s\n",
		*posted.InvoiceNumber, posted.UntaxedAmount, posted.TaxAmount, posted.Total)
	for _, item := range posted.LineItems {
		fmt.Printf("  line %-14s qty=%s  unit_price=%s\n", item.Description, item.Quantity, item.UnitPrice)
	}

	if err := invoiceService.CancelInvoices(ctx, []string{posted.Invoice.ID}); err != nil {
		return err
	}
	cancelled, err := invoiceService.GetInvoice(ctx, posted.Invoice.ID)
	if err != nil {
		return err
	}
	fmt.Printf("cancelled %s  lines=%d  untaxed=%s\n",
		cancelled.Invoice.ID, len(cancelled.LineItems), cancelled.UntaxedAmount)

	return nil
}

func seed(ctx context.Context, params service.ServiceParams) error {
	vat := &taxrate.TaxRate{
		ID:         "txr_vat10",
		Name:       "VAT 10%",
		Code:       "VAT10",
		Percentage: decimal.NewFromInt(10),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if err := params.TaxRateRepo.Create(ctx, vat); err != nil {
		return err
	}

	products := []*product.Product{
		{
			ID:               "prod_consulting",
			Name:             "Consulting",
			DefaultUnit:      "hour",
			ExpenseAccountID: "acct_expense",
			RevenueAccountID: "acct_revenue",
			CustomerTaxIDs:   []string{vat.ID},
			BaseModel:        types.GetDefaultBaseModel(ctx),
		},
		{
			ID:               "prod_discount",
			Name:             "Global Discount",
			DefaultUnit:      "unit",
			ExpenseAccountID: "acct_expense",
			RevenueAccountID: "acct_revenue",
			CustomerTaxIDs:   []string{vat.ID},
			BaseModel:        types.GetDefaultBaseModel(ctx),
		},
	}
	for _, p := range products {
		if err := params.ProductRepo.Create(ctx, p); err != nil {
			return err
		}
	}

	acme := &party.Party{
		ID:                   "party_acme",
		Name:                 "Acme Corp",
		CustomerDiscountRate: lo.ToPtr(decimal.NewFromFloat(0.10)),
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}
	return params.PartyRepo.Create(ctx, acme)
}
