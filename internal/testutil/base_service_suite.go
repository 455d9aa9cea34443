package testutil

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline/internal/config"
	"github.com/ledgerline/ledgerline/internal/db"
	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/ledgerline/ledgerline/internal/domain/order"
	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/domain/settings"
	"github.com/ledgerline/ledgerline/internal/domain/taxrate"
	"github.com/ledgerline/ledgerline/internal/domain/taxrule"
	"github.com/ledgerline/ledgerline/internal/logger"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/ledgerline/ledgerline/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PartyRepo           party.Repository
	ProductRepo         product.Repository
	TaxRateRepo         taxrate.Repository
	TaxRuleRepo         taxrule.Repository
	InvoiceRepo         invoice.Repository
	InvoiceLineItemRepo invoice.LineItemRepository
	OrderRepo           order.Repository
	SettingsRepo        settings.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     db.Client
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		PartyRepo:           NewInMemoryPartyStore(),
		ProductRepo:         NewInMemoryProductStore(),
		TaxRateRepo:         NewInMemoryTaxRateStore(),
		TaxRuleRepo:         NewInMemoryTaxRuleStore(),
		InvoiceRepo:         NewInMemoryInvoiceStore(),
		InvoiceLineItemRepo: NewInMemoryInvoiceLineItemStore(),
		OrderRepo:           NewInMemoryOrderStore(),
		SettingsRepo:        NewInMemorySettingsStore(),
	}

	s.db = NewInMemoryDBClient(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.PartyRepo.(*InMemoryPartyStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.TaxRateRepo.(*InMemoryTaxRateStore).Clear()
	s.stores.TaxRuleRepo.(*InMemoryTaxRuleStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.InvoiceLineItemRepo.(*InMemoryInvoiceLineItemStore).Clear()
	s.stores.OrderRepo.(*InMemoryOrderStore).Clear()
	s.stores.SettingsRepo.(*InMemorySettingsStore).Clear()
}

// ClearStores clears all in-memory stores
func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() db.Client {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
