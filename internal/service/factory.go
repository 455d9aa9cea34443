package service

import (
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
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     db.Client

	// Repositories
	PartyRepo           party.Repository
	ProductRepo         product.Repository
	TaxRateRepo         taxrate.Repository
	TaxRuleRepo         taxrule.Repository
	InvoiceRepo         invoice.Repository
	InvoiceLineItemRepo invoice.LineItemRepository
	OrderRepo           order.Repository
	SettingsRepo        settings.Repository
}
