package service

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/domain/settings"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/shopspring/decimal"
)

// DiscountService owns the global invoice discount: resolving party default
// rates and materializing or removing the single discount line per invoice.
type DiscountService interface {
	// ResolveRate returns the discount rate stored on the party profile for
	// the given invoice direction. Nil party or no configured rate yields
	// nil without error.
	ResolveRate(ctx context.Context, partyID *string, direction types.InvoiceDirection) (*decimal.Decimal, error)

	// ApplyDiscount materializes the discount line on each invoice from its
	// stored rate. Any previous discount line is removed first, so the
	// operation is idempotent and self-correcting after line edits.
	ApplyDiscount(ctx context.Context, invoiceIDs []string) error

	// RemoveDiscount deletes every discount line from the given invoices
	// and recomputes their aggregates. Invoices without one are untouched.
	RemoveDiscount(ctx context.Context, invoiceIDs []string) error
}

type discountService struct {
	ServiceParams
	taxService TaxService
}

func NewDiscountService(params ServiceParams) DiscountService {
	return &discountService{
		ServiceParams: params,
		taxService:    NewTaxService(params),
	}
}

func (s *discountService) ResolveRate(ctx context.Context, partyID *string, direction types.InvoiceDirection) (*decimal.Decimal, error) {
	if partyID == nil {
		return nil, nil
	}

	p, err := s.PartyRepo.Get(ctx, *partyID)
	if err != nil {
		return nil, err
	}

	return p.DiscountRateFor(direction), nil
}

func (s *discountService) ApplyDiscount(ctx context.Context, invoiceIDs []string) error {
	if len(invoiceIDs) == 0 {
		return nil
	}

	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		billingSettings, err := s.SettingsRepo.Get(txCtx)
		if err != nil {
			return err
		}

		invoices, err := s.listInvoices(txCtx, invoiceIDs)
		if err != nil {
			return err
		}

		// reapplication starts from a clean slate
		if err := s.removeDiscountLines(txCtx, invoices, billingSettings); err != nil {
			return err
		}

		linesByInvoice, err := s.InvoiceLineItemRepo.ListByInvoiceIDs(txCtx, invoiceIDs)
		if err != nil {
			return err
		}

		var discountProduct *product.Product
		partyCache := make(map[string]*party.Party)
		var newLines []*invoice.InvoiceLineItem

		for _, inv := range invoices {
			inv.LineItems = linesByInvoice[inv.ID]

			base := inv.UntaxedAmountExcluding("")
			amount := inv.DiscountRate.Neg().Mul(base).
				Round(s.Config.Discount.Precision)
			if amount.IsZero() {
				continue
			}

			if billingSettings.DiscountProductID == nil {
				return ierr.NewError("no discount product configured").
					WithHintf("Invoice %s has a discount but no discount product is configured", inv.DisplayName()).
					Mark(ierr.ErrConfiguration)
			}

			if discountProduct == nil {
				discountProduct, err = s.ProductRepo.Get(txCtx, *billingSettings.DiscountProductID)
				if err != nil {
					return err
				}
			}

			line := s.newDiscountLine(txCtx, inv, discountProduct, amount)

			var invParty *party.Party
			if inv.PartyID != nil {
				invParty, err = s.getParty(txCtx, partyCache, *inv.PartyID)
				if err != nil {
					return err
				}
			}
			line.TaxRateIDs, err = s.taxService.ResolveLineTaxes(txCtx, discountProduct, invParty, inv.Direction)
			if err != nil {
				return err
			}

			newLines = append(newLines, line)

			s.Logger.Infow("materialized discount line",
				"invoice_id", inv.ID,
				"discount_rate", inv.DiscountRate,
				"amount", amount)
		}

		if len(newLines) > 0 {
			if err := s.InvoiceLineItemRepo.CreateBulk(txCtx, newLines); err != nil {
				return err
			}
		}

		return s.taxService.RecalculateInvoices(txCtx, invoices)
	})
}

func (s *discountService) RemoveDiscount(ctx context.Context, invoiceIDs []string) error {
	if len(invoiceIDs) == 0 {
		return nil
	}

	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		billingSettings, err := s.SettingsRepo.Get(txCtx)
		if err != nil {
			return err
		}

		invoices, err := s.listInvoices(txCtx, invoiceIDs)
		if err != nil {
			return err
		}

		if err := s.removeDiscountLines(txCtx, invoices, billingSettings); err != nil {
			return err
		}

		return s.taxService.RecalculateInvoices(txCtx, invoices)
	})
}

func (s *discountService) listInvoices(ctx context.Context, invoiceIDs []string) ([]*invoice.Invoice, error) {
	filter := types.NewNoLimitInvoiceFilter()
	filter.InvoiceIDs = invoiceIDs
	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(invoices) != len(invoiceIDs) {
		return nil, ierr.NewError("invoice not found").
			WithHint("One or more of the requested invoices does not exist").
			WithReportableDetails(map[string]any{
				"requested": len(invoiceIDs),
				"found":     len(invoices),
			}).
			Mark(ierr.ErrNotFound)
	}
	return invoices, nil
}

// removeDiscountLines deletes every line tagged with the discount product
// across the given invoices. Tolerates invoices carrying more than one,
// e.g. after a partially failed earlier run.
func (s *discountService) removeDiscountLines(ctx context.Context, invoices []*invoice.Invoice, billingSettings *settings.BillingSettings) error {
	if billingSettings.DiscountProductID == nil {
		// nothing can be tagged as a discount line yet
		return nil
	}

	invoiceIDs := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		invoiceIDs = append(invoiceIDs, inv.ID)
	}

	linesByInvoice, err := s.InvoiceLineItemRepo.ListByInvoiceIDs(ctx, invoiceIDs)
	if err != nil {
		return err
	}

	var toDelete []string
	for _, lines := range linesByInvoice {
		for _, item := range lines {
			if item.IsForProduct(*billingSettings.DiscountProductID) {
				toDelete = append(toDelete, item.ID)
			}
		}
	}
	if len(toDelete) == 0 {
		return nil
	}

	if err := s.InvoiceLineItemRepo.DeleteBulk(ctx, toDelete); err != nil {
		return err
	}

	s.Logger.Debugw("removed discount lines",
		"count", len(toDelete),
		"invoices", len(invoices))
	return nil
}

func (s *discountService) newDiscountLine(ctx context.Context, inv *invoice.Invoice, discountProduct *product.Product, amount decimal.Decimal) *invoice.InvoiceLineItem {
	return &invoice.InvoiceLineItem{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:     inv.ID,
		Type:          types.InvoiceLineItemTypeLine,
		ProductID:     &discountProduct.ID,
		Description:   discountProduct.Name,
		Quantity:      decimal.NewFromInt(1),
		UnitPrice:     amount,
		Unit:          discountProduct.DefaultUnit,
		AccountID:     discountProduct.AccountFor(inv.Direction),
		Currency:      inv.Currency,
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (s *discountService) getParty(ctx context.Context, cache map[string]*party.Party, partyID string) (*party.Party, error) {
	if p, ok := cache[partyID]; ok {
		return p, nil
	}
	p, err := s.PartyRepo.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}
	cache[partyID] = p
	return p, nil
}
