package service

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/ledgerline/ledgerline/internal/domain/party"
	"github.com/ledgerline/ledgerline/internal/domain/product"
	"github.com/ledgerline/ledgerline/internal/domain/taxrate"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxService resolves line taxes from product declarations and party tax
// rules, and recomputes invoice aggregates after line mutations.
type TaxService interface {
	// ResolveLineTaxes returns the tax rate ids that apply to a line for
	// the given product, counterparty and invoice direction.
	ResolveLineTaxes(ctx context.Context, prod *product.Product, p *party.Party, direction types.InvoiceDirection) ([]string, error)

	// RecalculateInvoices reloads the line sets of the given invoices and
	// rewrites their untaxed, tax and total aggregates.
	RecalculateInvoices(ctx context.Context, invoices []*invoice.Invoice) error
}

type taxService struct {
	ServiceParams
}

func NewTaxService(params ServiceParams) TaxService {
	return &taxService{
		ServiceParams: params,
	}
}

func (s *taxService) ResolveLineTaxes(ctx context.Context, prod *product.Product, p *party.Party, direction types.InvoiceDirection) ([]string, error) {
	var declared []string
	if prod != nil {
		declared = prod.DeclaredTaxIDs(direction)
	}

	ruleID := p.TaxRuleIDFor(direction)
	if ruleID == nil {
		return append([]string{}, declared...), nil
	}

	rule, err := s.TaxRuleRepo.Get(ctx, *ruleID)
	if err != nil {
		return nil, err
	}

	pattern := types.TaxRulePattern{Direction: direction}

	var taxRateIDs []string
	for _, taxRateID := range declared {
		taxRateIDs = append(taxRateIDs, rule.Apply(lo.ToPtr(taxRateID), pattern)...)
	}
	// a second pass with no base tax picks up unconditional entries
	taxRateIDs = append(taxRateIDs, rule.Apply(nil, pattern)...)

	return lo.Uniq(taxRateIDs), nil
}

func (s *taxService) RecalculateInvoices(ctx context.Context, invoices []*invoice.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	invoiceIDs := lo.Map(invoices, func(inv *invoice.Invoice, _ int) string {
		return inv.ID
	})

	linesByInvoice, err := s.InvoiceLineItemRepo.ListByInvoiceIDs(ctx, invoiceIDs)
	if err != nil {
		return err
	}

	taxRates, err := s.loadTaxRates(ctx, linesByInvoice)
	if err != nil {
		return err
	}

	for _, inv := range invoices {
		inv.LineItems = linesByInvoice[inv.ID]

		untaxed := decimal.Zero
		tax := decimal.Zero
		for _, item := range inv.LineItems {
			if item.Type != types.InvoiceLineItemTypeLine {
				continue
			}
			amount := item.Amount()
			untaxed = untaxed.Add(amount)
			for _, taxRateID := range item.TaxRateIDs {
				rate, ok := taxRates[taxRateID]
				if !ok {
					return ierr.NewError("tax rate not found").
						WithHintf("Line %s of invoice %s references an unknown tax rate", item.ID, inv.DisplayName()).
						WithReportableDetails(map[string]any{
							"tax_rate_id": taxRateID,
						}).
						Mark(ierr.ErrNotFound)
				}
				tax = tax.Add(rate.AmountOn(amount, inv.Currency))
			}
		}

		inv.UntaxedAmount = untaxed
		inv.TaxAmount = tax
		inv.Total = untaxed.Add(tax)

		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
	}

	return nil
}

// loadTaxRates batch fetches every tax rate referenced by the given lines.
func (s *taxService) loadTaxRates(ctx context.Context, linesByInvoice map[string][]*invoice.InvoiceLineItem) (map[string]*taxrate.TaxRate, error) {
	var ids []string
	for _, lines := range linesByInvoice {
		for _, item := range lines {
			ids = append(ids, item.TaxRateIDs...)
		}
	}
	ids = lo.Uniq(ids)

	taxRates := make(map[string]*taxrate.TaxRate, len(ids))
	if len(ids) == 0 {
		return taxRates, nil
	}

	filter := types.NewNoLimitTaxRateFilter()
	filter.TaxRateIDs = ids
	rates, err := s.TaxRateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, rate := range rates {
		taxRates[rate.ID] = rate
	}
	return taxRates, nil
}
