package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerline/ledgerline/internal/api/dto"
	"github.com/ledgerline/ledgerline/internal/domain/invoice"
	"github.com/ledgerline/ledgerline/internal/domain/party"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceService owns invoice lifecycle operations. The workflow hooks keep
// the global discount line in sync: validating or posting materializes it,
// reverting to draft or cancelling removes it.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)

	// UpdateDiscountRate changes the stored discount rate of a draft
	// invoice. The rate only takes monetary effect at the next apply.
	UpdateDiscountRate(ctx context.Context, id string, rate decimal.Decimal) (*dto.InvoiceResponse, error)

	// ValidateInvoices applies the discount, then moves draft invoices to
	// validated.
	ValidateInvoices(ctx context.Context, invoiceIDs []string) error

	// PostInvoices applies the discount, then books draft or validated
	// invoices, assigning invoice numbers.
	PostInvoices(ctx context.Context, invoiceIDs []string) error

	// DraftInvoices moves invoices back to draft and removes their
	// discount lines.
	DraftInvoices(ctx context.Context, invoiceIDs []string) error

	// CancelInvoices cancels invoices and removes their discount lines.
	CancelInvoices(ctx context.Context, invoiceIDs []string) error

	// CreditInvoice creates a draft credit note mirroring the invoice:
	// ordinary lines negated, discount rate copied, discount line left to
	// regenerate at posting time. With refund the original is cancelled.
	CreditInvoice(ctx context.Context, id string, refund bool) (*dto.InvoiceResponse, error)

	// DuplicateInvoice creates an editable draft copy of the invoice,
	// carrying the rate but not the materialized discount line.
	DuplicateInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	ServiceParams
	discountService DiscountService
	taxService      TaxService
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams:   params,
		discountService: NewDiscountService(params),
		taxService:      NewTaxService(params),
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx)

	if req.DiscountRate == nil {
		rate, err := s.discountService.ResolveRate(ctx, inv.PartyID, inv.Direction)
		if err != nil {
			return nil, err
		}
		if rate != nil {
			inv.DiscountRate = *rate
		}
	}
	inv.DiscountRate = types.QuantizeDiscountRate(inv.DiscountRate, s.Config.Discount.Precision)

	lineItems, err := s.buildLineItems(ctx, req, inv)
	if err != nil {
		return nil, err
	}
	inv.LineItems = lineItems

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.InvoiceRepo.Create(txCtx, inv); err != nil {
			return err
		}
		if len(lineItems) > 0 {
			if err := s.InvoiceLineItemRepo.CreateBulk(txCtx, lineItems); err != nil {
				return err
			}
		}
		return s.taxService.RecalculateInvoices(txCtx, []*invoice.Invoice{inv})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"direction", inv.Direction,
		"discount_rate", inv.DiscountRate)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// buildLineItems converts line requests, resolving taxes through the
// party's tax rule for lines that have a product but no explicit taxes.
func (s *invoiceService) buildLineItems(ctx context.Context, req dto.CreateInvoiceRequest, inv *invoice.Invoice) ([]*invoice.InvoiceLineItem, error) {
	var invParty *party.Party
	partyLoaded := false
	lineItems := make([]*invoice.InvoiceLineItem, 0, len(req.LineItems))
	for _, lineReq := range req.LineItems {
		item := lineReq.ToInvoiceLineItem(ctx, inv)
		if item.ProductID != nil && len(item.TaxRateIDs) == 0 {
			prod, err := s.ProductRepo.Get(ctx, *item.ProductID)
			if err != nil {
				return nil, err
			}
			if !partyLoaded && inv.PartyID != nil {
				invParty, err = s.PartyRepo.Get(ctx, *inv.PartyID)
				if err != nil {
					return nil, err
				}
			}
			partyLoaded = true
			item.TaxRateIDs, err = s.taxService.ResolveLineTaxes(ctx, prod, invParty, inv.Direction)
			if err != nil {
				return nil, err
			}
			if item.AccountID == "" {
				item.AccountID = prod.AccountFor(inv.Direction)
			}
			if item.Unit == "" {
				item.Unit = prod.DefaultUnit
			}
			if item.Description == "" {
				item.Description = prod.Name
			}
		}
		lineItems = append(lineItems, item)
	}
	return lineItems, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.getInvoiceWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultInvoiceFilter()
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return &dto.InvoiceResponse{Invoice: inv}
		}),
	}
	pagination := types.NewPaginationResponse(count, filter.GetLimit(), filter.GetOffset())
	resp.Pagination = &pagination
	return resp, nil
}

func (s *invoiceService) UpdateDiscountRate(ctx context.Context, id string, rate decimal.Decimal) (*dto.InvoiceResponse, error) {
	if rate.IsNegative() {
		return nil, ierr.NewError("discount rate must be non negative").
			WithHint("Discount rate must be a decimal fraction between 0 and 1").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inv.IsDraft() {
		return nil, ierr.NewError("invoice is not editable").
			WithHintf("Invoice %s must be in draft to change its discount rate", inv.DisplayName()).
			WithReportableDetails(map[string]any{
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.DiscountRate = types.QuantizeDiscountRate(rate, s.Config.Discount.Precision)
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ValidateInvoices(ctx context.Context, invoiceIDs []string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		// discount first so validation sees final amounts
		if err := s.discountService.ApplyDiscount(txCtx, invoiceIDs); err != nil {
			return err
		}

		return s.transition(txCtx, invoiceIDs, func(inv *invoice.Invoice) error {
			if inv.InvoiceStatus != types.InvoiceStatusDraft {
				return s.invalidTransition(inv, types.InvoiceStatusValidated)
			}
			inv.InvoiceStatus = types.InvoiceStatusValidated
			inv.ValidatedAt = lo.ToPtr(time.Now().UTC())
			return nil
		})
	})
}

func (s *invoiceService) PostInvoices(ctx context.Context, invoiceIDs []string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.discountService.ApplyDiscount(txCtx, invoiceIDs); err != nil {
			return err
		}

		return s.transition(txCtx, invoiceIDs, func(inv *invoice.Invoice) error {
			if inv.InvoiceStatus != types.InvoiceStatusDraft &&
				inv.InvoiceStatus != types.InvoiceStatusValidated {
				return s.invalidTransition(inv, types.InvoiceStatusPosted)
			}
			if inv.InvoiceNumber == nil {
				inv.InvoiceNumber = lo.ToPtr(types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE))
			}
			if inv.ValidatedAt == nil {
				inv.ValidatedAt = lo.ToPtr(time.Now().UTC())
			}
			inv.InvoiceStatus = types.InvoiceStatusPosted
			inv.PostedAt = lo.ToPtr(time.Now().UTC())
			return nil
		})
	})
}

func (s *invoiceService) DraftInvoices(ctx context.Context, invoiceIDs []string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		err := s.transition(txCtx, invoiceIDs, func(inv *invoice.Invoice) error {
			inv.InvoiceStatus = types.InvoiceStatusDraft
			inv.ValidatedAt = nil
			inv.PostedAt = nil
			inv.CancelledAt = nil
			return nil
		})
		if err != nil {
			return err
		}

		// transition first, removal second: a failed removal must not
		// leave a non-draft invoice without its discount line
		return s.discountService.RemoveDiscount(txCtx, invoiceIDs)
	})
}

func (s *invoiceService) CancelInvoices(ctx context.Context, invoiceIDs []string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		err := s.transition(txCtx, invoiceIDs, func(inv *invoice.Invoice) error {
			inv.InvoiceStatus = types.InvoiceStatusCancelled
			inv.CancelledAt = lo.ToPtr(time.Now().UTC())
			return nil
		})
		if err != nil {
			return err
		}

		return s.discountService.RemoveDiscount(txCtx, invoiceIDs)
	})
}

func (s *invoiceService) CreditInvoice(ctx context.Context, id string, refund bool) (*dto.InvoiceResponse, error) {
	var credit *invoice.Invoice
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		original, err := s.getInvoiceWithLines(txCtx, id)
		if err != nil {
			return err
		}

		credit, err = s.copyInvoice(txCtx, original, true)
		if err != nil {
			return err
		}
		credit.Description = fmt.Sprintf("Credit of %s", original.DisplayName())
		if err := s.InvoiceRepo.Update(txCtx, credit); err != nil {
			return err
		}

		if refund {
			return s.CancelInvoices(txCtx, []string{original.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("credited invoice",
		"invoice_id", id,
		"credit_invoice_id", credit.ID,
		"refund", refund)

	return &dto.InvoiceResponse{Invoice: credit}, nil
}

func (s *invoiceService) DuplicateInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var duplicate *invoice.Invoice
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		original, err := s.getInvoiceWithLines(txCtx, id)
		if err != nil {
			return err
		}

		duplicate, err = s.copyInvoice(txCtx, original, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{Invoice: duplicate}, nil
}

// copyInvoice creates a draft copy of the invoice, negating quantities when
// negate is set. The discount line is never copied: the copied rate
// regenerates it when the new invoice is validated or posted.
func (s *invoiceService) copyInvoice(ctx context.Context, original *invoice.Invoice, negate bool) (*invoice.Invoice, error) {
	billingSettings, err := s.SettingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	copied := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		PartyID:       original.PartyID,
		Direction:     original.Direction,
		InvoiceStatus: types.InvoiceStatusDraft,
		Currency:      original.Currency,
		DiscountRate:  original.DiscountRate,
		Description:   original.Description,
		Metadata:      original.Metadata,
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	var lineItems []*invoice.InvoiceLineItem
	for _, item := range original.LineItems {
		if billingSettings.DiscountProductID != nil &&
			item.IsForProduct(*billingSettings.DiscountProductID) {
			continue
		}
		quantity := item.Quantity
		if negate {
			quantity = quantity.Neg()
		}
		lineItems = append(lineItems, &invoice.InvoiceLineItem{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:     copied.ID,
			Type:          item.Type,
			ProductID:     item.ProductID,
			Description:   item.Description,
			Quantity:      quantity,
			UnitPrice:     item.UnitPrice,
			Unit:          item.Unit,
			AccountID:     item.AccountID,
			TaxRateIDs:    append([]string{}, item.TaxRateIDs...),
			Currency:      item.Currency,
			EnvironmentID: types.GetEnvironmentID(ctx),
			BaseModel:     types.GetDefaultBaseModel(ctx),
		})
	}
	copied.LineItems = lineItems

	if err := s.InvoiceRepo.Create(ctx, copied); err != nil {
		return nil, err
	}
	if len(lineItems) > 0 {
		if err := s.InvoiceLineItemRepo.CreateBulk(ctx, lineItems); err != nil {
			return nil, err
		}
	}
	if err := s.taxService.RecalculateInvoices(ctx, []*invoice.Invoice{copied}); err != nil {
		return nil, err
	}
	return copied, nil
}

// transition loads the invoices, applies mutate to each and persists them.
func (s *invoiceService) transition(ctx context.Context, invoiceIDs []string, mutate func(*invoice.Invoice) error) error {
	filter := types.NewNoLimitInvoiceFilter()
	filter.InvoiceIDs = invoiceIDs
	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(invoices) != len(invoiceIDs) {
		return ierr.NewError("invoice not found").
			WithHint("One or more of the requested invoices does not exist").
			Mark(ierr.ErrNotFound)
	}

	for _, inv := range invoices {
		if err := mutate(inv); err != nil {
			return err
		}
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
	}
	return nil
}

func (s *invoiceService) invalidTransition(inv *invoice.Invoice, target types.InvoiceStatus) error {
	return ierr.NewError("invalid invoice status transition").
		WithHintf("Invoice %s cannot move from %s to %s", inv.DisplayName(), inv.InvoiceStatus, target).
		WithReportableDetails(map[string]any{
			"invoice_id": inv.ID,
			"from":       inv.InvoiceStatus,
			"to":         target,
		}).
		Mark(ierr.ErrInvalidOperation)
}

func (s *invoiceService) getInvoiceWithLines(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	linesByInvoice, err := s.InvoiceLineItemRepo.ListByInvoiceIDs(ctx, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.LineItems = linesByInvoice[inv.ID]
	return inv, nil
}
