package service

import (
	"context"

	"github.com/ledgerline/ledgerline/internal/api/dto"
	ierr "github.com/ledgerline/ledgerline/internal/errors"
	"github.com/ledgerline/ledgerline/internal/types"
)

// OrderService records confirmed orders and generates draft invoices from
// them, seeding the invoice discount rate from the counterparty profile.
type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)

	// GenerateInvoice creates a draft invoice from a confirmed order. The
	// discount rate the order-side generator left on the invoice is
	// overwritten with the party's configured rate when one exists.
	GenerateInvoice(ctx context.Context, orderID string) (*dto.InvoiceResponse, error)
}

type orderService struct {
	ServiceParams
	invoiceService  InvoiceService
	discountService DiscountService
}

func NewOrderService(params ServiceParams) OrderService {
	return &orderService{
		ServiceParams:   params,
		invoiceService:  NewInvoiceService(params),
		discountService: NewDiscountService(params),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o := req.ToOrder(ctx)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := s.OrderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	return &dto.OrderResponse{Order: o}, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrderResponse{Order: o}, nil
}

func (s *orderService) GenerateInvoice(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	o, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.OrderStatus != types.OrderStatusConfirmed {
		return nil, ierr.NewError("order is not confirmed").
			WithHintf("Order %s must be confirmed before invoicing", o.ID).
			WithReportableDetails(map[string]any{
				"order_status": o.OrderStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	direction := o.Type.InvoiceDirection()

	req := dto.CreateInvoiceRequest{
		PartyID:     &o.PartyID,
		Direction:   direction,
		Currency:    o.Currency,
		Description: o.Description,
	}
	for _, line := range o.Lines {
		req.LineItems = append(req.LineItems, &dto.CreateInvoiceLineItemRequest{
			ProductID:   line.ProductID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Unit:        line.Unit,
			AccountID:   line.AccountID,
		})
	}

	resp, err := s.invoiceService.CreateInvoice(ctx, req)
	if err != nil {
		return nil, err
	}

	// the party rate wins over whatever the generator seeded; an
	// unconfigured party leaves the stored rate untouched
	rate, err := s.discountService.ResolveRate(ctx, &o.PartyID, direction)
	if err != nil {
		return nil, err
	}
	if rate != nil {
		return s.invoiceService.UpdateDiscountRate(ctx, resp.Invoice.ID, *rate)
	}

	s.Logger.Infow("generated invoice from order",
		"order_id", o.ID,
		"invoice_id", resp.Invoice.ID,
		"direction", direction)

	return resp, nil
}
