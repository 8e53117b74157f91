package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/slowlifemotors/garage-pos/pkg/money"
	"github.com/slowlifemotors/garage-pos/pkg/pagination"
)

// OrderService handles order reads and the void/recompute state machine
type OrderService struct {
	orderRepo    repository.OrderRepository
	lineRepo     repository.OrderLineRepository
	discountRepo repository.DiscountRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	discountRepo repository.DiscountRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		lineRepo:     lineRepo,
		discountRepo: discountRepo,
	}
}

// VoidLineResult is the outcome of voiding a line: either the order
// with recomputed totals, or the fully voided order when the cascade
// fired.
type VoidLineResult struct {
	Order       *entity.Order `json:"order"`
	OrderVoided bool          `json:"order_voided"`
}

// VoidLine marks one line void and recomputes the order's totals from
// the surviving lines. Voiding the last active line cascades to void
// the whole order instead of leaving a zero-line paid order. Void is
// terminal: no further line voids are accepted on a void order.
func (s *OrderService) VoidLine(ctx context.Context, staffID, orderID, lineID uuid.UUID, reason string) (*VoidLineResult, error) {
	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusVoid {
		return nil, apperror.NewBadRequestError("Order is already void")
	}

	var line *entity.OrderLine
	for i := range order.Lines {
		if order.Lines[i].ID == lineID {
			line = &order.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Order line")
	}
	if line.Voided {
		return nil, apperror.NewBadRequestError("Order line is already void")
	}

	now := time.Now()
	line.Voided = true
	line.VoidedAt = &now
	line.VoidReason = &reason
	line.VoidedByID = &staffID
	if err := s.lineRepo.Update(ctx, line); err != nil {
		return nil, err
	}

	active := order.ActiveLines()
	var activeSubtotal int64
	for i := range active {
		activeSubtotal += active[i].LineTotal()
	}

	if len(active) == 0 {
		// Cascade: no active lines remain, void the whole order. Two
		// concurrent callers can both reach this; the second write is
		// redundant but harmless.
		order.Status = enum.OrderStatusVoid
		order.Subtotal = 0
		order.DiscountAmount = 0
		order.Total = 0
		order.VoidedAt = &now
		order.VoidReason = &reason
		order.VoidedByID = &staffID
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
		return &VoidLineResult{Order: order, OrderVoided: true}, nil
	}

	// Recompute from surviving lines. Only the discount-by-id percent
	// is reapplied here: staff, membership and blacklist adjustments
	// are already baked into the stored unit prices.
	var discount int64
	if order.DiscountID != nil {
		d, err := s.discountRepo.GetByID(ctx, *order.DiscountID)
		if err != nil {
			return nil, err
		}
		if d != nil {
			discount = money.Percent(activeSubtotal, d.Percent)
		}
	}
	order.Subtotal = activeSubtotal
	order.DiscountAmount = discount
	order.Total = money.CeilToUnit(activeSubtotal - discount)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return &VoidLineResult{Order: order, OrderVoided: false}, nil
}

// GetOrder retrieves an order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists a staff member's orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, staffID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, staffID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
