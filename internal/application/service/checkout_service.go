package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/slowlifemotors/garage-pos/internal/domain/pricing"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/slowlifemotors/garage-pos/pkg/money"
)

// walkInName labels raffle ledger entries for sales without a customer record.
const walkInName = "Walk-in"

// CheckoutService prices a cart and persists the resulting order. The
// order header and its lines are written as a two-step sequence with a
// compensating delete; the raffle ledger append and voucher deduction
// run after commit and are best-effort.
type CheckoutService struct {
	orderRepo    repository.OrderRepository
	lineRepo     repository.OrderLineRepository
	vehicleRepo  repository.VehicleRepository
	modRepo      repository.ModificationRepository
	discountRepo repository.DiscountRepository
	customerRepo repository.CustomerRepository
	staffRepo    repository.StaffRepository
	raffleRepo   repository.RaffleLogRepository
	rules        pricing.Rules
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	vehicleRepo repository.VehicleRepository,
	modRepo repository.ModificationRepository,
	discountRepo repository.DiscountRepository,
	customerRepo repository.CustomerRepository,
	staffRepo repository.StaffRepository,
	raffleRepo repository.RaffleLogRepository,
	rules pricing.Rules,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:    orderRepo,
		lineRepo:     lineRepo,
		vehicleRepo:  vehicleRepo,
		modRepo:      modRepo,
		discountRepo: discountRepo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		raffleRepo:   raffleRepo,
		rules:        rules,
	}
}

// CheckoutLineInput represents one cart line
type CheckoutLineInput struct {
	VehicleID      uuid.UUID
	ModificationID uuid.UUID
	ModName        string
	Quantity       int
	ComputedPrice  float64
	PricingType    enum.PricingType
	PricingValue   float64
}

// CheckoutInput represents the checkout request
type CheckoutInput struct {
	StaffID         uuid.UUID
	VehicleID       uuid.UUID
	CustomerID      *uuid.UUID
	StaffCustomerID *uuid.UUID
	CustomerIsStaff bool
	DiscountID      *uuid.UUID
	VoucherAmount   float64
	Note            string
	Lines           []CheckoutLineInput
}

// Checkout validates the cart, prices it, and persists the order. The
// caller's staff id must match the authenticated session.
func (s *CheckoutService) Checkout(ctx context.Context, sessionStaffID uuid.UUID, input *CheckoutInput) (*entity.Order, error) {
	if input.StaffID != sessionStaffID {
		return nil, apperror.ErrForbidden
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Cart must contain at least one line")
	}

	if input.CustomerIsStaff {
		if input.StaffCustomerID == nil {
			return nil, apperror.NewBadRequestError("Staff sales require a staff customer id")
		}
		if input.CustomerID != nil {
			return nil, apperror.NewBadRequestError("An order has either a customer or a staff customer, not both")
		}
		if input.DiscountID != nil {
			return nil, apperror.NewBadRequestError("Staff sales cannot carry a discount")
		}
		if input.VoucherAmount > 0 {
			return nil, apperror.NewBadRequestError("Vouchers cannot be used on staff sales")
		}
	} else if input.StaffCustomerID != nil {
		return nil, apperror.NewBadRequestError("Staff customer id requires a staff sale")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}

	// Batch fetch all modifications in one query
	modIDs := make([]uuid.UUID, len(input.Lines))
	for i, l := range input.Lines {
		modIDs[i] = l.ModificationID
	}
	mods, err := s.modRepo.GetByIDs(ctx, modIDs)
	if err != nil {
		return nil, err
	}
	modMap := make(map[uuid.UUID]*entity.Modification, len(mods))
	for i := range mods {
		modMap[mods[i].ID] = &mods[i]
	}

	cartLines := make([]pricing.Line, len(input.Lines))
	for i, l := range input.Lines {
		mod, exists := modMap[l.ModificationID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Modification %s", l.ModificationID))
		}
		name := l.ModName
		if name == "" {
			name = mod.Name
		}
		// The register price is authoritative, zero included: comped
		// and renegotiated lines deviate from the catalog rule on
		// purpose. Log the mismatch for the audit trail and move on.
		unitPrice := money.ToCents(l.ComputedPrice)
		if want := pricing.ModPrice(vehicle.BasePrice, mod.PricingType, mod.PricingValue); unitPrice != want {
			log.Printf("checkout: line %q priced at %d cents, catalog rule yields %d", name, unitPrice, want)
		}
		vehicleID := l.VehicleID
		if vehicleID == uuid.Nil {
			vehicleID = input.VehicleID
		}
		cartLines[i] = pricing.Line{
			VehicleID:      vehicleID,
			ModificationID: l.ModificationID,
			ModName:        name,
			Quantity:       l.Quantity,
			UnitPrice:      unitPrice,
			PricingType:    l.PricingType,
			PricingValue:   l.PricingValue,
		}
	}

	var discountPct *float64
	if input.DiscountID != nil {
		discount, err := s.discountRepo.GetByID(ctx, *input.DiscountID)
		if err != nil {
			return nil, err
		}
		if discount == nil {
			return nil, apperror.NewNotFoundError("Discount")
		}
		pct := discount.Percent
		discountPct = &pct
	}

	status, customerName, err := s.readCustomerStatus(ctx, input)
	if err != nil {
		return nil, err
	}

	quote, err := s.rules.Price(pricing.Cart{
		Lines:            cartLines,
		CustomerIsStaff:  input.CustomerIsStaff,
		DiscountPercent:  discountPct,
		Customer:         status,
		RequestedVoucher: money.ToCents(input.VoucherAmount),
		Note:             input.Note,
		Now:              time.Now(),
	})
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	now := time.Now()
	order := &entity.Order{
		Status:          enum.OrderStatusPaid,
		VehicleID:       input.VehicleID,
		StaffID:         input.StaffID,
		CustomerID:      input.CustomerID,
		StaffCustomerID: input.StaffCustomerID,
		CustomerIsStaff: input.CustomerIsStaff,
		DiscountID:      input.DiscountID,
		VehicleBase:     vehicle.BasePrice,
		Subtotal:        quote.Subtotal,
		DiscountAmount:  quote.DiscountAmount,
		Total:           quote.Total,
		Note:            quote.Note,
	}

	lines := make([]entity.OrderLine, len(cartLines))
	for i, cl := range cartLines {
		lines[i] = entity.OrderLine{
			VehicleID:      cl.VehicleID,
			ModificationID: cl.ModificationID,
			ModName:        cl.ModName,
			Quantity:       cl.Quantity,
			UnitPrice:      quote.LineUnitPrices[i],
			PricingType:    cl.PricingType,
			PricingValue:   cl.PricingValue,
		}
	}

	saga := newCheckoutSaga(s.orderRepo, s.lineRepo)
	if err := saga.run(ctx, order, lines); err != nil {
		return nil, err
	}
	saga.commit()

	// Post-commit follow-ups. The sale is final; failures here are
	// logged, never rolled back.
	if quote.HasRaffle {
		entry := &entity.RaffleSalesLog{
			CustomerID:   input.CustomerID,
			CustomerName: customerName,
			Tickets:      quote.RaffleTickets,
			OrderID:      order.ID,
			StaffID:      input.StaffID,
			SoldAt:       now,
		}
		if err := s.raffleRepo.Create(ctx, entry); err != nil {
			log.Printf("checkout: raffle ledger append failed for order %s: %v", order.ID, err)
		}
	}
	if quote.VoucherUsed > 0 && input.CustomerID != nil {
		s.deductVoucher(ctx, *input.CustomerID, quote.VoucherUsed, order.ID)
	}

	return s.orderRepo.GetWithLines(ctx, order.ID)
}

// readCustomerStatus snapshots the customer's financial flags for
// pricing and resolves the name recorded on raffle ledger entries.
// Status lookup failures fail open: checkout proceeds without flags
// rather than blocking the sale.
func (s *CheckoutService) readCustomerStatus(ctx context.Context, input *CheckoutInput) (*pricing.CustomerStatus, string, error) {
	if input.CustomerIsStaff {
		staffCustomer, err := s.staffRepo.GetByID(ctx, *input.StaffCustomerID)
		if err != nil {
			return nil, "", err
		}
		if staffCustomer == nil {
			return nil, "", apperror.NewNotFoundError("Staff customer")
		}
		return nil, staffCustomer.Name, nil
	}

	if input.CustomerID == nil {
		return nil, walkInName, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
	if err != nil {
		log.Printf("checkout: customer status lookup failed, proceeding without flags: %v", err)
		return nil, walkInName, nil
	}
	if customer == nil {
		return nil, "", apperror.NewNotFoundError("Customer")
	}
	return &pricing.CustomerStatus{
		Blacklisted:      customer.Blacklisted,
		BlacklistStart:   customer.BlacklistStart,
		BlacklistEnd:     customer.BlacklistEnd,
		MembershipActive: customer.MembershipActive,
		MembershipStart:  customer.MembershipStart,
		MembershipEnd:    customer.MembershipEnd,
		VoucherBalance:   customer.VoucherAmount,
	}, customer.Name, nil
}

// deductVoucher settles the voucher annotation against the customer's
// balance. The read-compute-write is unguarded: two concurrent
// checkouts can both read the pre-deduction balance. Accepted for a
// single-register deployment.
func (s *CheckoutService) deductVoucher(ctx context.Context, customerID uuid.UUID, used int64, orderID uuid.UUID) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil || customer == nil {
		log.Printf("checkout: voucher re-read failed for order %s: %v", orderID, err)
		return
	}
	balance := customer.VoucherAmount - used
	if balance < 0 {
		balance = 0
	}
	if err := s.customerRepo.UpdateVoucherBalance(ctx, customerID, balance); err != nil {
		log.Printf("checkout: voucher deduction failed for order %s: %v", orderID, err)
	}
}

// sagaState tracks the order write sequence so the compensation step is
// explicit and idempotent.
type sagaState int

const (
	sagaPending sagaState = iota
	sagaLinesWritten
	sagaCommitted
	sagaCompensated
)

// checkoutSaga writes the order header and lines as a compensable
// sequence. The store exposes no multi-row transaction to this layer;
// the compensating delete is the only rollback mechanism, and it covers
// only the header/lines pair.
type checkoutSaga struct {
	state     sagaState
	orderRepo repository.OrderRepository
	lineRepo  repository.OrderLineRepository
}

func newCheckoutSaga(orderRepo repository.OrderRepository, lineRepo repository.OrderLineRepository) *checkoutSaga {
	return &checkoutSaga{state: sagaPending, orderRepo: orderRepo, lineRepo: lineRepo}
}

func (g *checkoutSaga) run(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error {
	if err := g.orderRepo.Create(ctx, order); err != nil {
		return err
	}
	for i := range lines {
		lines[i].OrderID = order.ID
	}
	if err := g.lineRepo.CreateBatch(ctx, lines); err != nil {
		g.compensate(ctx, order.ID)
		return err
	}
	g.state = sagaLinesWritten
	return nil
}

// commit marks the header/lines pair final. Follow-up side effects run
// after this point and never roll the sale back.
func (g *checkoutSaga) commit() {
	if g.state == sagaLinesWritten {
		g.state = sagaCommitted
	}
}

func (g *checkoutSaga) compensate(ctx context.Context, orderID uuid.UUID) {
	if g.state == sagaCompensated {
		return
	}
	if err := g.orderRepo.HardDelete(ctx, orderID); err != nil {
		log.Printf("checkout: compensating delete failed for order %s: %v", orderID, err)
		return
	}
	g.state = sagaCompensated
}
