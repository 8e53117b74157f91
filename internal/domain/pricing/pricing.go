// Package pricing turns a cart of vehicle modifications plus customer
// context into subtotal, discount and total. It is pure: no I/O, no
// clock, no randomness. The caller snapshots catalog and customer state
// and passes it in.
package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/slowlifemotors/garage-pos/pkg/money"
)

var (
	// ErrEmptyCart is returned when the cart has no lines.
	ErrEmptyCart = errors.New("cart has no lines")
	// ErrInvalidLine is wrapped by per-line validation failures.
	ErrInvalidLine = errors.New("invalid cart line")
	// ErrStaffVoucher is returned when a staff sale requests voucher usage.
	ErrStaffVoucher = errors.New("vouchers cannot be used on staff sales")
)

// Rules holds the shop's pricing constants.
type Rules struct {
	RaffleLabel          string
	StaffDiscountPercent float64
	MembershipPercent    float64
	BlacklistMultiplier  int64
}

// DefaultRules returns the values the registers have always used.
func DefaultRules() Rules {
	return Rules{
		RaffleLabel:          "Raffle Ticket",
		StaffDiscountPercent: 25,
		MembershipPercent:    10,
		BlacklistMultiplier:  2,
	}
}

// Line is one cart entry: a modification at a computed unit price.
type Line struct {
	VehicleID      uuid.UUID
	ModificationID uuid.UUID
	ModName        string
	Quantity       int
	UnitPrice      int64 // cents
	PricingType    enum.PricingType
	PricingValue   float64
}

// CustomerStatus is the customer's financial flags as read at checkout.
// A nil *CustomerStatus means staff sale or a failed-open lookup.
type CustomerStatus struct {
	Blacklisted      bool
	BlacklistStart   *time.Time
	BlacklistEnd     *time.Time
	MembershipActive bool
	MembershipStart  *time.Time
	MembershipEnd    *time.Time
	VoucherBalance   int64 // cents
}

// Cart is the full pricing input.
type Cart struct {
	Lines            []Line
	CustomerIsStaff  bool
	DiscountPercent  *float64 // resolved discount-by-id percent, if any
	Customer         *CustomerStatus
	RequestedVoucher int64 // cents
	Note             string
	Now              time.Time
}

// Quote is the pricing output. No side effects have happened when a
// quote is produced; VoucherUsed is an annotation settled after commit.
type Quote struct {
	Subtotal       int64
	DiscountAmount int64
	Total          int64
	Multiplier     int64
	HasRaffle      bool
	RaffleTickets  int
	VoucherUsed    int64
	LineUnitPrices []int64
	Note           string
}

// ValidateLines checks every line's quantity, price and pricing bounds.
// The whole cart is rejected if any line fails.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	for i, l := range lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: line %d quantity must be at least 1", ErrInvalidLine, i)
		}
		if l.UnitPrice < 0 {
			return fmt.Errorf("%w: line %d unit price must not be negative", ErrInvalidLine, i)
		}
		if !l.PricingType.Valid() {
			return fmt.Errorf("%w: line %d has unknown pricing type %q", ErrInvalidLine, i, l.PricingType)
		}
		if l.PricingValue < 0 {
			return fmt.Errorf("%w: line %d pricing value must not be negative", ErrInvalidLine, i)
		}
		if l.PricingType == enum.PricingTypePercentage && l.PricingValue > 100 {
			return fmt.Errorf("%w: line %d percentage must not exceed 100", ErrInvalidLine, i)
		}
	}
	return nil
}

// ModPrice computes a modification's catalog unit price from the vehicle
// base price: a percentage of the base, or a flat decimal amount.
func ModPrice(vehicleBase int64, t enum.PricingType, value float64) int64 {
	if t == enum.PricingTypePercentage {
		return money.Percent(vehicleBase, value)
	}
	return money.ToCents(value)
}

// Price computes the quote for a cart. Raffle tickets on the cart force
// off every discount and voucher usage but never block the sale. The
// blacklist multiplier is applied after discount computation, covers
// the stored per-line unit prices, and never applies to staff sales.
func (r Rules) Price(cart Cart) (*Quote, error) {
	if err := ValidateLines(cart.Lines); err != nil {
		return nil, err
	}
	if cart.CustomerIsStaff && cart.RequestedVoucher > 0 {
		return nil, ErrStaffVoucher
	}

	var subtotal int64
	raffleTickets := 0
	for _, l := range cart.Lines {
		subtotal += int64(l.Quantity) * l.UnitPrice
		if strings.EqualFold(l.ModName, r.RaffleLabel) {
			raffleTickets += l.Quantity
		}
	}
	hasRaffle := raffleTickets > 0

	mult := int64(1)
	if !cart.CustomerIsStaff && cart.Customer != nil &&
		cart.Customer.Blacklisted && windowContains(cart.Now, cart.Customer.BlacklistStart, cart.Customer.BlacklistEnd) {
		mult = r.BlacklistMultiplier
	}

	var discount int64
	switch {
	case hasRaffle:
		// Raffle presence forces off every discount, staff included.
	case cart.CustomerIsStaff:
		kept := money.Percent(subtotal, 100-r.StaffDiscountPercent)
		discount = subtotal - kept
	default:
		effective := 0.0
		if cart.DiscountPercent != nil {
			effective = *cart.DiscountPercent
		}
		if cart.Customer != nil && cart.Customer.MembershipActive &&
			windowContains(cart.Now, cart.Customer.MembershipStart, cart.Customer.MembershipEnd) &&
			r.MembershipPercent > effective {
			effective = r.MembershipPercent
		}
		discount = money.Percent(subtotal, effective)
	}
	total := money.CeilToUnit(subtotal - discount)

	finalSubtotal := subtotal * mult
	finalDiscount := discount * mult
	finalTotal := money.CeilToUnit(total * mult)

	linePrices := make([]int64, len(cart.Lines))
	for i, l := range cart.Lines {
		linePrices[i] = l.UnitPrice * mult
	}

	var voucherUsed int64
	if !cart.CustomerIsStaff && !hasRaffle && cart.Customer != nil && cart.RequestedVoucher > 0 {
		voucherUsed = cart.RequestedVoucher
		if voucherUsed > cart.Customer.VoucherBalance {
			voucherUsed = cart.Customer.VoucherBalance
		}
		if voucherUsed > finalTotal {
			voucherUsed = finalTotal
		}
		if voucherUsed < 0 {
			voucherUsed = 0
		}
	}

	return &Quote{
		Subtotal:       finalSubtotal,
		DiscountAmount: finalDiscount,
		Total:          finalTotal,
		Multiplier:     mult,
		HasRaffle:      hasRaffle,
		RaffleTickets:  raffleTickets,
		VoucherUsed:    voucherUsed,
		LineUnitPrices: linePrices,
		Note:           r.composeNote(cart.Note, mult, hasRaffle, voucherUsed, finalTotal),
	}, nil
}

// composeNote builds the durable audit text embedded in the order note:
// prefix flags, the caller's note, then the voucher breakdown.
func (r Rules) composeNote(callerNote string, mult int64, hasRaffle bool, voucherUsed, finalTotal int64) string {
	var parts []string
	if mult > 1 {
		parts = append(parts, fmt.Sprintf("[BLACKLISTED x%d]", mult))
	}
	if hasRaffle {
		parts = append(parts, "[RAFFLE_NO_DISCOUNTS]")
	}
	if callerNote != "" {
		parts = append(parts, callerNote)
	}
	if voucherUsed > 0 {
		parts = append(parts, fmt.Sprintf("[VOUCHER_USED=%s | CARD_CHARGE=%s]",
			money.Format(voucherUsed), money.Format(finalTotal-voucherUsed)))
	}
	return strings.Join(parts, " ")
}

// windowContains reports whether now falls inside [start, end]. Missing
// bounds are open-ended.
func windowContains(now time.Time, start, end *time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}
