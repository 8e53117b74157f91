package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatLine(name string, qty int, unitPrice int64) Line {
	return Line{
		VehicleID:      uuid.New(),
		ModificationID: uuid.New(),
		ModName:        name,
		Quantity:       qty,
		UnitPrice:      unitPrice,
		PricingType:    enum.PricingTypeFlat,
		PricingValue:   float64(unitPrice) / 100,
	}
}

func ptr[T any](v T) *T { return &v }

func TestPrice_PercentageDiscount(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("Turbo Kit", 1, 100000)},
		DiscountPercent: ptr(10.0),
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), quote.Subtotal)
	assert.Equal(t, int64(10000), quote.DiscountAmount)
	assert.Equal(t, int64(90000), quote.Total)
	assert.Equal(t, int64(1), quote.Multiplier)
	assert.Empty(t, quote.Note)
}

func TestPrice_TotalCeilsToWholeUnit(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines: []Line{flatLine("Spoiler", 1, 12345)},
		Now:   time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12345), quote.Subtotal)
	assert.Equal(t, int64(0), quote.DiscountAmount)
	assert.Equal(t, int64(12400), quote.Total)
}

func TestPrice_BlacklistMultiplier(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("Turbo Kit", 1, 100000)},
		DiscountPercent: ptr(10.0),
		Customer:        &CustomerStatus{Blacklisted: true},
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(200000), quote.Subtotal)
	assert.Equal(t, int64(20000), quote.DiscountAmount)
	assert.Equal(t, int64(180000), quote.Total)
	assert.Equal(t, int64(2), quote.Multiplier)
	assert.Equal(t, []int64{200000}, quote.LineUnitPrices)
	assert.Equal(t, "[BLACKLISTED x2]", quote.Note)
}

func TestPrice_BlacklistWindowExpired(t *testing.T) {
	rules := DefaultRules()
	now := time.Now()
	end := now.Add(-24 * time.Hour)
	quote, err := rules.Price(Cart{
		Lines:    []Line{flatLine("Turbo Kit", 1, 100000)},
		Customer: &CustomerStatus{Blacklisted: true, BlacklistEnd: &end},
		Now:      now,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), quote.Multiplier)
	assert.Equal(t, int64(100000), quote.Total)
}

func TestPrice_BlacklistOpenEndedWindow(t *testing.T) {
	rules := DefaultRules()
	now := time.Now()
	start := now.Add(-time.Hour)
	quote, err := rules.Price(Cart{
		Lines:    []Line{flatLine("Turbo Kit", 1, 50000)},
		Customer: &CustomerStatus{Blacklisted: true, BlacklistStart: &start},
		Now:      now,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), quote.Multiplier)
}

func TestPrice_StaffDiscount(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("Exhaust", 1, 40000)},
		CustomerIsStaff: true,
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40000), quote.Subtotal)
	assert.Equal(t, int64(10000), quote.DiscountAmount)
	assert.Equal(t, int64(30000), quote.Total)
}

func TestPrice_StaffNeverMultiplied(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("Exhaust", 1, 40000)},
		CustomerIsStaff: true,
		Customer:        &CustomerStatus{Blacklisted: true},
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), quote.Multiplier)
	assert.Equal(t, int64(30000), quote.Total)
}

func TestPrice_StaffVoucherRejected(t *testing.T) {
	rules := DefaultRules()
	_, err := rules.Price(Cart{
		Lines:            []Line{flatLine("Exhaust", 1, 40000)},
		CustomerIsStaff:  true,
		RequestedVoucher: 1000,
		Now:              time.Now(),
	})
	assert.ErrorIs(t, err, ErrStaffVoucher)
}

func TestPrice_RaffleForcesDiscountsOff(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines: []Line{
			flatLine("Body Kit", 1, 30000),
			flatLine("Raffle Ticket", 5, 1000),
		},
		DiscountPercent:  ptr(15.0),
		Customer:         &CustomerStatus{MembershipActive: true, VoucherBalance: 5000},
		RequestedVoucher: 5000,
		Now:              time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, quote.HasRaffle)
	assert.Equal(t, 5, quote.RaffleTickets)
	assert.Equal(t, int64(0), quote.DiscountAmount)
	assert.Equal(t, int64(0), quote.VoucherUsed)
	assert.Equal(t, int64(35000), quote.Total)
	assert.Equal(t, "[RAFFLE_NO_DISCOUNTS]", quote.Note)
}

func TestPrice_RaffleLabelCaseInsensitive(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("raffle ticket", 2, 1000)},
		CustomerIsStaff: true,
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.True(t, quote.HasRaffle)
	assert.Equal(t, 2, quote.RaffleTickets)
	// Raffle suppresses even the staff discount.
	assert.Equal(t, int64(0), quote.DiscountAmount)
	assert.Equal(t, int64(2000), quote.Total)
}

func TestPrice_RaffleSimilarLabelDoesNotMatch(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines: []Line{flatLine("Raffle Tickets", 1, 1000)},
		Now:   time.Now(),
	})
	require.NoError(t, err)

	assert.False(t, quote.HasRaffle)
	assert.Equal(t, 0, quote.RaffleTickets)
}

func TestPrice_MembershipBeatsSmallerDiscount(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("Wrap", 1, 100000)},
		DiscountPercent: ptr(5.0),
		Customer:        &CustomerStatus{MembershipActive: true},
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), quote.DiscountAmount)
}

func TestPrice_LargerDiscountBeatsMembership(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:           []Line{flatLine("Wrap", 1, 100000)},
		DiscountPercent: ptr(20.0),
		Customer:        &CustomerStatus{MembershipActive: true},
		Now:             time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20000), quote.DiscountAmount)
}

func TestPrice_VoucherClampedToBalance(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:            []Line{flatLine("Tint", 1, 50000)},
		Customer:         &CustomerStatus{VoucherBalance: 2000},
		RequestedVoucher: 10000,
		Now:              time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), quote.VoucherUsed)
	assert.Equal(t, "[VOUCHER_USED=$20.00 | CARD_CHARGE=$480.00]", quote.Note)
}

func TestPrice_VoucherClampedToTotal(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:            []Line{flatLine("Sticker", 1, 500)},
		Customer:         &CustomerStatus{VoucherBalance: 100000},
		RequestedVoucher: 100000,
		Now:              time.Now(),
	})
	require.NoError(t, err)

	// Total ceils to $5.00; the voucher cannot exceed the charge.
	assert.Equal(t, int64(500), quote.Total)
	assert.Equal(t, int64(500), quote.VoucherUsed)
	assert.Equal(t, "[VOUCHER_USED=$5.00 | CARD_CHARGE=$0.00]", quote.Note)
}

func TestPrice_NoteComposition(t *testing.T) {
	rules := DefaultRules()
	quote, err := rules.Price(Cart{
		Lines:            []Line{flatLine("Turbo Kit", 1, 100000)},
		Customer:         &CustomerStatus{Blacklisted: true, VoucherBalance: 4000},
		RequestedVoucher: 4000,
		Note:             "customer requested rush job",
		Now:              time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t,
		"[BLACKLISTED x2] customer requested rush job [VOUCHER_USED=$40.00 | CARD_CHARGE=$1960.00]",
		quote.Note)
}

func TestValidateLines(t *testing.T) {
	err := ValidateLines(nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	bad := flatLine("Turbo Kit", 0, 1000)
	err = ValidateLines([]Line{bad})
	assert.ErrorIs(t, err, ErrInvalidLine)

	bad = flatLine("Turbo Kit", 1, -1)
	err = ValidateLines([]Line{bad})
	assert.ErrorIs(t, err, ErrInvalidLine)

	bad = flatLine("Turbo Kit", 1, 1000)
	bad.PricingType = "subscription"
	err = ValidateLines([]Line{bad})
	assert.ErrorIs(t, err, ErrInvalidLine)

	bad = flatLine("Turbo Kit", 1, 1000)
	bad.PricingType = enum.PricingTypePercentage
	bad.PricingValue = 120
	err = ValidateLines([]Line{bad})
	assert.ErrorIs(t, err, ErrInvalidLine)

	good := flatLine("Turbo Kit", 1, 1000)
	assert.NoError(t, ValidateLines([]Line{good}))
}

func TestModPrice(t *testing.T) {
	assert.Equal(t, int64(15000), ModPrice(100000, enum.PricingTypePercentage, 15))
	assert.Equal(t, int64(25000), ModPrice(100000, enum.PricingTypeFlat, 250))
}
