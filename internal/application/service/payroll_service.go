package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/slowlifemotors/garage-pos/pkg/money"
)

// PayrollService derives commission from settled order history. The
// settlement is read-only and idempotent: it can run any number of
// times and always reflects current order and line state.
type PayrollService struct {
	orderRepo        repository.OrderRepository
	staffRepo        repository.StaffRepository
	paymentRepo      repository.StaffPaymentRepository
	raffleLabel      string
	raffleCommission float64
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	orderRepo repository.OrderRepository,
	staffRepo repository.StaffRepository,
	paymentRepo repository.StaffPaymentRepository,
	raffleLabel string,
	raffleCommission float64,
) *PayrollService {
	return &PayrollService{
		orderRepo:        orderRepo,
		staffRepo:        staffRepo,
		paymentRepo:      paymentRepo,
		raffleLabel:      raffleLabel,
		raffleCommission: raffleCommission,
	}
}

// Settlement is a staff member's derived pay-period commission
type Settlement struct {
	StaffID          uuid.UUID `json:"staff_id"`
	PeriodStart      time.Time `json:"period_start"`
	PeriodEnd        time.Time `json:"period_end"`
	Profit           int64     `json:"-"` // cents
	RaffleRevenue    int64     `json:"-"` // cents
	CommissionRate   float64   `json:"commission_rate"`
	Commission       int64     `json:"-"` // cents, on profit
	RaffleCommission int64     `json:"-"` // cents, flat percent of raffle revenue
	TotalCommission  int64     `json:"-"` // cents
	OrdersCount      int       `json:"orders_count"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (st Settlement) MarshalJSON() ([]byte, error) {
	type Alias Settlement
	return json.Marshal(&struct {
		Alias
		Profit           float64 `json:"profit"`
		RaffleRevenue    float64 `json:"raffle_revenue"`
		Commission       float64 `json:"commission"`
		RaffleCommission float64 `json:"raffle_commission"`
		TotalCommission  float64 `json:"total_commission"`
	}{
		Alias:            Alias(st),
		Profit:           money.Dollars(st.Profit),
		RaffleRevenue:    money.Dollars(st.RaffleRevenue),
		Commission:       money.Dollars(st.Commission),
		RaffleCommission: money.Dollars(st.RaffleCommission),
		TotalCommission:  money.Dollars(st.TotalCommission),
	})
}

// Statement extends a settlement with externally supplied hours
type Statement struct {
	Settlement
	HoursWorked float64 `json:"hours_worked"`
	HourlyRate  int64   `json:"-"` // cents
	BasePay     int64   `json:"-"` // cents
	Gross       int64   `json:"-"` // cents
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (st Statement) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		StaffID          uuid.UUID `json:"staff_id"`
		PeriodStart      time.Time `json:"period_start"`
		PeriodEnd        time.Time `json:"period_end"`
		Profit           float64   `json:"profit"`
		RaffleRevenue    float64   `json:"raffle_revenue"`
		CommissionRate   float64   `json:"commission_rate"`
		Commission       float64   `json:"commission"`
		RaffleCommission float64   `json:"raffle_commission"`
		TotalCommission  float64   `json:"total_commission"`
		OrdersCount      int       `json:"orders_count"`
		HoursWorked      float64   `json:"hours_worked"`
		HourlyRate       float64   `json:"hourly_rate"`
		BasePay          float64   `json:"base_pay"`
		Gross            float64   `json:"gross"`
	}{
		StaffID:          st.StaffID,
		PeriodStart:      st.PeriodStart,
		PeriodEnd:        st.PeriodEnd,
		Profit:           money.Dollars(st.Profit),
		RaffleRevenue:    money.Dollars(st.RaffleRevenue),
		CommissionRate:   st.CommissionRate,
		Commission:       money.Dollars(st.Commission),
		RaffleCommission: money.Dollars(st.RaffleCommission),
		TotalCommission:  money.Dollars(st.TotalCommission),
		OrdersCount:      st.OrdersCount,
		HoursWorked:      st.HoursWorked,
		HourlyRate:       money.Dollars(st.HourlyRate),
		BasePay:          money.Dollars(st.BasePay),
		Gross:            money.Dollars(st.Gross),
	})
}

// PeriodFor derives the staff member's current pay period: from the
// most recent payment's period end, or from the first of the current
// month when no payment exists yet.
func (s *PayrollService) PeriodFor(ctx context.Context, staffID uuid.UUID, now time.Time) (time.Time, time.Time, error) {
	latest, err := s.paymentRepo.GetLatestByStaff(ctx, staffID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if latest != nil {
		return latest.PeriodEnd, now, nil
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, now, nil
}

// Settle recomputes the staff member's pay-period profit and commission
// from settled orders. Raffle revenue is carved out of each order's
// total and commissioned at the flat raffle incentive rate; the
// remainder is halved for profit (the sale price is modeled as exactly
// double cost) and commissioned at the role's rate.
func (s *PayrollService) Settle(ctx context.Context, staffID uuid.UUID, now time.Time) (*Settlement, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}

	start, end, err := s.PeriodFor(ctx, staffID, now)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListSettled(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}

	var profit, raffleRevenue int64
	for i := range orders {
		var orderRaffle int64
		for _, l := range orders[i].ActiveLines() {
			if strings.EqualFold(l.ModName, s.raffleLabel) {
				orderRaffle += l.LineTotal()
			}
		}
		nonRaffle := orders[i].Total - orderRaffle
		if nonRaffle < 0 {
			nonRaffle = 0
		}
		profit += nonRaffle / 2
		raffleRevenue += orderRaffle
	}

	rate := staff.Role.CommissionPercent
	commission := money.Percent(profit, rate)
	raffleCommission := money.Percent(raffleRevenue, s.raffleCommission)

	return &Settlement{
		StaffID:          staffID,
		PeriodStart:      start,
		PeriodEnd:        end,
		Profit:           profit,
		RaffleRevenue:    raffleRevenue,
		CommissionRate:   rate,
		Commission:       commission,
		RaffleCommission: raffleCommission,
		TotalCommission:  commission + raffleCommission,
		OrdersCount:      len(orders),
	}, nil
}

// Statement combines the settlement with hours worked at the role's
// hourly rate for the gross-pay view. Hours are an external input, not
// computed here.
func (s *PayrollService) Statement(ctx context.Context, staffID uuid.UUID, hours float64, now time.Time) (*Statement, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}

	settlement, err := s.Settle(ctx, staffID, now)
	if err != nil {
		return nil, err
	}

	basePay := money.Round(hours * float64(staff.Role.HourlyRate))
	return &Statement{
		Settlement:  *settlement,
		HoursWorked: hours,
		HourlyRate:  staff.Role.HourlyRate,
		BasePay:     basePay,
		Gross:       basePay + settlement.TotalCommission,
	}, nil
}

// RecordPayment settles the current period, persists the payment, and
// thereby advances the staff member's pay-period anchor.
func (s *PayrollService) RecordPayment(ctx context.Context, staffID uuid.UUID, hours float64, paidBy uuid.UUID, now time.Time) (*entity.StaffPayment, error) {
	statement, err := s.Statement(ctx, staffID, hours, now)
	if err != nil {
		return nil, err
	}

	payment := &entity.StaffPayment{
		StaffID:     staffID,
		PeriodStart: statement.PeriodStart,
		PeriodEnd:   now,
		HoursWorked: hours,
		HourlyRate:  statement.HourlyRate,
		Commission:  statement.TotalCommission,
		Gross:       statement.Gross,
		PaidByID:    paidBy,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
