package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc          *OrderService
	orderRepo    *fakeOrderRepo
	lineRepo     *fakeLineRepo
	discountRepo *fakeDiscountRepo

	staffID uuid.UUID
	orderID uuid.UUID
	lineIDs []uuid.UUID
}

// newOrderFixture seeds a paid two-line order: $600 and $400 lines,
// $1000 total with no discount.
func newOrderFixture() *orderFixture {
	f := &orderFixture{
		lineRepo:     newFakeLineRepo(),
		discountRepo: newFakeDiscountRepo(),
		staffID:      uuid.New(),
		orderID:      uuid.New(),
	}
	f.orderRepo = newFakeOrderRepo(f.lineRepo)
	f.svc = NewOrderService(f.orderRepo, f.lineRepo, f.discountRepo)

	lines := []entity.OrderLine{
		{ID: uuid.New(), OrderID: f.orderID, ModName: "Body Kit", Quantity: 1, UnitPrice: 60000},
		{ID: uuid.New(), OrderID: f.orderID, ModName: "Exhaust", Quantity: 1, UnitPrice: 40000},
	}
	f.lineRepo.byOrder[f.orderID] = lines
	f.lineIDs = []uuid.UUID{lines[0].ID, lines[1].ID}

	f.orderRepo.orders[f.orderID] = &entity.Order{
		ID:       f.orderID,
		Status:   enum.OrderStatusPaid,
		StaffID:  f.staffID,
		Subtotal: 100000,
		Total:    100000,
	}
	return f
}

func TestVoidLine_RecomputesTotals(t *testing.T) {
	f := newOrderFixture()

	result, err := f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[1], "wrong part")
	require.NoError(t, err)

	assert.False(t, result.OrderVoided)
	assert.Equal(t, enum.OrderStatusPaid, result.Order.Status)
	assert.Equal(t, int64(60000), result.Order.Subtotal)
	assert.Equal(t, int64(0), result.Order.DiscountAmount)
	assert.Equal(t, int64(60000), result.Order.Total)

	stored := f.lineRepo.byOrder[f.orderID]
	assert.True(t, stored[1].Voided)
	require.NotNil(t, stored[1].VoidReason)
	assert.Equal(t, "wrong part", *stored[1].VoidReason)
	assert.False(t, stored[0].Voided)
}

func TestVoidLine_ReappliesDiscount(t *testing.T) {
	f := newOrderFixture()
	discountID := uuid.New()
	f.discountRepo.discounts[discountID] = &entity.Discount{ID: discountID, Percent: 10}
	f.orderRepo.orders[f.orderID].DiscountID = &discountID
	f.orderRepo.orders[f.orderID].DiscountAmount = 10000
	f.orderRepo.orders[f.orderID].Total = 90000

	result, err := f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[1], "")
	require.NoError(t, err)

	assert.Equal(t, int64(60000), result.Order.Subtotal)
	assert.Equal(t, int64(6000), result.Order.DiscountAmount)
	assert.Equal(t, int64(54000), result.Order.Total)
}

func TestVoidLine_CascadesToOrder(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[0], "damaged")
	require.NoError(t, err)

	result, err := f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[1], "damaged")
	require.NoError(t, err)

	assert.True(t, result.OrderVoided)
	assert.Equal(t, enum.OrderStatusVoid, result.Order.Status)
	assert.Equal(t, int64(0), result.Order.Subtotal)
	assert.Equal(t, int64(0), result.Order.Total)
	require.NotNil(t, result.Order.VoidedAt)
	require.NotNil(t, result.Order.VoidReason)
	assert.Equal(t, "damaged", *result.Order.VoidReason)
}

func TestVoidLine_VoidOrderIsTerminal(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.orders[f.orderID].Status = enum.OrderStatusVoid

	_, err := f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[0], "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestVoidLine_DoubleVoidRejected(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[1], "")
	require.NoError(t, err)

	_, err = f.svc.VoidLine(context.Background(), f.staffID, f.orderID, f.lineIDs[1], "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestVoidLine_UnknownOrderAndLine(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.VoidLine(context.Background(), f.staffID, uuid.New(), f.lineIDs[0], "")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	_, err = f.svc.VoidLine(context.Background(), f.staffID, f.orderID, uuid.New(), "")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetOrder(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.GetOrder(context.Background(), f.orderID)
	require.NoError(t, err)
	assert.Len(t, order.Lines, 2)

	_, err = f.svc.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
