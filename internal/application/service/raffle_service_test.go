package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	raffleStart = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	raffleEnd   = time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)
)

func raffleEntry(customerID *uuid.UUID, name string, tickets int, soldAt time.Time) entity.RaffleSalesLog {
	return entity.RaffleSalesLog{
		ID:           uuid.New(),
		CustomerID:   customerID,
		CustomerName: name,
		Tickets:      tickets,
		OrderID:      uuid.New(),
		StaffID:      uuid.New(),
		SoldAt:       soldAt,
	}
}

func TestRaffleSummary_GroupsAndSorts(t *testing.T) {
	repo := &fakeRaffleRepo{}
	aliceID := uuid.New()
	repo.entries = []entity.RaffleSalesLog{
		raffleEntry(&aliceID, "Alice", 2, raffleStart.Add(24*time.Hour)),
		raffleEntry(nil, "Walk-in", 3, raffleStart.Add(36*time.Hour)),
		raffleEntry(&aliceID, "Alice", 4, raffleStart.Add(48*time.Hour)),
	}
	svc := NewRaffleService(repo, &fixedSource{})

	summary, err := svc.Summary(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	assert.Equal(t, 9, summary.TotalTickets)
	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "Alice", summary.Groups[0].Name)
	assert.Equal(t, 6, summary.Groups[0].Tickets)
	assert.Equal(t, aliceID, summary.Groups[0].CustomerID)
	assert.Equal(t, "Walk-in", summary.Groups[1].Name)
	assert.Equal(t, 3, summary.Groups[1].Tickets)
	assert.Equal(t, uuid.Nil, summary.Groups[1].CustomerID)
}

func TestRaffleSummary_GroupsNamesCaseInsensitively(t *testing.T) {
	repo := &fakeRaffleRepo{}
	repo.entries = []entity.RaffleSalesLog{
		raffleEntry(nil, "Kenji", 1, raffleStart.Add(time.Hour)),
		raffleEntry(nil, "KENJI", 2, raffleStart.Add(2*time.Hour)),
	}
	svc := NewRaffleService(repo, &fixedSource{})

	summary, err := svc.Summary(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	require.Len(t, summary.Groups, 1)
	assert.Equal(t, 3, summary.Groups[0].Tickets)
	// First-seen casing wins.
	assert.Equal(t, "Kenji", summary.Groups[0].Name)
}

func TestRaffleSummary_EndDateIsInclusive(t *testing.T) {
	repo := &fakeRaffleRepo{}
	repo.entries = []entity.RaffleSalesLog{
		raffleEntry(nil, "On the last day", 1, raffleEnd.Add(12*time.Hour)),
		raffleEntry(nil, "Past the range", 1, raffleEnd.Add(36*time.Hour)),
	}
	svc := NewRaffleService(repo, &fixedSource{})

	summary, err := svc.Summary(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalTickets)
	require.Len(t, summary.Groups, 1)
	assert.Equal(t, "On the last day", summary.Groups[0].Name)
}

func TestRaffleDraw_Deterministic(t *testing.T) {
	repo := &fakeRaffleRepo{}
	repo.entries = []entity.RaffleSalesLog{
		raffleEntry(nil, "Alice", 5, raffleStart.Add(time.Hour)),
		raffleEntry(nil, "Bob", 3, raffleStart.Add(2*time.Hour)),
		raffleEntry(nil, "Cara", 2, raffleStart.Add(3*time.Hour)),
	}
	svc := NewRaffleService(repo, &fixedSource{vals: []float64{0.55, 0.5}})

	result, err := svc.Draw(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	// pick = int(0.55*10)+1 = 6, which lands in Bob's 6..8 band.
	require.NotNil(t, result.Winner)
	assert.Equal(t, "Bob", result.Winner.Name)
	assert.Equal(t, 10, result.TotalTickets)

	require.NotNil(t, result.Wheel)
	assert.Equal(t, 6, result.Wheel.Pick)
	assert.InDelta(t, 180.0, result.Wheel.SpanStart, 1e-9)
	assert.InDelta(t, 288.0, result.Wheel.SpanEnd, 1e-9)
	// Pad clamps at 3 degrees; the target sits mid-span for r=0.5.
	assert.InDelta(t, 234.0, result.Wheel.TargetAngle, 1e-9)
}

func TestRaffleDraw_LowestPickWinsTopGroup(t *testing.T) {
	repo := &fakeRaffleRepo{}
	repo.entries = []entity.RaffleSalesLog{
		raffleEntry(nil, "Alice", 5, raffleStart.Add(time.Hour)),
		raffleEntry(nil, "Bob", 3, raffleStart.Add(2*time.Hour)),
	}
	svc := NewRaffleService(repo, &fixedSource{vals: []float64{0, 0.5}})

	result, err := svc.Draw(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	require.NotNil(t, result.Winner)
	assert.Equal(t, "Alice", result.Winner.Name)
	assert.Equal(t, 1, result.Wheel.Pick)
}

func TestRaffleDraw_WheelAngleStaysInsideWinnerSpan(t *testing.T) {
	repo := &fakeRaffleRepo{}
	repo.entries = []entity.RaffleSalesLog{
		raffleEntry(nil, "Alice", 99, raffleStart.Add(time.Hour)),
		raffleEntry(nil, "Bob", 1, raffleStart.Add(2*time.Hour)),
	}
	// r pushes the pick into Bob's single-ticket band, r2 to the far edge.
	svc := NewRaffleService(repo, &fixedSource{vals: []float64{0.999, 1.0}})

	result, err := svc.Draw(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	require.NotNil(t, result.Winner)
	assert.Equal(t, "Bob", result.Winner.Name)
	assert.Greater(t, result.Wheel.TargetAngle, result.Wheel.SpanStart)
	assert.Less(t, result.Wheel.TargetAngle, result.Wheel.SpanEnd)
}

func TestRaffleDraw_EmptyRange(t *testing.T) {
	svc := NewRaffleService(&fakeRaffleRepo{}, &fixedSource{})

	result, err := svc.Draw(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)

	assert.Nil(t, result.Winner)
	assert.Nil(t, result.Wheel)
	assert.Equal(t, 0, result.TotalTickets)
}

func TestRaffleDeleteEntry(t *testing.T) {
	repo := &fakeRaffleRepo{}
	entry := raffleEntry(nil, "Alice", 2, raffleStart.Add(time.Hour))
	repo.entries = []entity.RaffleSalesLog{entry}
	svc := NewRaffleService(repo, &fixedSource{})

	err := svc.DeleteEntry(context.Background(), uuid.Nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	require.NoError(t, svc.DeleteEntry(context.Background(), entry.ID))
	assert.Equal(t, []uuid.UUID{entry.ID}, repo.deleted)

	summary, err := svc.Summary(context.Background(), raffleStart, raffleEnd)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalTickets)
}
