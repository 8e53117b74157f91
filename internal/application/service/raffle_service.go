package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"github.com/slowlifemotors/garage-pos/pkg/apperror"
	"github.com/slowlifemotors/garage-pos/pkg/random"
)

// Wheel angle padding keeps the display target away from a span
// boundary so the client animation never lands on a dividing line.
const (
	wheelPadFraction = 0.08
	wheelPadMin      = 0.25
	wheelPadMax      = 3.0
)

// RaffleService aggregates the ticket ledger and performs the weighted
// draw. The random source is injected so tests can fix the stream and
// assert exact winners.
type RaffleService struct {
	raffleRepo repository.RaffleLogRepository
	src        random.Source
}

// NewRaffleService creates a new raffle service
func NewRaffleService(raffleRepo repository.RaffleLogRepository, src random.Source) *RaffleService {
	return &RaffleService{raffleRepo: raffleRepo, src: src}
}

// RaffleGroup is one participant's aggregated ticket count. CustomerID
// is the zero UUID for walk-in sales with no customer record.
type RaffleGroup struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Tickets    int       `json:"tickets"`
}

// RaffleSummary is the grouped ticket totals for a date range
type RaffleSummary struct {
	TotalTickets int           `json:"total_tickets"`
	Groups       []RaffleGroup `json:"groups"`
}

// WheelGeometry tells the client where to land the wheel animation.
// The winner is already determined server-side; the geometry cannot
// alter the outcome.
type WheelGeometry struct {
	Pick        int     `json:"pick"`
	SpanStart   float64 `json:"span_start"`
	SpanEnd     float64 `json:"span_end"`
	TargetAngle float64 `json:"target_angle"`
}

// DrawResult is the outcome of a weighted draw
type DrawResult struct {
	RaffleSummary
	Winner *RaffleGroup   `json:"winner,omitempty"`
	Wheel  *WheelGeometry `json:"wheel,omitempty"`
}

// Summary aggregates non-deleted ledger entries over whole days
// [start, end], grouped by customer and lowercased name, sorted by
// ticket count descending (stable by first sale for ties).
func (s *RaffleService) Summary(ctx context.Context, start, end time.Time) (*RaffleSummary, error) {
	entries, err := s.raffleRepo.ListRange(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		customerID uuid.UUID
		name       string
	}
	totals := make(map[groupKey]*RaffleGroup)
	order := make([]groupKey, 0, len(entries))

	for i := range entries {
		e := &entries[i]
		key := groupKey{name: strings.ToLower(e.CustomerName)}
		if e.CustomerID != nil {
			key.customerID = *e.CustomerID
		}
		g, exists := totals[key]
		if !exists {
			g = &RaffleGroup{CustomerID: key.customerID, Name: e.CustomerName}
			totals[key] = g
			order = append(order, key)
		}
		g.Tickets += e.Tickets
	}

	groups := make([]RaffleGroup, 0, len(order))
	total := 0
	for _, key := range order {
		g := totals[key]
		if g.Tickets <= 0 {
			continue
		}
		groups = append(groups, *g)
		total += g.Tickets
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Tickets > groups[j].Tickets
	})

	return &RaffleSummary{TotalTickets: total, Groups: groups}, nil
}

// Draw performs the weighted random selection over the summary. A pick
// is drawn uniformly over [1, totalTickets]; walking the sorted groups,
// the first whose cumulative ticket count reaches the pick wins.
func (s *RaffleService) Draw(ctx context.Context, start, end time.Time) (*DrawResult, error) {
	summary, err := s.Summary(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if summary.TotalTickets == 0 {
		return &DrawResult{RaffleSummary: *summary}, nil
	}

	r, err := s.src.Float64()
	if err != nil {
		return nil, err
	}
	pick := int(r*float64(summary.TotalTickets)) + 1

	cumulative := 0
	winnerIdx := len(summary.Groups) - 1
	cumBefore := 0
	for i, g := range summary.Groups {
		if cumulative+g.Tickets >= pick {
			winnerIdx = i
			cumBefore = cumulative
			break
		}
		cumulative += g.Tickets
	}
	winner := summary.Groups[winnerIdx]

	wheel, err := s.wheelFor(summary.TotalTickets, cumBefore, winner.Tickets, pick)
	if err != nil {
		return nil, err
	}

	return &DrawResult{
		RaffleSummary: *summary,
		Winner:        &winner,
		Wheel:         wheel,
	}, nil
}

// wheelFor assigns each group a contiguous angular span proportional to
// its ticket share and draws a display angle inside the winner's span,
// padded inward to avoid a boundary-exact target.
func (s *RaffleService) wheelFor(totalTickets, ticketsBefore, winnerTickets, pick int) (*WheelGeometry, error) {
	spanStart := 360 * float64(ticketsBefore) / float64(totalTickets)
	spanEnd := 360 * float64(ticketsBefore+winnerTickets) / float64(totalTickets)

	pad := (spanEnd - spanStart) * wheelPadFraction
	if pad < wheelPadMin {
		pad = wheelPadMin
	}
	if pad > wheelPadMax {
		pad = wheelPadMax
	}
	lo := spanStart + pad
	hi := spanEnd - pad
	if hi < lo {
		mid := (spanStart + spanEnd) / 2
		lo, hi = mid, mid
	}

	r, err := s.src.Float64()
	if err != nil {
		return nil, err
	}
	return &WheelGeometry{
		Pick:        pick,
		SpanStart:   spanStart,
		SpanEnd:     spanEnd,
		TargetAngle: lo + r*(hi-lo),
	}, nil
}

// DeleteEntry soft-deletes a ledger entry. The ledger is append-only;
// entries are never physically removed.
func (s *RaffleService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return apperror.NewBadRequestError("Entry id is required")
	}
	return s.raffleRepo.SoftDelete(ctx, id)
}
