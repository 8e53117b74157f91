package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
)

// RaffleLogRepository defines the interface for the raffle sales ledger.
// The ledger is append-only: entries are created once and only ever
// soft-deleted.
type RaffleLogRepository interface {
	Create(ctx context.Context, entry *entity.RaffleSalesLog) error
	// ListRange returns non-deleted entries with sold_at in [start, end),
	// ordered by sold_at ascending.
	ListRange(ctx context.Context, start, end time.Time) ([]entity.RaffleSalesLog, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
