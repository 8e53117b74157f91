package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"github.com/slowlifemotors/garage-pos/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// HardDelete removes an order header outright. It exists solely as
	// the compensating step for a header whose lines failed to write,
	// and is idempotent.
	HardDelete(ctx context.Context, id uuid.UUID) error
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, staffID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListSettled returns paid, non-staff-customer orders for a staff
	// member within [start, end), lines preloaded. The payroll engine's
	// only read.
	ListSettled(ctx context.Context, staffID uuid.UUID, start, end time.Time) ([]entity.Order, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderLineRepository defines the interface for order line data operations
type OrderLineRepository interface {
	CreateBatch(ctx context.Context, lines []entity.OrderLine) error
	Update(ctx context.Context, line *entity.OrderLine) error
}
