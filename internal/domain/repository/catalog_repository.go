package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
)

// VehicleRepository defines the interface for vehicle lookups
type VehicleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
}

// ModificationRepository defines the interface for catalog modification lookups
type ModificationRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Modification, error)
}

// DiscountRepository defines the interface for discount lookups
type DiscountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
}
