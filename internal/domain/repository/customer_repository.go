package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// UpdateVoucherBalance overwrites the customer's voucher balance.
	// Used only by the post-commit voucher deduction; the read-compute-
	// write is deliberately unguarded (single-register deployment).
	UpdateVoucherBalance(ctx context.Context, id uuid.UUID, balance int64) error
}
