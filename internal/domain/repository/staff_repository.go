package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
)

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByEmail(ctx context.Context, email string) (*entity.Staff, error)
}

// StaffPaymentRepository defines the interface for payroll payment records
type StaffPaymentRepository interface {
	Create(ctx context.Context, payment *entity.StaffPayment) error
	// GetLatestByStaff returns the staff member's most recent payment by
	// period end, or nil when none exists.
	GetLatestByStaff(ctx context.Context, staffID uuid.UUID) (*entity.StaffPayment, error)
}
