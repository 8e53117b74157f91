package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	domainRepo "github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB) domainRepo.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).Preload("Role").First(&staff, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*entity.Staff, error) {
	var staff entity.Staff
	err := r.db.WithContext(ctx).Preload("Role").First(&staff, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &staff, err
}

type staffPaymentRepository struct {
	db *gorm.DB
}

// NewStaffPaymentRepository creates a new staff payment repository
func NewStaffPaymentRepository(db *gorm.DB) domainRepo.StaffPaymentRepository {
	return &staffPaymentRepository{db: db}
}

func (r *staffPaymentRepository) Create(ctx context.Context, payment *entity.StaffPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *staffPaymentRepository) GetLatestByStaff(ctx context.Context, staffID uuid.UUID) (*entity.StaffPayment, error) {
	var payment entity.StaffPayment
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("period_end DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}
