package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	domainRepo "github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) domainRepo.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

type modificationRepository struct {
	db *gorm.DB
}

// NewModificationRepository creates a new modification repository
func NewModificationRepository(db *gorm.DB) domainRepo.ModificationRepository {
	return &modificationRepository{db: db}
}

func (r *modificationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Modification, error) {
	var mods []entity.Modification
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&mods).Error
	return mods, err
}

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &discount, err
}
