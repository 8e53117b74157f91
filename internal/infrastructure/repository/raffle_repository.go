package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/entity"
	domainRepo "github.com/slowlifemotors/garage-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type raffleLogRepository struct {
	db *gorm.DB
}

// NewRaffleLogRepository creates a new raffle ledger repository
func NewRaffleLogRepository(db *gorm.DB) domainRepo.RaffleLogRepository {
	return &raffleLogRepository{db: db}
}

func (r *raffleLogRepository) Create(ctx context.Context, entry *entity.RaffleSalesLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *raffleLogRepository) ListRange(ctx context.Context, start, end time.Time) ([]entity.RaffleSalesLog, error) {
	var entries []entity.RaffleSalesLog
	err := r.db.WithContext(ctx).
		Where("sold_at >= ? AND sold_at < ?", start, end).
		Order("sold_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *raffleLogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	// gorm soft delete; the ledger is never hard-deleted
	return r.db.WithContext(ctx).Delete(&entity.RaffleSalesLog{}, "id = ?", id).Error
}
