package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RaffleSalesLog is an append-only record of raffle ticket sales. The
// customer name is snapshotted at the time of sale so later renames do
// not rewrite draw history. Entries are only ever soft-deleted.
type RaffleSalesLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string         `gorm:"size:255;not null" json:"customer_name"`
	Tickets      int            `gorm:"not null" json:"tickets"`
	OrderID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	StaffID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"staff_id"`
	SoldAt       time.Time      `gorm:"not null;index" json:"sold_at"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new log entry
func (r *RaffleSalesLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RaffleSalesLog model
func (RaffleSalesLog) TableName() string {
	return "raffle_sales_log"
}
