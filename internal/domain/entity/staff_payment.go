package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffPayment records a payroll payment for a completed pay period.
// The latest payment's PeriodEnd anchors the start of the next period.
type StaffPayment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StaffID     uuid.UUID `gorm:"type:uuid;not null;index" json:"staff_id"`
	PeriodStart time.Time `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null;index" json:"period_end"`
	HoursWorked float64   `gorm:"not null;default:0" json:"hours_worked"`
	HourlyRate  int64     `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Commission  int64     `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Gross       int64     `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	PaidByID    uuid.UUID `gorm:"type:uuid;not null" json:"paid_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Staff Staff `gorm:"foreignKey:StaffID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p StaffPayment) MarshalJSON() ([]byte, error) {
	type Alias StaffPayment
	return json.Marshal(&struct {
		Alias
		HourlyRate float64 `json:"hourly_rate"`
		Commission float64 `json:"commission"`
		Gross      float64 `json:"gross"`
	}{
		Alias:      Alias(p),
		HourlyRate: float64(p.HourlyRate) / 100,
		Commission: float64(p.Commission) / 100,
		Gross:      float64(p.Gross) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *StaffPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StaffPayment model
func (StaffPayment) TableName() string {
	return "staff_payments"
}
