package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a retail customer. The voucher balance is only
// ever decremented by the checkout settlement step; membership and
// blacklist flags are read at checkout time, never cached.
type Customer struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Phone            *string        `gorm:"size:50" json:"phone,omitempty"`
	VoucherAmount    int64          `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	MembershipActive bool           `gorm:"default:false" json:"membership_active"`
	MembershipStart  *time.Time     `json:"membership_start,omitempty"`
	MembershipEnd    *time.Time     `json:"membership_end,omitempty"`
	Blacklisted      bool           `gorm:"default:false" json:"blacklisted"`
	BlacklistStart   *time.Time     `json:"blacklist_start,omitempty"`
	BlacklistEnd     *time.Time     `json:"blacklist_end,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		VoucherAmount float64 `json:"voucher_amount"`
	}{
		Alias:         Alias(c),
		VoucherAmount: float64(c.VoucherAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
