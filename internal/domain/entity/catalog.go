package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Vehicle represents a vehicle model that can be modified
type Vehicle struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	BasePrice int64          `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (v Vehicle) MarshalJSON() ([]byte, error) {
	type Alias Vehicle
	return json.Marshal(&struct {
		Alias
		BasePrice float64 `json:"base_price"`
	}{
		Alias:     Alias(v),
		BasePrice: float64(v.BasePrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// Modification represents a catalog modification that can be applied to
// a vehicle. Its price is derived from the vehicle base price when the
// pricing type is percentage, or taken as-is when flat.
type Modification struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	PricingType  enum.PricingType `gorm:"size:20;not null" json:"pricing_type"`
	PricingValue float64          `gorm:"not null;default:0" json:"pricing_value"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new modification
func (m *Modification) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Modification model
func (Modification) TableName() string {
	return "modifications"
}

// Discount represents a named percentage discount
type Discount struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Percent   float64        `gorm:"not null;default:0" json:"percent"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new discount
func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}
