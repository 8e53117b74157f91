package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/slowlifemotors/garage-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents one retail transaction. Orders are never physically
// deleted once committed; the only hard delete is the compensating
// removal of a header whose lines failed to write. The customer is
// either a real customer or a staff member buying for themselves,
// discriminated by CustomerIsStaff.
type Order struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Status          enum.OrderStatus `gorm:"default:0" json:"status"`
	VehicleID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	StaffID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"staff_id"`
	CustomerID      *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	StaffCustomerID *uuid.UUID       `gorm:"type:uuid;index" json:"staff_customer_id,omitempty"`
	CustomerIsStaff bool             `gorm:"default:false" json:"customer_is_staff"`
	DiscountID      *uuid.UUID       `gorm:"type:uuid" json:"discount_id,omitempty"`
	VehicleBase     int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Subtotal        int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount  int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Total           int64            `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	Note            string           `gorm:"type:text" json:"note"`
	VoidedAt        *time.Time       `json:"voided_at,omitempty"`
	VoidReason      *string          `gorm:"type:text" json:"void_reason,omitempty"`
	VoidedByID      *uuid.UUID       `gorm:"type:uuid" json:"voided_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relationships
	Vehicle  Vehicle     `gorm:"foreignKey:VehicleID" json:"-"`
	Staff    Staff       `gorm:"foreignKey:StaffID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Discount *Discount   `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		VehicleBase    float64 `json:"vehicle_base"`
		Subtotal       float64 `json:"subtotal"`
		DiscountAmount float64 `json:"discount_amount"`
		Total          float64 `json:"total"`
	}{
		Alias:          Alias(o),
		VehicleBase:    float64(o.VehicleBase) / 100,
		Subtotal:       float64(o.Subtotal) / 100,
		DiscountAmount: float64(o.DiscountAmount) / 100,
		Total:          float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ActiveLines returns the order's non-voided lines.
func (o *Order) ActiveLines() []OrderLine {
	active := make([]OrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		if !l.Voided {
			active = append(active, l)
		}
	}
	return active
}

// OrderLine represents one priced modification on the order's vehicle.
// UnitPrice already includes the blacklist multiplier applied at
// checkout. Voided only ever flips false to true.
type OrderLine struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	VehicleID      uuid.UUID        `gorm:"type:uuid;not null" json:"vehicle_id"`
	ModificationID uuid.UUID        `gorm:"type:uuid;not null" json:"modification_id"`
	ModName        string           `gorm:"size:255;not null" json:"mod_name"`
	Quantity       int              `gorm:"not null" json:"quantity"`
	UnitPrice      int64            `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PricingType    enum.PricingType `gorm:"size:20;not null" json:"pricing_type"`
	PricingValue   float64          `gorm:"not null;default:0" json:"pricing_value"`
	Voided         bool             `gorm:"default:false" json:"voided"`
	VoidedAt       *time.Time       `json:"voided_at,omitempty"`
	VoidReason     *string          `gorm:"type:text" json:"void_reason,omitempty"`
	VoidedByID     *uuid.UUID       `gorm:"type:uuid" json:"voided_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		LineTotal: float64(l.LineTotal()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// LineTotal returns quantity times unit price in cents.
func (l *OrderLine) LineTotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}
