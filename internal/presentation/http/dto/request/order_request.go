package request

import "github.com/google/uuid"

// CheckoutLineRequest represents one cart line in a checkout request
type CheckoutLineRequest struct {
	VehicleID      uuid.UUID `json:"vehicle_id" binding:"required"`
	ModificationID uuid.UUID `json:"modification_id" binding:"required"`
	ModName        string    `json:"mod_name" binding:"required,max=255"`
	Quantity       int       `json:"quantity" binding:"required,min=1"`
	ComputedPrice  float64   `json:"computed_price" binding:"min=0"`
	PricingType    string    `json:"pricing_type" binding:"required,oneof=percentage flat"`
	PricingValue   float64   `json:"pricing_value" binding:"min=0"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	StaffID         uuid.UUID             `json:"staff_id" binding:"required"`
	VehicleID       uuid.UUID             `json:"vehicle_id" binding:"required"`
	CustomerID      *uuid.UUID            `json:"customer_id"`
	StaffCustomerID *uuid.UUID            `json:"staff_customer_id"`
	CustomerIsStaff bool                  `json:"customer_is_staff"`
	DiscountID      *uuid.UUID            `json:"discount_id"`
	VoucherAmount   float64               `json:"voucher_amount" binding:"min=0"`
	Note            string                `json:"note" binding:"max=1000"`
	Lines           []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// VoidLineRequest represents a request to void a single order line
type VoidLineRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
