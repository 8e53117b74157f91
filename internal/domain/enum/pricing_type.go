package enum

// PricingType describes how a modification's catalog price is derived
// from the vehicle's base price.
type PricingType string

const (
	// PricingTypePercentage prices the modification as a percentage of
	// the vehicle base price.
	PricingTypePercentage PricingType = "percentage"
	// PricingTypeFlat prices the modification as a flat amount.
	PricingTypeFlat PricingType = "flat"
)

// Valid reports whether the value is one of the known pricing types.
func (t PricingType) Valid() bool {
	return t == PricingTypePercentage || t == PricingTypeFlat
}
