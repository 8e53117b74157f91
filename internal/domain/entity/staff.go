package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents a staff role with its payroll parameters
type Role struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name              string    `gorm:"size:100;unique;not null" json:"name"`
	CommissionPercent float64   `gorm:"not null;default:0" json:"commission_percent"`
	HourlyRate        int64     `gorm:"not null;default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Role) MarshalJSON() ([]byte, error) {
	type Alias Role
	return json.Marshal(&struct {
		Alias
		HourlyRate float64 `json:"hourly_rate"`
	}{
		Alias:      Alias(r),
		HourlyRate: float64(r.HourlyRate) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new role
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// Staff represents an employee who can operate the register
type Staff struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Active    bool           `gorm:"default:true" json:"active"`
	RoleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"role_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
