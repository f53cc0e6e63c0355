package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_tenant_phone,priority:1" json:"tenantId"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `gorm:"not null;uniqueIndex:idx_tenant_phone,priority:2" json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`

	LastBooking *time.Time `json:"lastBooking"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	Appointments []Appointment `gorm:"foreignKey:CustomerID" json:"-"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// FullName joins first and last name for message templates.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
