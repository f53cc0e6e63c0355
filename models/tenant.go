package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tenant is one service business. Every other row hangs off a tenant and
// all queries are scoped by TenantID. Provider credentials are stored per
// tenant and never serialized in API responses.
type Tenant struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name string    `gorm:"not null" json:"name"`

	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone"`
	Address    string `json:"address"`

	ReviewLink    string         `json:"reviewLink"`
	GooglePlaceID string         `json:"googlePlaceId"`
	BusinessHours datatypes.JSON `json:"businessHours"`

	TwilioAccountSID string `json:"-"`
	TwilioAuthToken  string `json:"-"`
	TwilioFromNumber string `json:"-"`
	ResendAPIKey     string `json:"-"`
	EmailFromAddress string `json:"emailFromAddress"`
	StripeSecretKey  string `json:"-"`

	SMSNotifications   bool `gorm:"default:true" json:"smsNotifications"`
	EmailNotifications bool `gorm:"default:true" json:"emailNotifications"`
	IsActive           bool `gorm:"default:true" json:"isActive"`

	Users        []User        `gorm:"foreignKey:TenantID" json:"-"`
	Customers    []Customer    `gorm:"foreignKey:TenantID" json:"-"`
	Services     []Service     `gorm:"foreignKey:TenantID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:TenantID" json:"-"`
	Invoices     []Invoice     `gorm:"foreignKey:TenantID" json:"-"`

	gorm.Model
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// HasSMSCredentials reports whether the tenant can send through Twilio.
func (t *Tenant) HasSMSCredentials() bool {
	return t.TwilioAccountSID != "" && t.TwilioAuthToken != "" && t.TwilioFromNumber != ""
}

// HasEmailCredentials reports whether the tenant can send through Resend.
func (t *Tenant) HasEmailCredentials() bool {
	return t.ResendAPIKey != "" && t.EmailFromAddress != ""
}
