package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is an append-only snapshot computed from an appointment. It is
// never mutated after creation.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointmentId"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	ServiceName   string    `gorm:"not null" json:"serviceName"`
	IssueDate     time.Time `gorm:"not null" json:"issueDate"`
	DueDate       time.Time `gorm:"not null" json:"dueDate"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	gorm.Model
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
