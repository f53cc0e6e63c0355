package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunicationLog records one outbound message attempt. Rows are
// append-only and never mutated after insert.
type CommunicationLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"tenantId"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId"`

	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms, email
	Recipient    string    `json:"recipient"`
	Body         string    `gorm:"type:text" json:"body"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed, skipped
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model
}

func (l *CommunicationLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}

// AutomationLog records a run of an automated job such as the reminder
// sweep or the recurrence generator.
type AutomationLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index" json:"tenantId"`

	Source string `gorm:"type:varchar(40)" json:"source"`
	Detail string `gorm:"type:text" json:"detail"`

	gorm.Model
}

func (l *AutomationLog) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
