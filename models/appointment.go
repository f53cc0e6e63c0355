package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentInProgress  AppointmentStatus = "in_progress"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
)

type RecurrenceFrequency string

const (
	RecurrenceNone     RecurrenceFrequency = "none"
	RecurrenceWeekly   RecurrenceFrequency = "weekly"
	RecurrenceBiweekly RecurrenceFrequency = "biweekly"
	RecurrenceMonthly  RecurrenceFrequency = "monthly"
)

type Appointment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	TechnicianName string `json:"technicianName"`

	ScheduledStart time.Time  `gorm:"index;not null" json:"scheduledStart"`
	ScheduledEnd   time.Time  `gorm:"not null" json:"scheduledEnd"`
	ActualStart    *time.Time `json:"actualStart"`
	ActualEnd      *time.Time `json:"actualEnd"`

	Status AppointmentStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	Price  float64           `gorm:"type:decimal(10,2);default:0.0" json:"price"`

	Notes         string `json:"notes"`
	InternalNotes string `json:"internalNotes"`

	Photos    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"photos"`
	Checklist datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"checklist"`
	Signature string         `json:"signature"`

	DelayMinutes  int  `gorm:"default:0" json:"delayMinutes"`
	DelayNotified bool `gorm:"default:false" json:"delayNotified"`

	RecurrenceFrequency RecurrenceFrequency `gorm:"type:varchar(20);default:'none'" json:"recurrenceFrequency"`
	ParentAppointmentID *uuid.UUID          `gorm:"type:uuid;index" json:"parentAppointmentId"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer"`
	Service  Service  `gorm:"foreignKey:ServiceID" json:"service"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
