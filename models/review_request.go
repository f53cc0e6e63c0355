package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRequestStatus enumerates the states of a review conversation.
type ReviewRequestStatus string

const (
	ReviewSent      ReviewRequestStatus = "sent"
	ReviewReminded1 ReviewRequestStatus = "reminded_1"
	ReviewReminded2 ReviewRequestStatus = "reminded_2"
	ReviewReplied   ReviewRequestStatus = "replied"
	ReviewCompleted ReviewRequestStatus = "completed"
	ReviewEscalated ReviewRequestStatus = "escalated"
	ReviewExpired   ReviewRequestStatus = "expired"
)

// IsTerminal reports whether the conversation is closed.
func (s ReviewRequestStatus) IsTerminal() bool {
	return s == ReviewCompleted || s == ReviewEscalated || s == ReviewExpired
}

// OpenReviewStatuses lists the states an inbound reply or the reminder
// sweep may still act on.
var OpenReviewStatuses = []ReviewRequestStatus{ReviewSent, ReviewReminded1, ReviewReminded2, ReviewReplied}

// ReviewRequest tracks one review-solicitation conversation per appointment.
type ReviewRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointmentId"`

	CustomerPhone  string `gorm:"index;not null" json:"customerPhone"`
	TechnicianName string `json:"technicianName"`

	Status ReviewRequestStatus `gorm:"type:varchar(20);default:'sent';index" json:"status"`

	Rating        *int   `json:"rating"`
	ReplyText     string `json:"replyText"`
	WantsCallback bool   `gorm:"default:false" json:"wantsCallback"`

	SentAt      time.Time  `gorm:"index;not null" json:"sentAt"`
	Reminder1At *time.Time `json:"reminder1At"`
	Reminder2At *time.Time `json:"reminder2At"`
	RepliedAt   *time.Time `json:"repliedAt"`

	gorm.Model
}

func (r *ReviewRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
