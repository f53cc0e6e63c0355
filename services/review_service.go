// services/review_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Reminder escalation windows. The first reminder goes out a day after
// the initial send, the final one three days after that, and any
// conversation still open a week after the initial send expires silently.
const (
	firstReminderAfter = 24 * time.Hour
	finalReminderAfter = 72 * time.Hour
	reviewExpiryAfter  = 7 * 24 * time.Hour
)

// ReviewService owns the review-solicitation conversation: the initial
// SMS after a completed job, interpretation of inbound replies, and the
// periodic reminder sweep.
type ReviewService struct {
	db        *gorm.DB
	messenger Messenger
}

func NewReviewService(db *gorm.DB, messenger Messenger) *ReviewService {
	return &ReviewService{db: db, messenger: messenger}
}

// StartScheduler runs the reminder sweep every 30 minutes.
func (s *ReviewService) StartScheduler() {
	c := cron.New()
	c.AddFunc("*/30 * * * *", func() {
		s.RunReminderSweep(time.Now())
	})
	c.Start()
	log.Println("Review reminder scheduler started")
}

// CreateRequest sends the initial review SMS for an appointment and
// records the conversation. At most one active conversation may exist
// per appointment; a second trigger while one is open is refused.
func (s *ReviewService) CreateRequest(tenant *models.Tenant, appointment *models.Appointment, customer *models.Customer) (*models.ReviewRequest, error) {
	var open int64
	s.db.Model(&models.ReviewRequest{}).
		Where("appointment_id = ? AND status IN ?", appointment.ID, models.OpenReviewStatuses).
		Count(&open)
	if open > 0 {
		return nil, &utils.ValidationError{Message: "an active review request already exists for this appointment"}
	}

	technician := appointment.TechnicianName
	if technician == "" {
		technician = "our technician"
	}
	body := fmt.Sprintf("Hi %s, thanks for choosing %s! How did %s do today? Reply with a rating from 1 to 5.",
		customer.FirstName, tenant.Name, technician)

	if err := s.messenger.SendSMS(tenant, customer.Phone, body); err != nil {
		return nil, err
	}

	request := models.ReviewRequest{
		TenantID:       tenant.ID,
		AppointmentID:  appointment.ID,
		CustomerPhone:  customer.Phone,
		TechnicianName: appointment.TechnicianName,
		Status:         models.ReviewSent,
		SentAt:         time.Now(),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ReplyOutcome describes what an inbound reply does to the conversation.
type ReplyOutcome struct {
	NewStatus     models.ReviewRequestStatus
	Rating        *int
	ReplyText     string
	WantsCallback *bool

	// CustomerMessage, when non-empty, is the one outbound SMS this
	// branch sends back to the replying customer.
	CustomerMessage string
	// NotifyOwner means the branch's outbound goes to the tenant owner
	// instead of the customer.
	NotifyOwner bool
}

// InterpretReply maps a free-text SMS body onto a state transition. The
// interpretation depends only on the tenant and the body text.
// Pure: no I/O, so every branch is unit-testable.
func InterpretReply(tenant *models.Tenant, body string) ReplyOutcome {
	text := strings.TrimSpace(body)
	upper := strings.ToUpper(text)

	boolPtr := func(v bool) *bool { return &v }

	// YES/NO answers a pending callback offer.
	if upper == "YES" || upper == "NO" {
		if upper == "YES" && tenant.OwnerPhone != "" {
			return ReplyOutcome{
				NewStatus:     models.ReviewEscalated,
				WantsCallback: boolPtr(true),
				NotifyOwner:   true,
			}
		}
		return ReplyOutcome{
			NewStatus:       models.ReviewCompleted,
			WantsCallback:   boolPtr(upper == "YES"),
			CustomerMessage: "Thanks for letting us know. We appreciate your feedback!",
		}
	}

	// A bare integer 1-5 is a satisfaction rating.
	if rating, err := strconv.Atoi(text); err == nil && rating >= 1 && rating <= 5 {
		outcome := ReplyOutcome{Rating: &rating}
		switch {
		case rating == 5:
			outcome.NewStatus = models.ReviewCompleted
			outcome.CustomerMessage = "Thank you so much! It would mean a lot if you shared that here: " + tenant.ReviewLink
		case rating == 4:
			outcome.NewStatus = models.ReviewReplied
			outcome.CustomerMessage = "Thanks for the feedback! What could we have done to make it a 5-star visit?"
		default:
			outcome.NewStatus = models.ReviewReplied
			outcome.CustomerMessage = "We're sorry to hear that. Would you like a call back from the owner? Reply YES or NO."
		}
		return outcome
	}

	// Anything else is free-text detail following an earlier rating.
	return ReplyOutcome{
		NewStatus: models.ReviewCompleted,
		ReplyText: text,
	}
}

// HandleInboundReply routes an inbound SMS to the most recent open
// conversation for the phone number within the tenant and applies the
// outcome. A reply with no open conversation is a no-op. The state write
// and the outbound send are deliberately not transactional: a failed
// send is logged and the state still advances.
func (s *ReviewService) HandleInboundReply(tenant *models.Tenant, fromPhone, body string) error {
	var request models.ReviewRequest
	err := s.db.Where("tenant_id = ? AND customer_phone = ? AND status IN ?",
		tenant.ID, fromPhone, models.OpenReviewStatuses).
		Order("sent_at DESC").
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	outcome := InterpretReply(tenant, body)

	now := time.Now()
	updates := map[string]interface{}{
		"status":     outcome.NewStatus,
		"replied_at": &now,
		"updated_at": now,
	}
	if outcome.Rating != nil {
		updates["rating"] = *outcome.Rating
	}
	if outcome.ReplyText != "" {
		updates["reply_text"] = outcome.ReplyText
	}
	if outcome.WantsCallback != nil {
		updates["wants_callback"] = *outcome.WantsCallback
	}
	if err := s.db.Model(&request).Updates(updates).Error; err != nil {
		return err
	}

	if outcome.NotifyOwner {
		summary := s.ownerSummary(&request, body)
		if err := s.messenger.SendSMS(tenant, tenant.OwnerPhone, summary); err != nil {
			log.Printf("Failed to notify owner %s: %v", tenant.OwnerPhone, err)
		}
	} else if outcome.CustomerMessage != "" {
		if err := s.messenger.SendSMS(tenant, fromPhone, outcome.CustomerMessage); err != nil {
			log.Printf("Failed to reply to %s: %v", fromPhone, err)
		}
	}
	return nil
}

func (s *ReviewService) ownerSummary(request *models.ReviewRequest, lastReply string) string {
	rating := "no rating"
	if request.Rating != nil {
		rating = fmt.Sprintf("%d/5", *request.Rating)
	}
	detail := request.ReplyText
	if detail == "" {
		detail = lastReply
	}
	return fmt.Sprintf("Callback requested: %s rated their visit %s and would like a call. Last reply: %q",
		request.CustomerPhone, rating, detail)
}

// RunReminderSweep advances open conversations by elapsed time. Each row
// is claimed with a conditional update on its current status before any
// send, so an overlapping sweep cannot double-send. Returns how many
// rows were advanced and how many expired.
func (s *ReviewService) RunReminderSweep(now time.Time) (advanced, expired int) {
	var requests []models.ReviewRequest
	if err := s.db.Where("status IN ?", []models.ReviewRequestStatus{
		models.ReviewSent, models.ReviewReminded1, models.ReviewReminded2,
	}).Find(&requests).Error; err != nil {
		log.Printf("Reminder sweep: failed to load review requests: %v", err)
		return
	}

	for i := range requests {
		request := &requests[i]

		// Expiry is measured from the original send and sends nothing.
		if now.Sub(request.SentAt) >= reviewExpiryAfter {
			if s.claim(request, models.ReviewExpired, "", now) {
				expired++
			}
			continue
		}

		switch request.Status {
		case models.ReviewSent:
			if now.Sub(request.SentAt) >= firstReminderAfter {
				if s.claim(request, models.ReviewReminded1, "reminder1_at", now) {
					s.sendReminder(request, "Just checking in! How did we do? Reply with a rating from 1 to 5.")
					advanced++
				}
			}
		case models.ReviewReminded1:
			if request.Reminder1At != nil && now.Sub(*request.Reminder1At) >= finalReminderAfter {
				if s.claim(request, models.ReviewReminded2, "reminder2_at", now) {
					s.sendReminder(request, "Last chance to rate your recent visit from 1 to 5. We'd love to hear from you!")
					advanced++
				}
			}
		}
	}

	if advanced > 0 || expired > 0 {
		s.db.Create(&models.AutomationLog{
			Source: "review_reminder_sweep",
			Detail: fmt.Sprintf("advanced %d, expired %d", advanced, expired),
		})
	}
	return advanced, expired
}

// claim flips the row to next only if it still holds its loaded status.
// stampColumn, when non-empty, records the transition time.
func (s *ReviewService) claim(request *models.ReviewRequest, next models.ReviewRequestStatus, stampColumn string, now time.Time) bool {
	updates := map[string]interface{}{"status": next, "updated_at": now}
	if stampColumn != "" {
		updates[stampColumn] = now
	}

	result := s.db.Model(&models.ReviewRequest{}).
		Where("id = ? AND status = ?", request.ID, request.Status).
		Updates(updates)
	if result.Error != nil {
		log.Printf("Reminder sweep: failed to claim request %s: %v", request.ID, result.Error)
		return false
	}
	if result.RowsAffected == 0 {
		// Another sweep or an inbound reply got there first.
		return false
	}
	request.Status = next
	return true
}

func (s *ReviewService) sendReminder(request *models.ReviewRequest, body string) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "id = ?", request.TenantID).Error; err != nil {
		log.Printf("Reminder sweep: tenant %s not found: %v", request.TenantID, err)
		return
	}
	if err := s.messenger.SendSMS(&tenant, request.CustomerPhone, body); err != nil {
		log.Printf("Reminder sweep: failed to send to %s: %v", request.CustomerPhone, err)
	}
}
