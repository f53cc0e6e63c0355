// services/notify.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier sends customer-facing booking messages over whichever
// channels the tenant has configured. Callers invoke it fire-and-forget:
// a failed send is logged but never rolls back the mutation that
// triggered it.
type Notifier struct {
	db        *gorm.DB
	messenger Messenger
	mailer    Mailer
}

func NewNotifier(db *gorm.DB, messenger Messenger, mailer Mailer) *Notifier {
	return &Notifier{db: db, messenger: messenger, mailer: mailer}
}

// SendBookingConfirmation confirms a new booking by SMS and, when
// configured, email.
func (n *Notifier) SendBookingConfirmation(tenant *models.Tenant, appointment *models.Appointment, customer *models.Customer) {
	body := fmt.Sprintf("Hi %s, your %s appointment with %s is confirmed for %s.",
		customer.FirstName,
		appointment.Service.Name,
		tenant.Name,
		appointment.ScheduledStart.Format("Mon Jan 2 at 3:04 PM"))

	if tenant.SMSNotifications {
		err := n.messenger.SendSMS(tenant, customer.Phone, body)
		n.logAttempt(tenant.ID, appointment.ID, "sms", customer.Phone, body, err)
	}
	if tenant.EmailNotifications && customer.Email != "" {
		err := n.mailer.SendEmail(tenant, customer.Email, "Your booking is confirmed",
			"<p>"+body+"</p>")
		n.logAttempt(tenant.ID, appointment.ID, "email", customer.Email, body, err)
	}
}

// SendDelayNotification tells the customer the technician is running
// late.
func (n *Notifier) SendDelayNotification(tenant *models.Tenant, appointment *models.Appointment, customer *models.Customer) {
	body := fmt.Sprintf("Hi %s, sorry for the wait. Your technician is running about %d minutes behind. Thanks for your patience!",
		customer.FirstName, appointment.DelayMinutes)

	err := n.messenger.SendSMS(tenant, customer.Phone, body)
	n.logAttempt(tenant.ID, appointment.ID, "sms", customer.Phone, body, err)
	if err == nil {
		n.db.Model(&models.Appointment{}).Where("id = ?", appointment.ID).
			Update("delay_notified", true)
	}
}

func (n *Notifier) logAttempt(tenantID, appointmentID uuid.UUID, channel, recipient, body string, sendErr error) {
	status := "sent"
	errorMsg := ""

	var configuration *utils.ConfigurationError
	if errors.As(sendErr, &configuration) {
		status = "skipped"
		errorMsg = sendErr.Error()
	} else if sendErr != nil {
		log.Printf("Failed to send %s to %s: %v", channel, recipient, sendErr)
		status = "failed"
		errorMsg = sendErr.Error()
	}

	entry := models.CommunicationLog{
		TenantID:      tenantID,
		AppointmentID: &appointmentID,
		Channel:       channel,
		Recipient:     recipient,
		Body:          body,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log %s attempt to %s: %v", channel, recipient, err)
	}
}
