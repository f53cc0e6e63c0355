// services/email.go
package services

import (
	"log"

	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/resend/resend-go/v2"
)

// Mailer sends an email on behalf of a tenant.
type Mailer interface {
	SendEmail(tenant *models.Tenant, to, subject, html string) error
}

// ResendMailer sends through Resend using the tenant's own API key.
type ResendMailer struct{}

func NewResendMailer() *ResendMailer {
	return &ResendMailer{}
}

func (m *ResendMailer) SendEmail(tenant *models.Tenant, to, subject, html string) error {
	if !tenant.HasEmailCredentials() {
		return &utils.ConfigurationError{Reason: "tenant has no email credentials configured"}
	}

	client := resend.NewClient(tenant.ResendAPIKey)
	sent, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    tenant.EmailFromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return &utils.UpstreamError{Provider: "resend", Message: err.Error()}
	}
	log.Printf("Email sent to %s, ID: %s", to, sent.Id)
	return nil
}
