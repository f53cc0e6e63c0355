// services/sms.go
package services

import (
	"log"

	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Messenger sends an SMS on behalf of a tenant. The review flow and the
// notifiers depend on this interface so tests can swap the provider out.
type Messenger interface {
	SendSMS(tenant *models.Tenant, to, body string) error
}

// TwilioMessenger sends through Twilio using the tenant's own account
// credentials.
type TwilioMessenger struct{}

func NewTwilioMessenger() *TwilioMessenger {
	return &TwilioMessenger{}
}

func (m *TwilioMessenger) SendSMS(tenant *models.Tenant, to, body string) error {
	if !tenant.HasSMSCredentials() {
		return &utils.ConfigurationError{Reason: "tenant has no SMS credentials configured"}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: tenant.TwilioAccountSID,
		Password: tenant.TwilioAuthToken,
	})

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(tenant.TwilioFromNumber)
	params.SetBody(body)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		return &utils.UpstreamError{Provider: "twilio", Message: err.Error()}
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	} else {
		log.Printf("SMS sent to %s, but no SID returned", to)
	}
	return nil
}
