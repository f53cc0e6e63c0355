// services/payments.go
package services

import (
	"math"

	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// CreateCheckoutSession creates a Stripe checkout session for an
// appointment's price using the tenant's own secret key. Only session
// creation is handled here; capture and webhooks stay with Stripe.
func CreateCheckoutSession(tenant *models.Tenant, appointment *models.Appointment, successURL, cancelURL string) (string, error) {
	if tenant.StripeSecretKey == "" {
		return "", &utils.ConfigurationError{Reason: "tenant has no Stripe credentials configured"}
	}

	sc := &client.API{}
	sc.Init(tenant.StripeSecretKey, nil)

	amount := int64(math.Round(appointment.Price * 100))
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(appointment.Service.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.AddMetadata("appointment_id", appointment.ID.String())

	session, err := sc.CheckoutSessions.New(params)
	if err != nil {
		return "", &utils.UpstreamError{Provider: "stripe", Message: err.Error()}
	}
	return session.URL, nil
}
