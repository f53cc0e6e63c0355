// controllers/payment.go
package controllers

import (
	"net/http"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/services"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateCheckoutInput struct {
	SuccessURL string `json:"successUrl" binding:"required"`
	CancelURL  string `json:"cancelUrl" binding:"required"`
}

// CreateAppointmentCheckout creates a Stripe checkout session for the
// appointment's price. Capture and payment webhooks stay with Stripe.
func CreateAppointmentCheckout(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appointment, ok := appointmentByID(c, tenantUUID, true)
	if !ok {
		return
	}

	var input CreateCheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, &utils.ValidationError{Message: "Invalid input: " + err.Error()})
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, "id = ?", tenantUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	url, err := services.CreateCheckoutSession(&tenant, appointment, input.SuccessURL, input.CancelURL)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
