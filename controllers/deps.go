package controllers

import (
	"net/http"

	"fieldpro-backend/config"
	"fieldpro-backend/services"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Shared provider-backed services. InitServices wires the real providers;
// tests substitute fakes.
var (
	Notifier *services.Notifier
	Reviews  *services.ReviewService
	Places   *services.PlacesClient
)

func InitServices() {
	messenger := services.NewTwilioMessenger()
	mailer := services.NewResendMailer()
	Notifier = services.NewNotifier(config.DB, messenger, mailer)
	Reviews = services.NewReviewService(config.DB, messenger)
	Places = services.NewPlacesClient()
}

// tenantFromContext pulls the tenant id the auth middleware stored from
// the JWT. Responds with the error itself so callers just return on !ok.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, exists := c.Get("tenantId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Tenant ID not found in context")
		return uuid.Nil, false
	}

	tenantUUID, err := uuid.Parse(tenantID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid tenant ID format")
		return uuid.Nil, false
	}
	return tenantUUID, true
}
