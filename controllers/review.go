// controllers/review.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Twilio expects a TwiML body on webhook responses. All customer-facing
// replies go out through the REST API instead, so the ack stays empty.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// HandleInboundSMS is the Twilio webhook for review replies. The tenant
// is resolved by the receiving number; a reply with no matching tenant
// or no open conversation is acknowledged and dropped.
func HandleInboundSMS(c *gin.Context) {
	from := utils.NormalizePhone(c.PostForm("From"))
	to := utils.NormalizePhone(c.PostForm("To"))
	body := c.PostForm("Body")

	var tenant models.Tenant
	err := config.DB.Where("twilio_from_number = ? AND is_active = true", to).First(&tenant).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Inbound SMS: tenant lookup failed: %v", err)
		}
		c.Data(http.StatusOK, "text/xml", []byte(emptyTwiML))
		return
	}

	if err := Reviews.HandleInboundReply(&tenant, from, body); err != nil {
		// The webhook must still ack or Twilio retries the delivery.
		log.Printf("Inbound SMS: reply handling failed for %s: %v", from, err)
	}

	c.Data(http.StatusOK, "text/xml", []byte(emptyTwiML))
}

// RunReviewSweep triggers the reminder sweep on demand. The same sweep
// runs on the cron schedule.
func RunReviewSweep(c *gin.Context) {
	advanced, expired := Reviews.RunReminderSweep(time.Now())
	c.JSON(http.StatusOK, gin.H{"advanced": advanced, "expired": expired})
}

// GetReviewRequests lists the tenant's review conversations for the CRM.
func GetReviewRequests(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("tenant_id = ?", tenantUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.ReviewRequest
	if err := query.Order("sent_at DESC").Find(&requests).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve review requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}
