package controllers

import (
	"net/http"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// UpdateTenantInput covers display info, the review link, notification
// toggles, and per-provider credentials. Credentials live on the tenant
// row, never in process environment.
type UpdateTenantInput struct {
	Name          *string         `json:"name"`
	OwnerName     *string         `json:"ownerName"`
	OwnerPhone    *string         `json:"ownerPhone"`
	Address       *string         `json:"address"`
	ReviewLink    *string         `json:"reviewLink"`
	GooglePlaceID *string         `json:"googlePlaceId"`
	BusinessHours *datatypes.JSON `json:"businessHours"`

	TwilioAccountSID *string `json:"twilioAccountSid"`
	TwilioAuthToken  *string `json:"twilioAuthToken"`
	TwilioFromNumber *string `json:"twilioFromNumber"`
	ResendAPIKey     *string `json:"resendApiKey"`
	EmailFromAddress *string `json:"emailFromAddress"`
	StripeSecretKey  *string `json:"stripeSecretKey"`

	SMSNotifications   *bool `json:"smsNotifications"`
	EmailNotifications *bool `json:"emailNotifications"`
}

// GetProfile returns the tenant's settings. Secrets are masked down to
// presence flags.
func GetProfile(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, "id = ?", tenantUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tenant not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":               tenant.Name,
		"slug":               tenant.Slug,
		"ownerName":          tenant.OwnerName,
		"ownerPhone":         tenant.OwnerPhone,
		"address":            tenant.Address,
		"reviewLink":         tenant.ReviewLink,
		"googlePlaceId":      tenant.GooglePlaceID,
		"businessHours":      tenant.BusinessHours,
		"twilioFromNumber":   tenant.TwilioFromNumber,
		"emailFromAddress":   tenant.EmailFromAddress,
		"smsConfigured":      tenant.HasSMSCredentials(),
		"emailConfigured":    tenant.HasEmailCredentials(),
		"stripeConfigured":   tenant.StripeSecretKey != "",
		"smsNotifications":   tenant.SMSNotifications,
		"emailNotifications": tenant.EmailNotifications,
	})
}

// UpdateProfile applies partial settings updates.
func UpdateProfile(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, "id = ?", tenantUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tenant not found")
		return
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.OwnerName != nil {
		tenant.OwnerName = *input.OwnerName
	}
	if input.OwnerPhone != nil {
		tenant.OwnerPhone = utils.NormalizePhone(*input.OwnerPhone)
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}
	if input.ReviewLink != nil {
		tenant.ReviewLink = *input.ReviewLink
	}
	if input.GooglePlaceID != nil {
		tenant.GooglePlaceID = *input.GooglePlaceID
	}
	if input.BusinessHours != nil {
		tenant.BusinessHours = *input.BusinessHours
	}
	if input.TwilioAccountSID != nil {
		tenant.TwilioAccountSID = *input.TwilioAccountSID
	}
	if input.TwilioAuthToken != nil {
		tenant.TwilioAuthToken = *input.TwilioAuthToken
	}
	if input.TwilioFromNumber != nil {
		tenant.TwilioFromNumber = utils.NormalizePhone(*input.TwilioFromNumber)
	}
	if input.ResendAPIKey != nil {
		tenant.ResendAPIKey = *input.ResendAPIKey
	}
	if input.EmailFromAddress != nil {
		tenant.EmailFromAddress = *input.EmailFromAddress
	}
	if input.StripeSecretKey != nil {
		tenant.StripeSecretKey = *input.StripeSecretKey
	}
	if input.SMSNotifications != nil {
		tenant.SMSNotifications = *input.SMSNotifications
	}
	if input.EmailNotifications != nil {
		tenant.EmailNotifications = *input.EmailNotifications
	}

	if err := config.DB.Save(&tenant).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tenant")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}
