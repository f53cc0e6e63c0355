// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/services"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput defines the JSON the public widget posts. First
// name and phone are the only mandatory contact fields.
type CreateBookingInput struct {
	ServiceID *uuid.UUID `json:"serviceId"`
	Start     *time.Time `json:"start"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Notes     string     `json:"notes"`
}

func tenantBySlug(c *gin.Context) (*models.Tenant, bool) {
	var tenant models.Tenant
	err := config.DB.Where("slug = ? AND is_active = true", c.Param("slug")).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.HandleError(c, &utils.NotFoundError{Resource: "Tenant"})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &tenant, true
}

// GetPublicServices lists the tenant's active bookable services.
func GetPublicServices(c *gin.Context) {
	tenant, ok := tenantBySlug(c)
	if !ok {
		return
	}

	var bookable []models.Service
	if err := config.DB.Where("tenant_id = ? AND is_active = true", tenant.ID).
		Find(&bookable).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, bookable)
}

// GetPublicSlots returns the hourly availability grid for a date.
func GetPublicSlots(c *gin.Context) {
	tenant, ok := tenantBySlug(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.HandleError(c, &utils.ValidationError{Message: "date is required as YYYY-MM-DD"})
		return
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	var existing []models.Appointment
	if err := config.DB.Where(
		"tenant_id = ? AND scheduled_start >= ? AND scheduled_start < ? AND status <> ?",
		tenant.ID, dayStart, dayEnd, models.AppointmentCancelled,
	).Find(&existing).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": services.GenerateSlots(date, existing),
	})
}

// CreateBooking books an appointment from the public widget: resolve the
// tenant, reuse or create the customer by phone, size the end time from
// the service duration, and queue a confirmation message. The
// confirmation is fire-and-forget; its failure never rolls the booking
// back.
func CreateBooking(c *gin.Context) {
	tenant, ok := tenantBySlug(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, &utils.ValidationError{Message: "Invalid input: " + err.Error()})
		return
	}

	switch {
	case input.ServiceID == nil:
		utils.HandleError(c, &utils.ValidationError{Message: "serviceId is required"})
		return
	case input.Start == nil:
		utils.HandleError(c, &utils.ValidationError{Message: "start is required"})
		return
	case input.FirstName == "":
		utils.HandleError(c, &utils.ValidationError{Message: "firstName is required"})
		return
	case input.Phone == "":
		utils.HandleError(c, &utils.ValidationError{Message: "phone is required"})
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.HandleError(c, &utils.ValidationError{Message: "Invalid phone number format"})
		return
	}
	phone := utils.NormalizePhone(input.Phone)

	var service models.Service
	if err := config.DB.Where("tenant_id = ? AND id = ?", tenant.ID, *input.ServiceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.HandleError(c, &utils.NotFoundError{Resource: "Service"})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Look up or create the customer by exact phone match within the
	// tenant. Repeat bookings reuse the existing record.
	var customer models.Customer
	err := config.DB.Where("tenant_id = ? AND phone = ?", tenant.ID, phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			TenantID:  tenant.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     phone,
			Email:     input.Email,
			Address:   input.Address,
			IsActive:  true,
		}
		if err := config.DB.Create(&customer).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
			return
		}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	appointment := models.Appointment{
		TenantID:       tenant.ID,
		CustomerID:     customer.ID,
		ServiceID:      service.ID,
		ScheduledStart: *input.Start,
		ScheduledEnd:   input.Start.Add(time.Duration(service.Duration) * time.Minute),
		Status:         models.AppointmentScheduled,
		Price:          service.Price,
		Notes:          input.Notes,
	}
	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	now := time.Now()
	config.DB.Model(&customer).Update("last_booking", &now)

	appointment.Service = service
	go Notifier.SendBookingConfirmation(tenant, &appointment, &customer)

	c.JSON(http.StatusCreated, appointment)
}
