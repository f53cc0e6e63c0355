// controllers/appointment.go
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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AppointmentActionInput carries one of the fixed lifecycle actions and
// its optional payload fields.
type AppointmentActionInput struct {
	Action        string          `json:"action" binding:"required"`
	Notes         *string         `json:"notes"`
	InternalNotes *string         `json:"internalNotes"`
	Photos        *datatypes.JSON `json:"photos"`
	Checklist     *datatypes.JSON `json:"checklist"`
	Signature     *string         `json:"signature"`
	DelayMinutes  *int            `json:"delayMinutes"`
	NewTime       *time.Time      `json:"newTime"`
}

func appointmentByID(c *gin.Context, tenantUUID uuid.UUID, preload bool) (*models.Appointment, bool) {
	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return nil, false
	}

	query := config.DB.Where("tenant_id = ? AND id = ?", tenantUUID, appointmentUUID)
	if preload {
		query = query.Preload("Customer").Preload("Service")
	}

	var appointment models.Appointment
	if err := query.First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &appointment, true
}

// GetAppointments retrieves the tenant's appointments, optionally
// filtered by date and status. This backs both the CRM calendar and the
// technician schedule app.
func GetAppointments(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Customer").Preload("Service").
		Where("tenant_id = ?", tenantUUID)

	if dateParam := c.Query("date"); dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_start >= ? AND scheduled_start < ?", date, date.AddDate(0, 0, 1))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_start ASC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appointment, ok := appointmentByID(c, tenantUUID, true)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// ApplyAppointmentAction applies one of the fixed lifecycle actions as a
// single field patch. Unrecognized actions leave the record untouched.
// The delay notification is dispatched asynchronously and best-effort.
func ApplyAppointmentAction(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appointment, ok := appointmentByID(c, tenantUUID, true)
	if !ok {
		return
	}

	var input AppointmentActionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.HandleError(c, &utils.ValidationError{Message: "Invalid input: " + err.Error()})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	var notifyDelay bool

	switch input.Action {
	case "start":
		updates["status"] = models.AppointmentInProgress
		updates["actual_start"] = &now

	case "complete":
		updates["status"] = models.AppointmentCompleted
		updates["actual_end"] = &now
		if input.Notes != nil {
			updates["notes"] = *input.Notes
		}
		if input.Photos != nil {
			updates["photos"] = *input.Photos
		}
		if input.Signature != nil {
			updates["signature"] = *input.Signature
		}
		if input.Checklist != nil {
			updates["checklist"] = *input.Checklist
		}

	case "delay":
		minutes := 15
		if input.DelayMinutes != nil {
			minutes = *input.DelayMinutes
		}
		updates["delay_minutes"] = minutes
		updates["delay_notified"] = false
		notifyDelay = true

	case "cancel":
		updates["status"] = models.AppointmentCancelled
		if input.InternalNotes != nil {
			updates["internal_notes"] = *input.InternalNotes
		}

	case "reschedule":
		if input.NewTime == nil {
			utils.HandleError(c, &utils.ValidationError{Message: "newTime is required for reschedule"})
			return
		}
		updates["status"] = models.AppointmentRescheduled
		updates["scheduled_start"] = *input.NewTime

	default:
		utils.HandleError(c, &utils.InvalidActionError{Action: input.Action})
		return
	}

	if err := config.DB.Model(appointment).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	if notifyDelay {
		var tenant models.Tenant
		if err := config.DB.First(&tenant, "id = ?", tenantUUID).Error; err == nil {
			delayed := *appointment
			delayed.DelayMinutes = updates["delay_minutes"].(int)
			go Notifier.SendDelayNotification(&tenant, &delayed, &appointment.Customer)
		}
	}

	var updated models.Appointment
	if err := config.DB.Preload("Customer").Preload("Service").
		First(&updated, "id = ?", appointment.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reload appointment")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GenerateAppointmentRecurrences projects future appointments from a
// seed's recurrence frequency.
func GenerateAppointmentRecurrences(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appointment, ok := appointmentByID(c, tenantUUID, false)
	if !ok {
		return
	}

	created, err := services.GenerateRecurrences(config.DB, appointment)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}

// TriggerReviewRequest starts the review conversation for a job. Runs
// automatically for completed work but can also be triggered manually.
func TriggerReviewRequest(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appointment, ok := appointmentByID(c, tenantUUID, true)
	if !ok {
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, "id = ?", tenantUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	request, err := Reviews.CreateRequest(&tenant, appointment, &appointment.Customer)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}
