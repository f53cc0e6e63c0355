// services/recurrence.go
package services

import (
	"fmt"

	"fieldpro-backend/models"

	"gorm.io/gorm"
)

// The generator projects forward at most 90 days past the seed's own
// date, not the current date.
const recurrenceHorizonDays = 90

func recurrenceIntervalDays(frequency models.RecurrenceFrequency) int {
	switch frequency {
	case models.RecurrenceWeekly:
		return 7
	case models.RecurrenceBiweekly:
		return 14
	case models.RecurrenceMonthly:
		return 30 // fixed 30-day approximation
	default:
		return 0
	}
}

// ProjectRecurrences computes the future appointment rows a seed implies.
// Frequency none (or absent) yields an empty slice.
func ProjectRecurrences(seed *models.Appointment) []models.Appointment {
	interval := recurrenceIntervalDays(seed.RecurrenceFrequency)
	if interval == 0 {
		return nil
	}

	parentID := seed.ID
	var projected []models.Appointment
	for offset := interval; offset <= recurrenceHorizonDays; offset += interval {
		projected = append(projected, models.Appointment{
			TenantID:            seed.TenantID,
			CustomerID:          seed.CustomerID,
			ServiceID:           seed.ServiceID,
			TechnicianName:      seed.TechnicianName,
			ScheduledStart:      seed.ScheduledStart.AddDate(0, 0, offset),
			ScheduledEnd:        seed.ScheduledEnd.AddDate(0, 0, offset),
			Status:              models.AppointmentScheduled,
			Price:               seed.Price,
			Notes:               seed.Notes,
			RecurrenceFrequency: models.RecurrenceNone,
			ParentAppointmentID: &parentID,
		})
	}
	return projected
}

// GenerateRecurrences bulk-inserts the projected rows in one call and
// returns how many were created.
func GenerateRecurrences(db *gorm.DB, seed *models.Appointment) (int, error) {
	projected := ProjectRecurrences(seed)
	if len(projected) == 0 {
		return 0, nil
	}

	if err := db.Create(&projected).Error; err != nil {
		return 0, fmt.Errorf("failed to insert recurring appointments: %w", err)
	}

	db.Create(&models.AutomationLog{
		TenantID: seed.TenantID,
		Source:   "recurrence_generator",
		Detail:   fmt.Sprintf("created %d appointments from seed %s", len(projected), seed.ID),
	})

	return len(projected), nil
}
