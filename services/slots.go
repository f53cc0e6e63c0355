// services/slots.go
package services

import (
	"time"

	"fieldpro-backend/models"
)

// The public widget offers a fixed grid of hourly slots, 09:00 through
// 16:00 inclusive start hours.
const (
	SlotOpeningHour = 9
	SlotClosingHour = 16
)

type Slot struct {
	Start     time.Time `json:"start"`
	Label     string    `json:"label"`
	Available bool      `json:"available"`
}

// GenerateSlots returns the 8 hourly slots for a date, each tagged
// available unless an existing non-cancelled appointment covers the
// slot's start instant.
func GenerateSlots(date time.Time, appointments []models.Appointment) []Slot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	slots := make([]Slot, 0, SlotClosingHour-SlotOpeningHour+1)
	for hour := SlotOpeningHour; hour <= SlotClosingHour; hour++ {
		start := day.Add(time.Duration(hour) * time.Hour)
		slots = append(slots, Slot{
			Start:     start,
			Label:     start.Format("3:04 PM"),
			Available: SlotAvailable(start, appointments),
		})
	}
	return slots
}

// SlotAvailable checks only the slot's start instant against each
// appointment's [start, end) interval. An appointment beginning mid-slot
// does not block the slot before it; this matches the booking widget's
// long-standing behavior and is relied on by existing tenants.
func SlotAvailable(start time.Time, appointments []models.Appointment) bool {
	for _, a := range appointments {
		if a.Status == models.AppointmentCancelled {
			continue
		}
		if !start.Before(a.ScheduledStart) && start.Before(a.ScheduledEnd) {
			return false
		}
	}
	return true
}
