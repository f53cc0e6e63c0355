package services

import (
	"testing"
	"time"

	"fieldpro-backend/models"
)

func dayAt(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestGenerateSlotsGrid(t *testing.T) {
	slots := GenerateSlots(dayAt(0), nil)

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	if got := slots[0].Label; got != "9:00 AM" {
		t.Errorf("first slot label = %q, want %q", got, "9:00 AM")
	}
	if got := slots[7].Label; got != "4:00 PM" {
		t.Errorf("last slot label = %q, want %q", got, "4:00 PM")
	}
	for _, slot := range slots {
		if !slot.Available {
			t.Errorf("slot %s should be available with no appointments", slot.Label)
		}
	}
}

func TestGenerateSlotsStartInstantOverlap(t *testing.T) {
	// Appointment 10:00-12:00 covers the start instants of the 10:00
	// and 11:00 slots only.
	existing := []models.Appointment{
		{
			Status:         models.AppointmentScheduled,
			ScheduledStart: dayAt(10),
			ScheduledEnd:   dayAt(12),
		},
	}

	slots := GenerateSlots(dayAt(0), existing)
	for _, slot := range slots {
		hour := slot.Start.Hour()
		wantAvailable := hour != 10 && hour != 11
		if slot.Available != wantAvailable {
			t.Errorf("slot %s available = %v, want %v", slot.Label, slot.Available, wantAvailable)
		}
	}
}

func TestGenerateSlotsMidSlotAppointmentDoesNotBlockPriorSlot(t *testing.T) {
	// An appointment beginning at 10:30 does not cover the 10:00 start
	// instant, so the 10:00 slot stays available.
	halfPast := dayAt(10).Add(30 * time.Minute)
	existing := []models.Appointment{
		{
			Status:         models.AppointmentScheduled,
			ScheduledStart: halfPast,
			ScheduledEnd:   halfPast.Add(time.Hour),
		},
	}

	slots := GenerateSlots(dayAt(0), existing)
	for _, slot := range slots {
		switch slot.Start.Hour() {
		case 10:
			if !slot.Available {
				t.Error("10:00 slot should stay available for a 10:30 appointment")
			}
		case 11:
			if slot.Available {
				t.Error("11:00 slot should be blocked by a 10:30-11:30 appointment")
			}
		default:
			if !slot.Available {
				t.Errorf("slot %s should be available", slot.Label)
			}
		}
	}
}

func TestGenerateSlotsIgnoresCancelled(t *testing.T) {
	existing := []models.Appointment{
		{
			Status:         models.AppointmentCancelled,
			ScheduledStart: dayAt(9),
			ScheduledEnd:   dayAt(17),
		},
	}

	for _, slot := range GenerateSlots(dayAt(0), existing) {
		if !slot.Available {
			t.Errorf("slot %s should ignore cancelled appointments", slot.Label)
		}
	}
}

func TestSlotAvailableExactStartMatch(t *testing.T) {
	// An appointment starting exactly on a slot's start makes that slot
	// and only that slot unavailable.
	existing := []models.Appointment{
		{
			Status:         models.AppointmentScheduled,
			ScheduledStart: dayAt(13),
			ScheduledEnd:   dayAt(14),
		},
	}

	for _, slot := range GenerateSlots(dayAt(0), existing) {
		wantAvailable := slot.Start.Hour() != 13
		if slot.Available != wantAvailable {
			t.Errorf("slot %s available = %v, want %v", slot.Label, slot.Available, wantAvailable)
		}
	}
}
