// services/invoice_service.go
package services

import (
	"math"
	"time"

	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"gorm.io/gorm"
)

const (
	InvoiceTaxRate     = 0.08
	InvoiceDueDateDays = 30
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildInvoice computes an invoice snapshot from an appointment.
// Subtotal is the appointment price (0 if absent), tax is a fixed 8%,
// and the document is later rendered from these same persisted values so
// there is no recomputation drift.
func BuildInvoice(appointment *models.Appointment, now time.Time) models.Invoice {
	subtotal := appointment.Price
	tax := round2(subtotal * InvoiceTaxRate)

	return models.Invoice{
		TenantID:      appointment.TenantID,
		AppointmentID: appointment.ID,
		CustomerID:    appointment.CustomerID,
		ServiceName:   appointment.Service.Name,
		InvoiceNumber: "INV-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, InvoiceDueDateDays),
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         round2(subtotal + tax),
	}
}

// CreateInvoice persists one invoice row for the appointment.
func CreateInvoice(db *gorm.DB, appointment *models.Appointment) (*models.Invoice, error) {
	invoice := BuildInvoice(appointment, time.Now())
	if err := db.Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}
