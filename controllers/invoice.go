// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/services"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInvoice computes and persists the invoice snapshot
// for an appointment. One POST, one row; invoices are never mutated.
func CreateAppointmentInvoice(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appointment, ok := appointmentByID(c, tenantUUID, true)
	if !ok {
		return
	}

	invoice, err := services.CreateInvoice(config.DB, appointment)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves all invoices for the tenant
func GetInvoices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Where("tenant_id = ?", tenantUUID).
		Order("issue_date DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	invoice, ok := invoiceByID(c, tenantUUID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceDocument renders the static document view from the persisted
// row. Both the JSON and document paths read the same stored values, so
// the numbers cannot drift.
func GetInvoiceDocument(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	invoice, ok := invoiceByID(c, tenantUUID)
	if !ok {
		return
	}

	var tenant models.Tenant
	config.DB.First(&tenant, "id = ?", tenantUUID)

	var customer models.Customer
	config.DB.First(&customer, "id = ?", invoice.CustomerID)

	document := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
  <h1>%s</h1>
  <p>Invoice %s</p>
  <p>Billed to: %s (%s)</p>
  <p>Issued: %s &middot; Due: %s</p>
  <table>
    <tr><td>%s</td><td>$%.2f</td></tr>
    <tr><td>Tax (8%%)</td><td>$%.2f</td></tr>
    <tr><td><strong>Total</strong></td><td><strong>$%.2f</strong></td></tr>
  </table>
</body>
</html>`,
		invoice.InvoiceNumber,
		tenant.Name,
		invoice.InvoiceNumber,
		customer.FullName(), customer.Phone,
		invoice.IssueDate.Format("Jan 2, 2006"),
		invoice.DueDate.Format("Jan 2, 2006"),
		invoice.ServiceName, invoice.Subtotal,
		invoice.Tax,
		invoice.Total)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(document))
}

func invoiceByID(c *gin.Context, tenantUUID uuid.UUID) (*models.Invoice, bool) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return nil, false
	}

	var invoice models.Invoice
	if err := config.DB.Where("tenant_id = ? AND id = ?", tenantUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &invoice, true
}
