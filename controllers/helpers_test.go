package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMessage struct {
	To   string
	Body string
}

type fakeMessenger struct {
	sent []sentMessage
}

func (f *fakeMessenger) SendSMS(tenant *models.Tenant, to, body string) error {
	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return nil
}

type fakeMailer struct{}

func (f *fakeMailer) SendEmail(tenant *models.Tenant, to, subject, html string) error {
	return nil
}

// setupTest points the global DB at an in-memory database and wires the
// controller services with fakes.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second pool connection would see a separate empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Appointment{},
		&models.ReviewRequest{},
		&models.Invoice{},
		&models.CommunicationLog{},
		&models.AutomationLog{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.DB = db
	messenger := &fakeMessenger{}
	Notifier = services.NewNotifier(db, messenger, &fakeMailer{})
	Reviews = services.NewReviewService(db, messenger)
	return db
}

// stubAuth stands in for the JWT middleware and pins the tenant id.
func stubAuth(tenantID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", uuid.New().String())
		c.Set("tenantId", tenantID.String())
		c.Next()
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func createTenant(t *testing.T, db *gorm.DB) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		ID:         uuid.New(),
		Slug:       "ace-plumbing",
		Name:       "Ace Plumbing",
		OwnerPhone: "+15550001111",
		IsActive:   true,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	return tenant
}

func createService(t *testing.T, db *gorm.DB, tenant *models.Tenant) *models.Service {
	t.Helper()
	service := &models.Service{
		TenantID: tenant.ID,
		Name:     "Drain Cleaning",
		Price:    150,
		Duration: 90,
		IsActive: true,
	}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}
