package services

import (
	"testing"

	"fieldpro-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

type sentMessage struct {
	To   string
	Body string
}

// fakeMessenger records sends instead of calling Twilio.
type fakeMessenger struct {
	sent []sentMessage
	err  error
}

func (f *fakeMessenger) SendSMS(tenant *models.Tenant, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return nil
}
