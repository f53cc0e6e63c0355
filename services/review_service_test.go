package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fieldpro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func reviewFixture(t *testing.T) (*gorm.DB, *fakeMessenger, *ReviewService, *models.Tenant) {
	t.Helper()

	db := openTestDB(t)
	tenant := &models.Tenant{
		ID:               uuid.New(),
		Slug:             "ace-plumbing",
		Name:             "Ace Plumbing",
		OwnerPhone:       "+15550001111",
		ReviewLink:       "https://g.page/r/ace-plumbing/review",
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioFromNumber: "+15559990000",
		IsActive:         true,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	messenger := &fakeMessenger{}
	return db, messenger, NewReviewService(db, messenger), tenant
}

func openRequest(t *testing.T, db *gorm.DB, tenant *models.Tenant, status models.ReviewRequestStatus, sentAt time.Time) *models.ReviewRequest {
	t.Helper()

	request := &models.ReviewRequest{
		TenantID:      tenant.ID,
		AppointmentID: uuid.New(),
		CustomerPhone: "+15551234567",
		Status:        status,
		SentAt:        sentAt,
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to create review request: %v", err)
	}
	return request
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) *models.ReviewRequest {
	t.Helper()
	var request models.ReviewRequest
	if err := db.First(&request, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload review request: %v", err)
	}
	return &request
}

func TestFiveStarReplyCompletesWithReviewLink(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-2*time.Hour))

	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, "5"); err != nil {
		t.Fatalf("HandleInboundReply: %v", err)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.Rating == nil || *updated.Rating != 5 {
		t.Error("rating 5 not persisted")
	}
	if updated.RepliedAt == nil {
		t.Error("replied_at not stamped")
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(messenger.sent))
	}
	if !strings.Contains(messenger.sent[0].Body, tenant.ReviewLink) {
		t.Errorf("outbound %q should contain the review link", messenger.sent[0].Body)
	}
}

func TestLowRatingOffersCallback(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-2*time.Hour))

	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, "2"); err != nil {
		t.Fatalf("HandleInboundReply: %v", err)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewReplied {
		t.Errorf("status = %s, want replied", updated.Status)
	}
	if updated.Rating == nil || *updated.Rating != 2 {
		t.Error("rating 2 not persisted")
	}
	if len(messenger.sent) != 1 || !strings.Contains(messenger.sent[0].Body, "YES or NO") {
		t.Fatalf("outbound should offer a YES/NO callback, got %v", messenger.sent)
	}
}

func TestYesEscalatesToOwner(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-2*time.Hour))

	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, "2"); err != nil {
		t.Fatalf("rating reply: %v", err)
	}
	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, "YES"); err != nil {
		t.Fatalf("callback reply: %v", err)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewEscalated {
		t.Errorf("status = %s, want escalated", updated.Status)
	}
	if !updated.WantsCallback {
		t.Error("wants_callback not set")
	}

	// Second send is the owner notification.
	if len(messenger.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(messenger.sent))
	}
	owner := messenger.sent[1]
	if owner.To != tenant.OwnerPhone {
		t.Errorf("owner notification went to %s, want %s", owner.To, tenant.OwnerPhone)
	}
	if !strings.Contains(owner.Body, "2/5") {
		t.Errorf("owner summary %q should include the rating", owner.Body)
	}
}

func TestYesWithoutOwnerCompletes(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	tenant.OwnerPhone = ""
	db.Save(tenant)
	request := openRequest(t, db, tenant, models.ReviewReplied, time.Now().Add(-2*time.Hour))

	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, "yes"); err != nil {
		t.Fatalf("HandleInboundReply: %v", err)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if !updated.WantsCallback {
		t.Error("wants_callback should still record the YES")
	}
	if len(messenger.sent) != 1 || messenger.sent[0].To != request.CustomerPhone {
		t.Fatalf("expected one thank-you to the customer, got %v", messenger.sent)
	}
}

func TestFreeTextReplyStoresVerbatim(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewReplied, time.Now().Add(-2*time.Hour))

	detail := "The tech left muddy footprints in the hallway"
	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, detail); err != nil {
		t.Fatalf("HandleInboundReply: %v", err)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.ReplyText != detail {
		t.Errorf("reply_text = %q, want verbatim detail", updated.ReplyText)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("free-text branch should not send, got %v", messenger.sent)
	}
}

func TestReplyWithoutOpenRequestIsNoOp(t *testing.T) {
	_, messenger, reviews, tenant := reviewFixture(t)

	if err := reviews.HandleInboundReply(tenant, "+15550009999", "5"); err != nil {
		t.Fatalf("HandleInboundReply: %v", err)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("no-op reply should not send, got %v", messenger.sent)
	}
}

func TestSweepSendsFirstReminderAfterADay(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-25*time.Hour))

	advanced, expired := reviews.RunReminderSweep(time.Now())
	if advanced != 1 || expired != 0 {
		t.Fatalf("sweep advanced=%d expired=%d, want 1/0", advanced, expired)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewReminded1 {
		t.Errorf("status = %s, want reminded_1", updated.Status)
	}
	if updated.Reminder1At == nil {
		t.Error("reminder1_at not stamped")
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(messenger.sent))
	}
}

func TestSweepSendsFinalReminderThreeDaysLater(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewReminded1, time.Now().Add(-5*24*time.Hour))
	reminder1 := time.Now().Add(-4 * 24 * time.Hour)
	db.Model(request).Update("reminder1_at", &reminder1)

	advanced, _ := reviews.RunReminderSweep(time.Now())
	if advanced != 1 {
		t.Fatalf("sweep advanced = %d, want 1", advanced)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewReminded2 {
		t.Errorf("status = %s, want reminded_2", updated.Status)
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(messenger.sent))
	}
}

func TestSweepExpiresWeekOldRequestsSilently(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-8*24*time.Hour))

	advanced, expired := reviews.RunReminderSweep(time.Now())
	if advanced != 0 || expired != 1 {
		t.Fatalf("sweep advanced=%d expired=%d, want 0/1", advanced, expired)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewExpired {
		t.Errorf("status = %s, want expired", updated.Status)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("expiry must not send, got %v", messenger.sent)
	}
}

func TestSweepLeavesFreshRequestsAlone(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-2*time.Hour))

	advanced, expired := reviews.RunReminderSweep(time.Now())
	if advanced != 0 || expired != 0 {
		t.Fatalf("sweep advanced=%d expired=%d, want 0/0", advanced, expired)
	}
	if got := reload(t, db, request.ID).Status; got != models.ReviewSent {
		t.Errorf("status = %s, want sent", got)
	}
	if len(messenger.sent) != 0 {
		t.Errorf("fresh request must not be reminded, got %v", messenger.sent)
	}
}

func TestClaimSkipsRowAdvancedElsewhere(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-25*time.Hour))

	// An inbound reply lands between the sweep loading the row and
	// claiming it.
	if err := db.Model(&models.ReviewRequest{}).Where("id = ?", request.ID).
		Update("status", models.ReviewCompleted).Error; err != nil {
		t.Fatalf("failed to advance request out-of-band: %v", err)
	}

	stale := *request // still holds sent
	if reviews.claim(&stale, models.ReviewReminded1, "reminder1_at", time.Now()) {
		t.Error("claim should report false for a row another actor advanced")
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewCompleted {
		t.Errorf("status = %s, the reply's completed must win", updated.Status)
	}
	if updated.Reminder1At != nil {
		t.Error("reminder1_at must not be stamped on a failed claim")
	}
	if len(messenger.sent) != 0 {
		t.Errorf("failed claim must not send, got %v", messenger.sent)
	}
}

func TestReplyStateAdvancesWhenSendFails(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)
	request := openRequest(t, db, tenant, models.ReviewSent, time.Now().Add(-2*time.Hour))
	messenger.err = errors.New("twilio unavailable")

	if err := reviews.HandleInboundReply(tenant, request.CustomerPhone, "5"); err != nil {
		t.Fatalf("send failure must not surface to the webhook: %v", err)
	}

	updated := reload(t, db, request.ID)
	if updated.Status != models.ReviewCompleted {
		t.Errorf("status = %s, want completed despite the failed send", updated.Status)
	}
	if updated.Rating == nil || *updated.Rating != 5 {
		t.Error("rating 5 not persisted despite the failed send")
	}
	if len(messenger.sent) != 0 {
		t.Errorf("failing messenger recorded sends: %v", messenger.sent)
	}
}

func TestCreateRequestRefusesSecondActiveConversation(t *testing.T) {
	db, messenger, reviews, tenant := reviewFixture(t)

	customer := &models.Customer{
		TenantID:  tenant.ID,
		FirstName: "Pat",
		Phone:     "+15551234567",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	appointment := &models.Appointment{
		TenantID:       tenant.ID,
		CustomerID:     customer.ID,
		ServiceID:      uuid.New(),
		TechnicianName: "Dana",
		ScheduledStart: time.Now().Add(-3 * time.Hour),
		ScheduledEnd:   time.Now().Add(-2 * time.Hour),
		Status:         models.AppointmentCompleted,
	}
	if err := db.Create(appointment).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}

	first, err := reviews.CreateRequest(tenant, appointment, customer)
	if err != nil {
		t.Fatalf("first CreateRequest: %v", err)
	}
	if first.Status != models.ReviewSent {
		t.Errorf("status = %s, want sent", first.Status)
	}
	if len(messenger.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(messenger.sent))
	}

	if _, err := reviews.CreateRequest(tenant, appointment, customer); err == nil {
		t.Fatal("second CreateRequest should be refused while one is active")
	}
}
