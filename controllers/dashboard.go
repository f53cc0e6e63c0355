package controllers

import (
	"net/http"
	"time"

	"fieldpro-backend/config"
	"fieldpro-backend/models"
	"fieldpro-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TodaysAppointments int64                `json:"todaysAppointments"`
	OpenReviewRequests int64                `json:"openReviewRequests"`
	MonthCompletedJobs int64                `json:"monthCompletedJobs"`
	MonthRevenue       float64              `json:"monthRevenue"`
	RecentBookings     []models.Appointment `json:"recentBookings"`
}

// GetDashboardOverview returns the CRM landing-page counts.
func GetDashboardOverview(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var overview DashboardOverview

	config.DB.Model(&models.Appointment{}).
		Where("tenant_id = ? AND scheduled_start >= ? AND scheduled_start < ? AND status <> ?",
			tenantUUID, dayStart, dayStart.AddDate(0, 0, 1), models.AppointmentCancelled).
		Count(&overview.TodaysAppointments)

	config.DB.Model(&models.ReviewRequest{}).
		Where("tenant_id = ? AND status IN ?", tenantUUID, models.OpenReviewStatuses).
		Count(&overview.OpenReviewRequests)

	config.DB.Model(&models.Appointment{}).
		Where("tenant_id = ? AND status = ? AND actual_end >= ?",
			tenantUUID, models.AppointmentCompleted, firstOfMonth).
		Count(&overview.MonthCompletedJobs)

	config.DB.Model(&models.Invoice{}).
		Where("tenant_id = ? AND issue_date >= ?", tenantUUID, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").
		Scan(&overview.MonthRevenue)

	config.DB.Preload("Customer").Preload("Service").
		Where("tenant_id = ?", tenantUUID).
		Order("created_at DESC").
		Limit(5).
		Find(&overview.RecentBookings)

	c.JSON(http.StatusOK, overview)
}
