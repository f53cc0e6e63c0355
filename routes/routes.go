package routes

import (
	"fieldpro-backend/config"
	"fieldpro-backend/controllers"
	"fieldpro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// The booking widget and the SMS webhook are embedded on arbitrary
	// tenant sites, so CORS is wide open. The cors middleware also
	// short-circuits OPTIONS pre-flights.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	r.Use(config.PerformanceLogger())

	// Public booking widget, keyed by tenant slug
	public := r.Group("/public/:slug")
	{
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/slots", controllers.GetPublicSlots)
		public.POST("/bookings", controllers.CreateBooking)
	}

	// Provider webhooks
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/sms", controllers.HandleInboundSMS)
		webhooks.POST("/reviews/sweep", controllers.RunReviewSweep)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.POST("/:id/action", controllers.ApplyAppointmentAction)
			appointments.POST("/:id/recurrences", controllers.GenerateAppointmentRecurrences)
			appointments.POST("/:id/review-request", controllers.TriggerReviewRequest)
			appointments.POST("/:id/invoice", controllers.CreateAppointmentInvoice)
			appointments.POST("/:id/checkout", controllers.CreateAppointmentCheckout)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.GET("/:id/document", controllers.GetInvoiceDocument)
		}

		api.GET("/reviews", controllers.GetReviewRequests)
		api.GET("/place", controllers.GetPlace)
		api.GET("/dashboard", controllers.GetDashboardOverview)

		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
		}
	}

	return r
}
