package main

import (
	"fmt"
	"log"
	"os"

	"fieldpro-backend/config"
	"fieldpro-backend/controllers"
	"fieldpro-backend/models"
	"fieldpro-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Appointment{},
		&models.ReviewRequest{},
		&models.Invoice{},
		&models.CommunicationLog{},
		&models.AutomationLog{},
	)
}

func main() {
	controllers.InitServices()
	controllers.Reviews.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
