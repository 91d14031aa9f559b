package main

import (
	"fmt"
	"log"
	"os"

	"petglow-backend/config"
	"petglow-backend/models"
	"petglow-backend/routes"
	"petglow-backend/services"

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
		&models.User{},
		&models.Customer{},
		&models.Pet{},
		&models.Staff{},
		&models.Service{},
		&models.Reservation{},
		&models.ReservationItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.CashSession{},
		&models.CashMovement{},
		&models.DocumentSequence{},
		&models.ReminderLog{},
	)

	// AutoMigrate cannot express a partial unique index; this one backs the
	// single-open-session-per-operator-per-date invariant.
	config.DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_session_per_operator
		ON cash_sessions (operator_id, session_date) WHERE status = 'open'`)
}

func main() {

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

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
