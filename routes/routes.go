package routes

import (
	"os"
	"strings"

	"petglow-backend/config"
	"petglow-backend/controllers"
	"petglow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

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
		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.POST("", controllers.CreateReservation)
			reservations.GET("", controllers.GetReservations)
			reservations.GET("/:id", controllers.GetReservation)
			reservations.PUT("/:id", controllers.UpdateReservation)
			reservations.DELETE("/:id", controllers.DeleteReservation)
			reservations.POST("/:id/transition", controllers.TransitionReservation)
			reservations.POST("/:id/return-to-pool", controllers.ReturnReservationToPool)
		}

		api.GET("/availability", controllers.CheckAvailability)

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("/from-reservation", controllers.CreateInvoiceFromReservation)
			invoices.POST("", controllers.CreateDirectInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.POST("/:id/payments", controllers.RegisterPayment)
			invoices.POST("/:id/void", controllers.VoidInvoice)
		}

		// Cash drawer routes
		cash := api.Group("/cash-sessions")
		{
			cash.POST("", controllers.OpenCashSession)
			cash.GET("/current", controllers.GetCurrentCashSession)
			cash.POST("/:id/movements", controllers.PostCashAdjustment)
			cash.POST("/:id/close", controllers.CloseCashSession)
		}

		// Read-only catalog lookups
		api.GET("/services", controllers.GetServices)
		api.GET("/services/:id", controllers.GetService)
		api.GET("/staff", controllers.GetStaff)
		api.GET("/customers", controllers.GetCustomers)
		api.GET("/pets", controllers.GetPets)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
