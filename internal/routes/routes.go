package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/voyageclub/voyageclub-golang/internal/handlers"
	"github.com/voyageclub/voyageclub-golang/internal/middleware"
	"github.com/voyageclub/voyageclub-golang/internal/models"
)

// CORSMiddleware tells the browser it is safe for the local React
// frontend to send data to us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Strictly allow ONLY the local frontend
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")

		// 2. Allow standard security credentials
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 3. Allow the headers we actually use (specifically "Authorization" for JWT tokens)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		// 4. Allow the HTTP methods we use in our API
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 5. Handle the "Preflight" OPTIONS request
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RegisterValidations installs our custom rules on gin's binding
// engine. Called once before the router handles traffic.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// futuredate: parseable YYYY-MM-DD that is today or later.
	// Travel dates in the past are a validation error, not a booking.
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(handlers.TravelDateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		// Compare calendar dates in the server's own timezone, so a
		// same-day booking is accepted everywhere.
		today, _ := time.Parse(handlers.TravelDateLayout, time.Now().Format(handlers.TravelDateLayout))
		return !d.Before(today)
	})

	// membertier: one of the three known tiers.
	_ = v.RegisterValidation("membertier", func(fl validator.FieldLevel) bool {
		return models.ValidTier(fl.Field().String())
	})
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	RegisterValidations()

	router := gin.Default()

	// CORS must be the very first thing the router uses
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Public Catalog Routes ---
		v1.GET("/hotel-deals", h.GetHotelDeals)
		v1.GET("/hotel-deals/:id", h.GetHotelDeal)
		v1.GET("/tour-packages", h.GetTourPackages)
		v1.GET("/tour-packages/:id", h.GetTourPackage)

		// --- Protected Routes (Active Members Only) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.DB))
		{
			auth.GET("/profile/me", h.GetMe)

			// --- Booking Routes ---
			auth.POST("/bookings", h.CreateBooking)
			auth.GET("/bookings", h.GetMyBookings)
			auth.GET("/bookings/:id", h.GetBookingDetails)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.DB))
		admin.Use(middleware.AdminMiddleware())
		{
			// Order lifecycle
			admin.GET("/orders", h.GetAllOrders)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			// Catalog management
			admin.POST("/hotel-deals", h.CreateHotelDeal)
			admin.PUT("/hotel-deals/:id", h.UpdateHotelDeal)
			admin.DELETE("/hotel-deals/:id", h.DeleteHotelDeal)
			admin.POST("/tour-packages", h.CreateTourPackage)
			admin.PUT("/tour-packages/:id", h.UpdateTourPackage)
			admin.DELETE("/tour-packages/:id", h.DeleteTourPackage)

			// Member management
			admin.GET("/users", h.GetAllUsers)
			admin.PATCH("/users/:id/status", h.UpdateUserStatus)
			admin.PATCH("/users/:id/tier", h.UpdateUserTier)
			admin.PATCH("/users/:id/points", h.AdjustUserPoints)

			// Back-office extras
			admin.GET("/dashboard-stats", h.GetAdminStats)
			admin.GET("/notifications", h.GetMyNotifications)
			admin.PATCH("/notifications/:id/read", h.MarkNotificationAsRead)
		}
	}

	return router
}
