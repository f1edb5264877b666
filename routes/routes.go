package routes

import (
	"net/http"

	"slotbook/handlers"
	"slotbook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Slotbook"})
	})
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", handlers.RegisterUserHandler)
		api.POST("/login", handlers.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", handlers.GetProfileHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("", hb.BookingHandler.ListBookings)
		api.GET("/slots", hb.BookingHandler.GetDaySlots)
		api.GET("/:id", hb.BookingHandler.GetBooking)
		api.POST("", hb.BookingHandler.CreateBooking)
		api.DELETE("/:id", hb.BookingHandler.DeleteBooking)
	}
}

// RegisterCalendarRoutes registers the external calendar connection endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		// The provider redirects the browser here; no auth header is present.
		api.GET("/callback", hb.CalendarHandler.Callback)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		protected.GET("/connect", hb.CalendarHandler.Connect)
		protected.POST("/disconnect", hb.CalendarHandler.Disconnect)
	}
}
