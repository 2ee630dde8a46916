package routes

import (
	"net/http"
	"time"

	"slotify/handlers"
	"slotify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Booking   *handlers.BookingHandler
	Template  *handlers.TemplateHandler
	Slot      *handlers.SlotHandler
	Exception *handlers.ExceptionHandler
}

// SetupRoutes configures CORS and registers all endpoints.
func SetupRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	templates := r.Group("/api/templates")
	{
		templates.PUT("", hb.Template.SaveTemplate)
		templates.GET("/:owner", hb.Template.GetTemplate)
	}

	slots := r.Group("/api/slots")
	{
		slots.POST("/generate", hb.Slot.GenerateSlots)
		slots.GET("/:owner", hb.Slot.ListSlots)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", hb.Booking.CreateBooking)
		bookings.GET("", hb.Booking.ListBookings)
		bookings.GET("/:id", hb.Booking.GetBooking)
		bookings.GET("/:id/invoice", hb.Booking.GetBookingInvoice)
		bookings.POST("/:id/confirm", hb.Booking.ConfirmBooking)
		bookings.POST("/:id/reject", hb.Booking.RejectBooking)
		bookings.POST("/:id/cancel", hb.Booking.CancelBooking)
		bookings.POST("/:id/no-show", hb.Booking.MarkNoShow)
		bookings.POST("/:id/complete", hb.Booking.CompleteBooking)
	}

	exceptions := r.Group("/api/exceptions")
	{
		exceptions.POST("", hb.Exception.CreateException)
		exceptions.GET("/:owner", hb.Exception.ListExceptions)
		exceptions.DELETE("/:id", hb.Exception.DeleteException)
	}
}
