package handlers

import (
	"errors"
	"net/http"

	"slotbook/models"
	"slotbook/services/booking"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusForCode maps the closed set of booking error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case booking.CodeSystemConflict, booking.CodeExternalConflict:
		return http.StatusConflict
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeInvalidInput, booking.CodeInvalidInterval, booking.CodePastInterval:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondBookingError writes a tagged booking failure, or a generic 500 for
// unexpected errors.
func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var bErr *booking.BookingError
	if errors.As(err, &bErr) {
		body := gin.H{
			"message": bErr.Message,
			"type":    bErr.Code,
		}
		if bErr.Conflict != nil {
			body["conflict"] = bErr.Conflict
		}
		c.JSON(statusForCode(bErr.Code), body)
		return
	}
	h.Logger.Error("booking operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "booking operation failed")
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID := c.GetString("userID")

	var input struct {
		Name      string `json:"name" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
		EndTime   string `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Service.ProposeBooking(c.Request.Context(), userID, input.Name, input.StartTime, input.EndTime)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID := c.GetString("userID")

	bookings, err := h.Service.ListBookings(c.Request.Context(), userID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	b, err := h.Service.GetBooking(c.Request.Context(), id, userID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.Service.RemoveBooking(c.Request.Context(), id, userID); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully", "id": id})
}

// GetDaySlots handles GET /api/bookings/slots?date=YYYY-MM-DD.
func (h *BookingHandler) GetDaySlots(c *gin.Context) {
	userID := c.GetString("userID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	view, err := h.Service.DayView(c.Request.Context(), userID, date)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
