package booking

import (
	"context"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/services/calendar"
	"slotbook/utils"
)

// BookingService defines the booking conflict and availability engine.
type BookingService interface {
	// ProposeBooking validates a slot, checks both conflict sources and
	// atomically admits the reservation.
	ProposeBooking(ctx context.Context, userID, name string, start, end string) (*models.Booking, error)
	// RemoveBooking deletes a booking owned by the user.
	RemoveBooking(ctx context.Context, id, userID string) error
	// ListBookings returns all of the user's bookings sorted by start.
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
	// GetBooking returns one booking owned by the user.
	GetBooking(ctx context.Context, id, userID string) (*models.Booking, error)
	// DayView merges internal bookings and external busy events for a date.
	DayView(ctx context.Context, userID, date string) (*models.DayView, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo  bookingRepo.BookingRepository
	Busy  calendar.BusySource
	Clock utils.Clock
}
