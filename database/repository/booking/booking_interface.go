package bookingRepo

import (
	"context"
	"errors"

	"slotbook/models"
)

// ErrBookingNotFound is returned when a booking is absent or owned by a
// different user. Ownership mismatches are deliberately indistinguishable
// from absence.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository defines data access for a user's reservations.
type BookingRepository interface {
	// ListForUser retrieves a user's bookings sorted by start ascending.
	// A non-nil window restricts the result to bookings fully contained in it.
	ListForUser(userID string, window *models.Interval) ([]models.Booking, error)
	// GetByID retrieves a booking by ID, scoped to its owner.
	GetByID(id, userID string) (*models.Booking, error)
	// FindOverlapping returns the user's bookings whose interval overlaps the given one.
	FindOverlapping(userID string, interval models.Interval) ([]models.Booking, error)
	// CreateIfNoConflict atomically re-checks for overlap and inserts a new
	// booking. It is the single write entry point: when a conflicting booking
	// exists (including one admitted by a concurrent request), the conflict is
	// returned and nothing is mutated.
	CreateIfNoConflict(ctx context.Context, userID, name string, interval models.Interval) (*models.Booking, *models.ConflictResult, error)
	// Delete removes a booking by ID under the same ownership-hiding rule as GetByID.
	Delete(id, userID string) error
}
