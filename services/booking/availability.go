package booking

import (
	"context"
	"time"

	"slotbook/models"
)

// dayViewZone is the fixed reference zone for day windows. Instants are
// absolute everywhere else; only the day boundary needs a zone.
var dayViewZone = time.UTC

// DayView merges the user's bookings and external busy events for one
// calendar date into a single ordered busy view. It never fails because the
// external source is unavailable: the gateway degrades to an empty sequence.
func (svc *DefaultBookingService) DayView(ctx context.Context, userID, date string) (*models.DayView, error) {
	day, err := time.ParseInLocation("2006-01-02", date, dayViewZone)
	if err != nil {
		return nil, NewValidationError(CodeInvalidInput, "date must be in YYYY-MM-DD format")
	}

	windowStart := day
	windowEnd := day.Add(24*time.Hour - time.Millisecond)
	window := models.Interval{Start: windowStart, End: windowEnd}

	bookings, err := svc.Repo.ListForUser(userID, &window)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	events, err := svc.Busy.FetchBusyIntervals(ctx, userID, window)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}

	return &models.DayView{
		Date:         date,
		Bookings:     bookings,
		ExternalBusy: events,
	}, nil
}
