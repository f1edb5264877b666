package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/utils"

	"go.uber.org/zap"
)

// ProposeBooking runs the admission workflow:
//
//  1. validate name and interval, reject past slots;
//  2. advisory internal overlap check (cheap, authoritative source first);
//  3. external overlap check (expensive, best-effort);
//  4. atomic conditional insert — the only place the no-overlap invariant is
//     actually enforced. A concurrent request winning the race between steps
//     2 and 4 surfaces here as an ordinary system conflict.
func (svc *DefaultBookingService) ProposeBooking(ctx context.Context, userID, name, start, end string) (*models.Booking, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError(CodeInvalidInput, "booking name must not be empty")
	}

	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, NewValidationError(CodeInvalidInterval, "startTime must be a valid RFC 3339 timestamp")
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return nil, NewValidationError(CodeInvalidInterval, "endTime must be a valid RFC 3339 timestamp")
	}

	interval, err := models.NewInterval(startTime.UTC(), endTime.UTC())
	if err != nil {
		return nil, NewValidationError(CodeInvalidInterval, "end time must be after start time")
	}
	if interval.Start.Before(svc.Clock.Now()) {
		return nil, NewValidationError(CodePastInterval, "cannot book time slots in the past")
	}

	// Advisory pre-check: skip the external round trip when a local conflict
	// already exists.
	existing, err := svc.Repo.FindOverlapping(userID, interval)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		first := existing[0]
		return nil, NewSystemConflictError(models.ConflictItem{
			ID:      first.ID,
			Summary: first.Name,
			Start:   first.Start,
			End:     first.End,
		})
	}

	external, err := svc.Busy.CheckOverlap(ctx, userID, interval)
	if err != nil {
		return nil, err
	}
	if external.HasConflict {
		return nil, NewExternalConflictError(external.First())
	}

	created, conflict, err := svc.Repo.CreateIfNoConflict(ctx, userID, name, interval)
	if err != nil {
		return nil, err
	}
	if conflict != nil && conflict.HasConflict {
		// Lost the race to a concurrent admission; indistinguishable from a
		// pre-existing conflict by design.
		return nil, NewSystemConflictError(conflict.First())
	}

	logger.Info("booking admitted",
		zap.String("bookingID", created.ID),
		zap.String("userID", userID),
		zap.Time("start", created.Start),
		zap.Time("end", created.End),
	)
	return created, nil
}

// RemoveBooking deletes a booking owned by the user. An absent booking and a
// booking owned by someone else report the same not-found outcome.
func (svc *DefaultBookingService) RemoveBooking(ctx context.Context, id, userID string) error {
	if _, err := svc.Repo.GetByID(id, userID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return NewNotFoundError()
		}
		return err
	}
	if err := svc.Repo.Delete(id, userID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return NewNotFoundError()
		}
		return err
	}
	return nil
}

// ListBookings returns all of the user's bookings sorted by start ascending.
func (svc *DefaultBookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return svc.Repo.ListForUser(userID, nil)
}

// GetBooking returns one booking owned by the user.
func (svc *DefaultBookingService) GetBooking(ctx context.Context, id, userID string) (*models.Booking, error) {
	b, err := svc.Repo.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, NewNotFoundError()
		}
		return nil, err
	}
	return b, nil
}
