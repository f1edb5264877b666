package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/services/calendar"
	"slotbook/utils"

	"github.com/google/uuid"
)

// fakeBookingRepo is an in-memory BookingRepository. CreateIfNoConflict holds
// the mutex across check and insert, mirroring the store's atomicity contract.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (f *fakeBookingRepo) ListForUser(userID string, window *models.Interval) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if window != nil && (b.Start.Before(window.Start) || b.End.After(window.End)) {
			continue
		}
		out = append(out, b)
	}
	sortByStart(out)
	return out, nil
}

func (f *fakeBookingRepo) GetByID(id, userID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id && b.UserID == userID {
			found := b
			return &found, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) FindOverlapping(userID string, interval models.Interval) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findOverlappingLocked(userID, interval), nil
}

func (f *fakeBookingRepo) findOverlappingLocked(userID string, interval models.Interval) []models.Booking {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.Interval().Overlaps(interval) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out
}

func (f *fakeBookingRepo) CreateIfNoConflict(ctx context.Context, userID, name string, interval models.Interval) (*models.Booking, *models.ConflictResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing := f.findOverlappingLocked(userID, interval); len(existing) > 0 {
		items := make([]models.ConflictItem, 0, len(existing))
		for _, b := range existing {
			items = append(items, models.ConflictItem{ID: b.ID, Summary: b.Name, Start: b.Start, End: b.End})
		}
		return nil, &models.ConflictResult{HasConflict: true, Items: items}, nil
	}

	booking := models.Booking{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Start:     interval.Start,
		End:       interval.End,
		CreatedAt: time.Now().UTC(),
	}
	f.bookings = append(f.bookings, booking)
	return &booking, nil, nil
}

func (f *fakeBookingRepo) Delete(id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, b := range f.bookings {
		if b.ID == id && b.UserID == userID {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func sortByStart(bookings []models.Booking) {
	for i := 1; i < len(bookings); i++ {
		for j := i; j > 0 && bookings[j].Start.Before(bookings[j-1].Start); j-- {
			bookings[j], bookings[j-1] = bookings[j-1], bookings[j]
		}
	}
}

// fakeBusySource scripts the external calendar. degraded simulates a gateway
// that is failing internally and degrading to empty results.
type fakeBusySource struct {
	events   []models.CalendarEvent
	degraded bool
}

func (f *fakeBusySource) FetchBusyIntervals(ctx context.Context, userID string, window models.Interval) ([]models.CalendarEvent, error) {
	if f.degraded {
		return []models.CalendarEvent{}, nil
	}
	var out []models.CalendarEvent
	for _, ev := range f.events {
		if !ev.Timed() || ev.Interval().Overlaps(window) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeBusySource) CheckOverlap(ctx context.Context, userID string, interval models.Interval) (models.ConflictResult, error) {
	events, _ := f.FetchBusyIntervals(ctx, userID, interval)
	return calendar.FilterConflicts(events, interval), nil
}

func newTestService(busy *fakeBusySource) (*DefaultBookingService, *fakeBookingRepo) {
	repo := &fakeBookingRepo{}
	if busy == nil {
		busy = &fakeBusySource{}
	}
	// Midnight on the test day: all same-day slots are in the future.
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &DefaultBookingService{
		Repo:  repo,
		Busy:  busy,
		Clock: utils.NewFixedClock(now),
	}, repo
}

func bookingErr(t *testing.T, err error) *BookingError {
	t.Helper()
	var bErr *BookingError
	if !errors.As(err, &bErr) {
		t.Fatalf("expected *BookingError, got %v", err)
	}
	return bErr
}

func TestProposeBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("admits a valid booking", func(t *testing.T) {
		svc, _ := newTestService(nil)

		created, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected an identifier to be assigned")
		}
		if created.Name != "Standup" || created.UserID != "u1" {
			t.Fatalf("unexpected booking %+v", created)
		}
	})

	t.Run("rejects overlap with existing booking as system conflict", func(t *testing.T) {
		svc, _ := newTestService(nil)

		first, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
		if err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		_, err = svc.ProposeBooking(ctx, "u1", "Overlap", "2024-01-15T09:15:00Z", "2024-01-15T09:45:00Z")
		bErr := bookingErr(t, err)
		if bErr.Code != CodeSystemConflict {
			t.Fatalf("expected %s, got %s", CodeSystemConflict, bErr.Code)
		}
		if bErr.Conflict == nil || bErr.Conflict.ID != first.ID {
			t.Fatalf("expected conflict to reference %s, got %+v", first.ID, bErr.Conflict)
		}
	})

	t.Run("admits back-to-back booking touching an existing one", func(t *testing.T) {
		svc, _ := newTestService(nil)

		if _, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}
		if _, err := svc.ProposeBooking(ctx, "u1", "Back-to-back", "2024-01-15T09:30:00Z", "2024-01-15T10:00:00Z"); err != nil {
			t.Fatalf("touching intervals must not conflict, got %v", err)
		}
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.ProposeBooking(ctx, "u1", "Backwards", "2024-01-15T09:00:00Z", "2024-01-15T08:30:00Z")
		if bookingErr(t, err).Code != CodeInvalidInterval {
			t.Fatalf("expected %s, got %v", CodeInvalidInterval, err)
		}
	})

	t.Run("rejects unparseable timestamps", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.ProposeBooking(ctx, "u1", "Garbled", "not-a-time", "2024-01-15T09:30:00Z")
		if bookingErr(t, err).Code != CodeInvalidInterval {
			t.Fatalf("expected %s, got %v", CodeInvalidInterval, err)
		}
	})

	t.Run("rejects past start", func(t *testing.T) {
		svc, _ := newTestService(nil)

		// Clock is fixed at 2024-01-15T00:00Z; the prior day is in the past.
		_, err := svc.ProposeBooking(ctx, "u1", "Yesterday", "2024-01-14T23:00:00Z", "2024-01-14T23:30:00Z")
		if bookingErr(t, err).Code != CodePastInterval {
			t.Fatalf("expected %s, got %v", CodePastInterval, err)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.ProposeBooking(ctx, "u1", "  ", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
		if bookingErr(t, err).Code != CodeInvalidInput {
			t.Fatalf("expected %s, got %v", CodeInvalidInput, err)
		}
	})

	t.Run("rejects overlap with external event as external conflict", func(t *testing.T) {
		busy := &fakeBusySource{events: []models.CalendarEvent{{
			ID:      "ev1",
			Summary: "Dentist",
			Start:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			End:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		}}}
		svc, _ := newTestService(busy)

		_, err := svc.ProposeBooking(ctx, "u1", "Clash", "2024-01-15T09:30:00Z", "2024-01-15T10:30:00Z")
		bErr := bookingErr(t, err)
		if bErr.Code != CodeExternalConflict {
			t.Fatalf("expected %s, got %s", CodeExternalConflict, bErr.Code)
		}
		if bErr.Conflict == nil || bErr.Conflict.Summary != "Dentist" {
			t.Fatalf("expected conflict to carry the event summary, got %+v", bErr.Conflict)
		}
	})

	t.Run("ignores all-day external events", func(t *testing.T) {
		busy := &fakeBusySource{events: []models.CalendarEvent{{
			ID:      "ev1",
			Summary: "Public Holiday",
			// All-day entry: no timed instants.
		}}}
		svc, _ := newTestService(busy)

		if _, err := svc.ProposeBooking(ctx, "u1", "Meeting", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("all-day events must not conflict, got %v", err)
		}
	})

	t.Run("degraded gateway never blocks a conflict-free booking", func(t *testing.T) {
		busy := &fakeBusySource{degraded: true}
		svc, _ := newTestService(busy)

		if _, err := svc.ProposeBooking(ctx, "u1", "Meeting", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("degraded external source must not fail bookings, got %v", err)
		}
	})

	t.Run("separate users may hold overlapping slots", func(t *testing.T) {
		svc, _ := newTestService(nil)

		if _, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}
		if _, err := svc.ProposeBooking(ctx, "u2", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("cross-user timelines are independent, got %v", err)
		}
	})
}

func TestProposeBookingConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(nil)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ProposeBooking(ctx, "u1", "Race", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if bookingErr(t, err).Code != CodeSystemConflict {
			t.Fatalf("losers must see a system conflict, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("exactly one concurrent admission may succeed, got %d", succeeded)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestRemoveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an owned booking", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
		if err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		if err := svc.RemoveBooking(ctx, created.ID, "u1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("repeated delete reports not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
		if err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		if err := svc.RemoveBooking(ctx, created.ID, "u1"); err != nil {
			t.Fatalf("first delete failed: %v", err)
		}
		err = svc.RemoveBooking(ctx, created.ID, "u1")
		if bookingErr(t, err).Code != CodeNotFound {
			t.Fatalf("expected %s, got %v", CodeNotFound, err)
		}
	})

	t.Run("hides other users' bookings behind not found", func(t *testing.T) {
		svc, _ := newTestService(nil)
		created, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
		if err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		err = svc.RemoveBooking(ctx, created.ID, "u2")
		if bookingErr(t, err).Code != CodeNotFound {
			t.Fatalf("ownership mismatch must look like absence, got %v", err)
		}
	})
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	created, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z")
	if err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	got, err := svc.GetBooking(ctx, created.ID, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected booking %s, got %s", created.ID, got.ID)
	}

	_, err = svc.GetBooking(ctx, created.ID, "u2")
	if bookingErr(t, err).Code != CodeNotFound {
		t.Fatalf("ownership mismatch must look like absence, got %v", err)
	}
}
