package booking

import (
	"context"
	"testing"
	"time"

	"slotbook/models"
)

func TestDayView(t *testing.T) {
	ctx := context.Background()

	t.Run("returns bookings ordered by start and empty external busy", func(t *testing.T) {
		svc, _ := newTestService(nil)

		// Insert out of order; the view must come back sorted.
		if _, err := svc.ProposeBooking(ctx, "u1", "Back-to-back", "2024-01-15T09:30:00Z", "2024-01-15T10:00:00Z"); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}
		if _, err := svc.ProposeBooking(ctx, "u1", "Standup", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		view, err := svc.DayView(ctx, "u1", "2024-01-15")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if view.Date != "2024-01-15" {
			t.Fatalf("expected date echoed back, got %s", view.Date)
		}
		if len(view.Bookings) != 2 {
			t.Fatalf("expected 2 bookings, got %d", len(view.Bookings))
		}
		if view.Bookings[0].Name != "Standup" || view.Bookings[1].Name != "Back-to-back" {
			t.Fatalf("bookings out of order: %s, %s", view.Bookings[0].Name, view.Bookings[1].Name)
		}
		if len(view.ExternalBusy) != 0 {
			t.Fatalf("expected empty external sequence, got %d", len(view.ExternalBusy))
		}
	})

	t.Run("excludes bookings outside the day window", func(t *testing.T) {
		svc, _ := newTestService(nil)

		if _, err := svc.ProposeBooking(ctx, "u1", "Today", "2024-01-15T09:00:00Z", "2024-01-15T09:30:00Z"); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}
		if _, err := svc.ProposeBooking(ctx, "u1", "Tomorrow", "2024-01-16T09:00:00Z", "2024-01-16T09:30:00Z"); err != nil {
			t.Fatalf("setup booking failed: %v", err)
		}

		view, err := svc.DayView(ctx, "u1", "2024-01-15")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(view.Bookings) != 1 || view.Bookings[0].Name != "Today" {
			t.Fatalf("expected only same-day bookings, got %+v", view.Bookings)
		}
	})

	t.Run("includes external events for the day", func(t *testing.T) {
		busy := &fakeBusySource{events: []models.CalendarEvent{{
			ID:      "ev1",
			Summary: "Dentist",
			Start:   time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			End:     time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC),
		}}}
		svc, _ := newTestService(busy)

		view, err := svc.DayView(ctx, "u1", "2024-01-15")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(view.ExternalBusy) != 1 || view.ExternalBusy[0].Summary != "Dentist" {
			t.Fatalf("expected the external event, got %+v", view.ExternalBusy)
		}
	})

	t.Run("never fails when the gateway degrades", func(t *testing.T) {
		svc, _ := newTestService(&fakeBusySource{degraded: true})

		view, err := svc.DayView(ctx, "u1", "2024-01-15")
		if err != nil {
			t.Fatalf("degraded external source must not fail the view, got %v", err)
		}
		if len(view.ExternalBusy) != 0 {
			t.Fatalf("expected empty external sequence, got %d", len(view.ExternalBusy))
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		svc, _ := newTestService(nil)

		_, err := svc.DayView(ctx, "u1", "15-01-2024")
		if bookingErr(t, err).Code != CodeInvalidInput {
			t.Fatalf("expected %s, got %v", CodeInvalidInput, err)
		}
	})
}
