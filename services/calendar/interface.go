package calendar

import (
	"context"
	"errors"

	"slotbook/models"

	"golang.org/x/oauth2"
)

// ErrExternalAuth is returned when the provider rejects an OAuth code exchange.
var ErrExternalAuth = errors.New("external calendar authorization failed")

// BusySource is the capability the booking engine needs from an external
// calendar: busy intervals for a user in a window. Keeping it this narrow lets
// tests substitute scripted intervals or scripted failures.
type BusySource interface {
	// FetchBusyIntervals returns the user's external events intersecting the
	// window. A missing credential, a failed refresh or a transport failure
	// all degrade to an empty slice with a nil error; external unavailability
	// must never fail the caller.
	FetchBusyIntervals(ctx context.Context, userID string, window models.Interval) ([]models.CalendarEvent, error)
	// CheckOverlap reports timed external events overlapping the interval.
	CheckOverlap(ctx context.Context, userID string, interval models.Interval) (models.ConflictResult, error)
}

// CalendarService is the full gateway surface, including the credential
// lifecycle: Disconnected -> (consent + exchange) -> Connected -> Disconnected.
type CalendarService interface {
	BusySource
	// AuthorizationURL builds the provider consent URL with userID embedded
	// as opaque correlation state. No side effects.
	AuthorizationURL(userID string) string
	// ExchangeCode performs the one-shot code-for-tokens exchange.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	// Connect persists an exchanged token set for the user.
	Connect(ctx context.Context, userID string, token *oauth2.Token) error
	// Disconnect clears the user's credential.
	Disconnect(ctx context.Context, userID string) error
}
