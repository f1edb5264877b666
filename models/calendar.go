package models

import "time"

// CalendarEvent is a read-only projection of an external calendar entry.
// It is fetched per request and never persisted.
type CalendarEvent struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	// Start/End are zero for all-day entries, which carry a date but no
	// timed instants and are excluded from overlap consideration.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Timed reports whether the event carries explicit start and end instants.
func (e CalendarEvent) Timed() bool {
	return !e.Start.IsZero() && !e.End.IsZero()
}

// Interval returns the event's time range as an interval value.
func (e CalendarEvent) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// CalendarCredential holds a user's external calendar tokens. It is owned by
// the auth collaborator; the calendar service only reads it and writes back
// refreshed access tokens.
type CalendarCredential struct {
	UserID       string    `bson:"user_id" json:"userId"`
	AccessToken  string    `bson:"google_access_token" json:"-"`
	RefreshToken string    `bson:"google_refresh_token" json:"-"`
	ExpiresAt    time.Time `bson:"google_token_expires_at" json:"-"`
	Connected    bool      `bson:"google_calendar_connected" json:"connected"`
}

// Expired reports whether the access token has passed its expiry instant.
func (c CalendarCredential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
