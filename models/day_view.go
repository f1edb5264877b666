package models

// DayView is the merged busy view for a single calendar date: the user's own
// bookings plus external busy events, each sorted ascending by start. Free-slot
// derivation is left to the presentation layer.
type DayView struct {
	Date         string          `json:"date"`
	Bookings     []Booking       `json:"bookings"`
	ExternalBusy []CalendarEvent `json:"externalBusy"`
}
