package models

import "time"

// User represents an account that owns bookings and, optionally, a linked
// external calendar. The calendar credential fields live on the same document
// (see CalendarCredential) and are managed through the credential repository.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`

	CalendarConnected bool `bson:"google_calendar_connected" json:"isCalendarConnected"`
}
