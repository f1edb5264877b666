package models

import "time"

// Booking represents a confirmed reservation record.
type Booking struct {
	ID        string    `bson:"id" json:"id"`                // Unique booking identifier (UUID)
	UserID    string    `bson:"user_id" json:"userId"`       // User who owns the booking
	Name      string    `bson:"name" json:"name"`            // Display name (e.g., "Team Meeting")
	Start     time.Time `bson:"start" json:"startTime"`      // Booking start instant
	End       time.Time `bson:"end" json:"endTime"`          // Booking end instant (exclusive)
	CreatedAt time.Time `bson:"created_at" json:"createdAt"` // Timestamp when booking was created
}

// Interval returns the booking's time range as an interval value.
func (b Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}
