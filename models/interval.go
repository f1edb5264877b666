package models

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an interval's end is not after its start.
var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a half-open time range [Start, End). Immutable value type.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// NewInterval builds an interval, rejecting degenerate or inverted ranges.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching intervals (a.End == b.Start) do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
