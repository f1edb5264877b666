package booking

import (
	"fmt"

	"slotbook/models"
)

// Error codes form a closed set so the transport layer can map them
// exhaustively to response statuses.
const (
	CodeInvalidInput     = "invalidInput"
	CodeInvalidInterval  = "invalidInterval"
	CodePastInterval     = "pastInterval"
	CodeSystemConflict   = "systemConflict"
	CodeExternalConflict = "externalConflict"
	CodeNotFound         = "notFound"
)

// BookingError is a tagged booking failure. Conflict carries the first
// conflicting booking or external event when the code is a conflict kind.
type BookingError struct {
	Code     string
	Message  string
	Conflict *models.ConflictItem
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports malformed caller input.
func NewValidationError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// NewSystemConflictError reports overlap with an existing internal booking.
func NewSystemConflictError(item models.ConflictItem) error {
	return &BookingError{
		Code:     CodeSystemConflict,
		Message:  "time slot conflicts with an existing booking in the system",
		Conflict: &item,
	}
}

// NewExternalConflictError reports overlap with an external calendar event.
func NewExternalConflictError(item models.ConflictItem) error {
	return &BookingError{
		Code:     CodeExternalConflict,
		Message:  "time slot conflicts with an external calendar event",
		Conflict: &item,
	}
}

// NewNotFoundError reports an absent booking. Ownership mismatches use the
// same error so nothing leaks about other users' bookings.
func NewNotFoundError() error {
	return &BookingError{Code: CodeNotFound, Message: "booking not found"}
}
