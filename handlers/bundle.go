package handlers

import (
	userRepo "slotbook/database/repository/user"
)

// HandlerBundle collects the handlers and repositories the routes need.
type HandlerBundle struct {
	UserRepo        userRepo.UserRepository
	BookingHandler  *BookingHandler
	CalendarHandler *CalendarHandler
}
