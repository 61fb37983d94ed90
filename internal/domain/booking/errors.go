package booking

import "github.com/thanFreecss/celebrity-salon/internal/httperr"

var (
	ErrSlotTaken       = httperr.Conflict("slot_already_booked", "Slot already booked.")
	ErrBookingNotFound = httperr.NotFoundErr("booking_not_found", "Booking not found.")
	ErrNotOwner        = httperr.Forbidden("not_booking_owner", "You can only manage your own bookings.")
	ErrConcurrentEdit  = httperr.Conflict("booking_modified", "Booking was modified concurrently, reload and retry.")
	ErrEmployeeOnLeave = httperr.Conflict("employee_on_leave", "Selected employee is on leave that day.")
)
