package notify

import (
	"fmt"
	"strings"

	"github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

const (
	KindBookingConfirmed = "booking_confirmed"
	KindBookingCancelled = "booking_cancelled"
)

type Message struct {
	Kind      string `json:"kind"`
	BookingID int64  `json:"bookingId"`
	To        string `json:"to"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func serviceName(id string) string {
	if svc, ok := booking.LookupService(id); ok {
		return svc.Name
	}
	return id
}

func BookingConfirmed(b *models.Booking) Message {
	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", b.FullName)
	fmt.Fprintf(&body, "Your %s appointment on %s at %s is confirmed.\n",
		serviceName(b.Service), b.AppointmentDate, b.Slot)
	if b.EmployeeName != "" {
		fmt.Fprintf(&body, "You will be attended by %s.\n", b.EmployeeName)
	}
	fmt.Fprintf(&body, "Booking reference: #%d\nTotal: Rs. %s\n", b.BookingID, b.TotalAmount.StringFixed(2))

	return Message{
		Kind:      KindBookingConfirmed,
		BookingID: b.BookingID,
		To:        b.Email,
		Name:      b.FullName,
		Subject:   fmt.Sprintf("Booking #%d confirmed", b.BookingID),
		Body:      body.String(),
	}
}

func BookingCancelled(b *models.Booking) Message {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour %s appointment on %s at %s (booking #%d) has been cancelled.\n",
		b.FullName, serviceName(b.Service), b.AppointmentDate, b.Slot, b.BookingID,
	)

	return Message{
		Kind:      KindBookingCancelled,
		BookingID: b.BookingID,
		To:        b.Email,
		Name:      b.FullName,
		Subject:   fmt.Sprintf("Booking #%d cancelled", b.BookingID),
		Body:      body,
	}
}
