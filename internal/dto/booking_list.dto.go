package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

type BookingListDTO struct {
	ID               uint            `json:"id"`
	BookingID        int64           `json:"bookingId"`
	FullName         string          `json:"fullName"`
	Email            string          `json:"email"`
	Service          string          `json:"service"`
	ServiceName      string          `json:"serviceName"`
	SelectedEmployee string          `json:"selectedEmployee"`
	AppointmentDate  string          `json:"appointmentDate"`
	SelectedTime     string          `json:"selectedTime"`
	Status           string          `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	CanCancel        bool            `json:"canCancel"`
	CreatedAt        time.Time       `json:"createdAt"`
}

func BookingList(items []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(items))
	for _, b := range items {
		name := b.Service
		if svc, ok := booking.LookupService(b.Service); ok {
			name = svc.Name
		}
		out = append(out, BookingListDTO{
			ID:               b.ID,
			BookingID:        b.BookingID,
			FullName:         b.FullName,
			Email:            b.Email,
			Service:          b.Service,
			ServiceName:      name,
			SelectedEmployee: b.EmployeeName,
			AppointmentDate:  b.AppointmentDate,
			SelectedTime:     b.Slot,
			Status:           b.Status,
			TotalAmount:      b.TotalAmount,
			CanCancel:        booking.Status(b.Status).IsActive(),
			CreatedAt:        b.CreatedAt,
		})
	}
	return out
}
