package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is one appointment request. The (AppointmentDate, Slot) pair is
// unique among pending and confirmed rows; see db.ensureIndexes.
type Booking struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	BookingID int64 `gorm:"uniqueIndex;not null" json:"bookingId"`

	CustomerID *uint `gorm:"index" json:"customerId"`

	FullName     string `gorm:"size:100;not null" json:"fullName"`
	MobileNumber string `gorm:"size:11;not null" json:"mobileNumber"`
	Email        string `gorm:"size:100;index;not null" json:"email"`

	Service string `gorm:"size:40;not null" json:"service"`

	EmployeeID   *uint  `json:"employeeId"`
	EmployeeName string `gorm:"size:100" json:"selectedEmployee"`

	AppointmentDate string `gorm:"size:10;not null;index" json:"appointmentDate"`
	Slot            string `gorm:"column:slot;size:5;not null" json:"selectedTime"`

	Status      string          `gorm:"size:20;not null;default:'pending'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	ClientNotes string          `gorm:"size:500" json:"clientNotes"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
