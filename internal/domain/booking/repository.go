package booking

import (
	"context"

	"github.com/thanFreecss/celebrity-salon/internal/models"
)

type ListFilter struct {
	Status *Status
	Date   string
	Email  string
	Limit  int
	Offset int
}

type Repository interface {
	// -------- Slot --------
	IsSlotFree(
		ctx context.Context,
		date string,
		slot string,
		excludeID uint,
	) (bool, error)

	ListActiveSlots(
		ctx context.Context,
		date string,
	) ([]string, error)

	// -------- Booking (create) --------
	// Create assigns BookingID and inserts b in one transaction.
	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetByBookingID(
		ctx context.Context,
		bookingID int64,
	) (*models.Booking, error)

	// Save persists b only if its stored status still equals expected.
	Save(
		ctx context.Context,
		b *models.Booking,
		expected Status,
	) error

	Delete(
		ctx context.Context,
		bookingID int64,
	) error

	// -------- Listing --------
	ListByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)

	ListByEmail(
		ctx context.Context,
		email string,
	) ([]models.Booking, error)

	List(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Booking, int64, error)

	CountByStatus(
		ctx context.Context,
	) (map[Status]int64, error)

	// -------- Employee --------
	FindActiveEmployee(
		ctx context.Context,
		ref string,
	) (*models.Employee, error)
}
