package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

type BookingGormRepository struct {
	db  *gorm.DB
	seq *SequenceGormAllocator
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{
		db:  db,
		seq: NewSequenceGormAllocator(db),
	}
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *BookingGormRepository) IsSlotFree(
	ctx context.Context,
	date string,
	slot string,
	excludeID uint,
) (bool, error) {
	free, err := slotFree(r.db.WithContext(ctx), date, slot, excludeID)
	return free, storageErr(err)
}

func slotFree(db *gorm.DB, date, slot string, excludeID uint) (bool, error) {
	q := db.
		Model(&models.Booking{}).
		Where(
			"appointment_date = ? AND slot = ? AND status IN ?",
			date, slot, domain.ActiveStatusStrings(),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *BookingGormRepository) ListActiveSlots(
	ctx context.Context,
	date string,
) ([]string, error) {

	var slots []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("appointment_date = ? AND status IN ?", date, domain.ActiveStatusStrings()).
		Pluck("slot", &slots).Error; err != nil {
		return nil, storageErr(err)
	}
	return slots, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		free, err := slotFree(tx, b.AppointmentDate, b.Slot, 0)
		if err != nil {
			return err
		}
		if !free {
			return domain.ErrSlotTaken
		}

		id, err := r.seq.WithTx(tx).NextBookingID(ctx)
		if err != nil {
			return err
		}
		b.BookingID = id

		return tx.Create(b).Error
	})

	if err != nil {
		b.BookingID = 0
		if IsUniqueViolation(err) {
			return domain.ErrSlotTaken
		}
		return storageErr(err)
	}
	return nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetByBookingID(
	ctx context.Context,
	bookingID int64,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, storageErr(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) Save(
	ctx context.Context,
	b *models.Booking,
	expected domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(expected)).
		Select("appointment_date", "slot", "status", "confirmed_at", "completed_at", "cancelled_at", "updated_at").
		Updates(b)

	if res.Error != nil {
		if IsUniqueViolation(res.Error) {
			return domain.ErrSlotTaken
		}
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentEdit
	}
	return nil
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	bookingID int64,
) error {

	res := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.Booking{})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("appointment_date DESC, slot DESC").
		Find(&out).Error; err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

func (r *BookingGormRepository) ListByEmail(
	ctx context.Context,
	email string,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Order("appointment_date DESC, slot DESC").
		Find(&out).Error; err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}

func (r *BookingGormRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Date != "" {
		q = q.Where("appointment_date = ?", filter.Date)
	}
	if filter.Email != "" {
		q = q.Where("LOWER(email) = ?", strings.ToLower(filter.Email))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storageErr(err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var out []models.Booking
	if err := q.
		Order("appointment_date DESC, slot ASC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&out).Error; err != nil {
		return nil, 0, storageErr(err)
	}
	return out, total, nil
}

func (r *BookingGormRepository) CountByStatus(
	ctx context.Context,
) (map[domain.Status]int64, error) {

	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, storageErr(err)
	}

	out := make(map[domain.Status]int64, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[domain.Status(row.Status)] = row.Total
	}
	return out, nil
}

// --------------------------------------------------
// Employee
// --------------------------------------------------

// FindActiveEmployee resolves ref as an employee id, employee code or
// (case-insensitive) name.
func (r *BookingGormRepository) FindActiveEmployee(
	ctx context.Context,
	ref string,
) (*models.Employee, error) {

	ref = strings.TrimSpace(ref)
	q := r.db.WithContext(ctx).Where("is_active = ?", true)

	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		q = q.Where("id = ?", id)
	} else {
		q = q.Where("employee_code = ? OR LOWER(name) = ?", ref, strings.ToLower(ref))
	}

	var emp models.Employee
	if err := q.First(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageErr(err)
	}
	return &emp, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
