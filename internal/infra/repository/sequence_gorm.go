package repository

import (
	"context"

	"gorm.io/gorm"
)

const BookingSequence = "bookingId"

// SequenceGormAllocator hands out values from named counters. The whole
// upsert-increment-read is one statement, so two callers can never observe
// the same value.
type SequenceGormAllocator struct {
	db *gorm.DB
}

func NewSequenceGormAllocator(db *gorm.DB) *SequenceGormAllocator {
	return &SequenceGormAllocator{db: db}
}

// WithTx binds the allocator to tx so the increment commits or rolls back
// together with whatever else tx writes.
func (a *SequenceGormAllocator) WithTx(tx *gorm.DB) *SequenceGormAllocator {
	return &SequenceGormAllocator{db: tx}
}

func (a *SequenceGormAllocator) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := a.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, sequence) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET sequence = counters.sequence + 1
		RETURNING sequence`,
		name,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (a *SequenceGormAllocator) NextBookingID(ctx context.Context) (int64, error) {
	return a.Next(ctx, BookingSequence)
}
