package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/thanFreecss/celebrity-salon/internal/models"
)

// Migrate creates the schema. It is shared by the postgres entrypoint and
// the sqlite databases used in tests, so every statement must be portable.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Counter{},
		&models.Booking{},
		&models.AuditLog{},
		&models.GalleryImage{},
	); err != nil {
		return err
	}
	return ensureIndexes(db)
}

// ensureIndexes adds the constraints gorm tags cannot express. The partial
// unique index is what makes a slot a scarce resource: two concurrent
// inserts for the same date and slot cannot both commit while active.
func ensureIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_active_slot
			ON bookings (appointment_date, slot)
			WHERE status IN ('pending', 'confirmed')`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}
