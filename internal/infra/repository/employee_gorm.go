package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/thanFreecss/celebrity-salon/internal/domain/employee"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

type EmployeeGormRepository struct {
	db *gorm.DB
}

func NewEmployeeGormRepository(db *gorm.DB) *EmployeeGormRepository {
	return &EmployeeGormRepository{db: db}
}

func (r *EmployeeGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, storageErr(err)
	}
	return &emp, nil
}

// ReplaceLeaveDates is a compare-and-swap on the version column: the write
// lands only if nobody else changed the row since it was read.
func (r *EmployeeGormRepository) ReplaceLeaveDates(
	ctx context.Context,
	id uint,
	version int,
	dates []string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"leave_dates": datatypes.JSONSlice[string](dates),
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleVersion
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*EmployeeGormRepository)(nil)
