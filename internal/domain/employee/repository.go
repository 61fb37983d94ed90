package employee

import (
	"context"

	"github.com/thanFreecss/celebrity-salon/internal/models"
)

type Repository interface {
	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	// ReplaceLeaveDates writes dates only if the row still carries version.
	// It returns ErrStaleVersion when another writer got there first.
	ReplaceLeaveDates(
		ctx context.Context,
		id uint,
		version int,
		dates []string,
	) error
}
