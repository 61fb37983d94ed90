package employee

import (
	"errors"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
)

var (
	ErrEmployeeNotFound = httperr.NotFoundErr("employee_not_found", "Employee not found.")
	ErrStaleVersion     = errors.New("employee: stale version")
	ErrConcurrentEdit   = httperr.Conflict("employee_modified", "Employee was modified concurrently, retry.")
)
