package models

import (
	"time"

	"gorm.io/datatypes"
)

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	EmployeeCode string `gorm:"size:20;uniqueIndex;not null" json:"employeeCode"`
	Email        string `gorm:"size:100" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	Position     string `gorm:"size:30;not null" json:"position"`

	Specialties datatypes.JSONSlice[string] `json:"specialties"`
	IsActive    bool                        `gorm:"default:true" json:"isActive"`

	WorkStart string `gorm:"size:5" json:"workStart"`
	WorkEnd   string `gorm:"size:5" json:"workEnd"`

	// LeaveDates holds YYYY-MM-DD strings in ascending order.
	LeaveDates datatypes.JSONSlice[string] `json:"leaveDates"`
	Version    int                         `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
