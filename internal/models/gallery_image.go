package models

import "time"

// GalleryImage is a before/after pair shown on the public gallery.
type GalleryImage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title   string `gorm:"size:120" json:"title"`
	Service string `gorm:"size:40" json:"service"`

	BeforeKey string `gorm:"size:255;not null" json:"-"`
	AfterKey  string `gorm:"size:255;not null" json:"-"`
	BeforeURL string `gorm:"size:512" json:"beforeUrl"`
	AfterURL  string `gorm:"size:512" json:"afterUrl"`

	CreatedAt time.Time `json:"createdAt"`
}
