package models

// Counter is a named monotonically increasing sequence.
type Counter struct {
	Name     string `gorm:"primaryKey;size:50" json:"name"`
	Sequence int64  `gorm:"not null;default:0" json:"sequence"`
}
