package models

import "time"

// Backup tracks an encrypted on-disk snapshot of one user's entries.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:128;not null"`
	FilePath  string `gorm:"size:255;not null"`
	Size      int64
	CreatedAt time.Time
}
