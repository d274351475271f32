package models

import "time"

// AuditLog records mutating operations for auditing. The action text is
// stored AES-encrypted; method, IP and user agent stay plain for
// filtering.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    *uint  `gorm:"index"`
	Path      string `gorm:"size:255"`
	Method    string `gorm:"size:16"`
	ActionEnc string `gorm:"size:4096"` // encrypted method + path + body summary
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
