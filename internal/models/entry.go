package models

// Entry is one customer transaction record. The primary key is a
// client-generated string (unix-ms timestamp plus a random suffix); the
// server mints one when the client omits it. CreatedAt is a unix
// nanosecond timestamp assigned once at creation; it and OwnerID are
// never mutated afterwards.
type Entry struct {
	ID           string `gorm:"primaryKey;size:64"`
	OwnerID      uint   `gorm:"index;not null"`
	ManualDate   string `gorm:"size:10;index;not null"` // YYYY-MM-DD
	CustomerName string `gorm:"size:128;not null"`
	MobileNumber string `gorm:"size:15;not null"`
	AmountRs     int64  `gorm:"not null"` // whole rupees
	CreatedAt    int64  `gorm:"autoCreateTime:nano;index;not null"`
}
