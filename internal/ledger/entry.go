// Package ledger holds the domain logic of the customer record book:
// field validation, strict date handling, the import pipeline, the
// export renderers and the month/year aggregations. It is pure and
// knows nothing about HTTP or storage.
package ledger

// Entry is one customer transaction record.
type Entry struct {
	ID           string `json:"id"`
	ManualDate   string `json:"manual_date"` // strict YYYY-MM-DD
	CustomerName string `json:"customer_name"`
	MobileNumber string `json:"mobile_number"`
	AmountRs     int64  `json:"amount_rs"` // whole rupees
	CreatedAt    int64  `json:"created_at"` // unix nanoseconds, server-assigned
}
