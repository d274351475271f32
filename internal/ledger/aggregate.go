package ledger

import (
	"sort"
	"time"
)

// MonthBucket is one calendar month of aggregated entries.
type MonthBucket struct {
	Month       string `json:"month"`
	MonthIndex  int    `json:"month_index"` // 0-11
	TotalAmount int64  `json:"total_amount"`
	Count       int    `json:"count"`
}

// YearBucket is one calendar year of aggregated entries.
type YearBucket struct {
	Year        int   `json:"year"`
	TotalAmount int64 `json:"total_amount"`
	Count       int   `json:"count"`
}

// ByMonth groups the given year's entries by calendar month. The result
// always has exactly 12 buckets, January through December, even when
// every bucket is empty. Entries with unparseable dates or a different
// year are skipped.
func ByMonth(entries []Entry, year int) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i] = MonthBucket{
			Month:      time.Month(i + 1).String(),
			MonthIndex: i,
		}
	}
	for _, e := range entries {
		d, ok := ParseDate(e.ManualDate)
		if !ok || d.Year() != year {
			continue
		}
		b := &buckets[int(d.Month())-1]
		b.TotalAmount += e.AmountRs
		b.Count++
	}
	return buckets
}

// ByYear groups entries by parsed year, skipping unparseable dates, one
// bucket per distinct year in ascending order.
func ByYear(entries []Entry) []YearBucket {
	byYear := make(map[int]*YearBucket)
	for _, e := range entries {
		d, ok := ParseDate(e.ManualDate)
		if !ok {
			continue
		}
		b, exists := byYear[d.Year()]
		if !exists {
			b = &YearBucket{Year: d.Year()}
			byYear[d.Year()] = b
		}
		b.TotalAmount += e.AmountRs
		b.Count++
	}

	out := make([]YearBucket, 0, len(byYear))
	for _, b := range byYear {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// AvailableYears lists the distinct years present in the data, newest
// first. Drives the year selector's default choice.
func AvailableYears(entries []Entry) []int {
	seen := make(map[int]bool)
	for _, e := range entries {
		if d, ok := ParseDate(e.ManualDate); ok {
			seen[d.Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
