// Package sheets defines the outbound port for exporting ledger days
// to a spreadsheet.
package sheets

import (
	"context"

	"kharcha/internal/core"
)

// DayEntry is one exported spreadsheet row.
type DayEntry struct {
	Date     string
	Name     string
	Category core.Category
	Quantity float64
	Price    float64
	Total    float64
}

// EntryAppender appends the entries of one ledger day.
type EntryAppender interface {
	// AppendDayEntries writes the rows and returns an adapter-specific
	// reference to where they landed.
	AppendDayEntries(ctx context.Context, date string, entries []DayEntry) (ref string, err error)
}

// EntriesFromBucket flattens a day bucket into export rows, base names
// restored, sorted by the caller if order matters.
func EntriesFromBucket(date string, bucket core.DayBucket, baseName func(string) string) []DayEntry {
	out := make([]DayEntry, 0, len(bucket))
	for key, item := range bucket {
		name := key
		if baseName != nil {
			name = baseName(key)
		}
		out = append(out, DayEntry{
			Date:     date,
			Name:     name,
			Category: item.Category,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		})
	}
	return out
}
