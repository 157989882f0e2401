package ledger

import (
	"iter"
	"sort"
	"time"

	"kharcha/internal/core"
)

// Range is an optional inclusive date interval. A zero bound leaves that
// side open.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// Summary is the fold of a ledger over a range: expense totals per
// category and per month. Income entries are excluded everywhere here;
// they only count toward savings.
type Summary struct {
	CategoryTotals map[core.Category]float64 `json:"categoryTotals"`
	MonthlyBuckets map[string]float64        `json:"monthlyBuckets"`
	Total          float64                   `json:"total"`
}

// FlatEntry is one non-income line item flattened for charting and
// tabular reports.
type FlatEntry struct {
	Name     string        `json:"name"`
	Category core.Category `json:"category"`
	Amount   float64       `json:"amount"`
	Date     string        `json:"date"`
}

// MergedRow is a base-name-merged summary row. Price variants of the
// same name are summed together, so the row carries no unit price.
type MergedRow struct {
	Name     string        `json:"name"`
	Category core.Category `json:"category"`
	Quantity float64       `json:"quantity"`
	Total    float64       `json:"total"`
}

// Aggregate folds every non-income entry inside the range into category
// and month totals. Sums are plain floating addition; nothing is rounded
// until display.
func Aggregate(ledger core.DailyLedger, rng Range) (Summary, error) {
	s := Summary{
		CategoryTotals: make(map[core.Category]float64),
		MonthlyBuckets: make(map[string]float64),
	}
	for date, bucket := range ledger {
		t, err := core.ParseDay(date)
		if err != nil {
			return Summary{}, err
		}
		if !rng.Contains(t) {
			continue
		}
		month := core.MonthKey(t)
		for _, item := range bucket {
			if item.Category.IsIncome() {
				continue
			}
			s.CategoryTotals[item.Category] += item.Total
			s.MonthlyBuckets[month] += item.Total
			s.Total += item.Total
		}
	}
	return s, nil
}

// FlatEntries returns a lazy, restartable sequence of every non-income
// entry inside the range, in chronological then key order. Entries with
// a zero total are skipped. A malformed date key yields the error and
// ends the sequence.
func FlatEntries(ledger core.DailyLedger, rng Range) iter.Seq2[FlatEntry, error] {
	return func(yield func(FlatEntry, error) bool) {
		dates, err := ledger.SortedDates()
		if err != nil {
			yield(FlatEntry{}, err)
			return
		}
		for _, date := range dates {
			t, _ := core.ParseDay(date)
			if !rng.Contains(t) {
				continue
			}
			bucket := ledger[date]
			keys := make([]string, 0, len(bucket))
			for key := range bucket {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				item := bucket[key]
				if item.Category.IsIncome() || item.Total == 0 {
					continue
				}
				entry := FlatEntry{
					Name:     BaseName(key),
					Category: item.Category,
					Amount:   item.Total,
					Date:     date,
				}
				if !yield(entry, nil) {
					return
				}
			}
		}
	}
}

// MergeByBaseName folds the range into one row per base name, summing
// quantity and total across dates and across _N price variants. The
// merge recombines entries ResolveKey kept apart and discards their
// price distinction; that mirrors how the range summaries have always
// reported, so it stays.
func MergeByBaseName(ledger core.DailyLedger, rng Range) ([]MergedRow, error) {
	merged := make(map[string]*MergedRow)
	for entry, err := range FlatEntries(ledger, rng) {
		if err != nil {
			return nil, err
		}
		row, ok := merged[entry.Name]
		if !ok {
			row = &MergedRow{Name: entry.Name, Category: entry.Category}
			merged[entry.Name] = row
		}
		row.Total += entry.Amount
	}
	// FlatEntries carries no quantity, so walk the buckets again for it.
	for date, bucket := range ledger {
		t, err := core.ParseDay(date)
		if err != nil {
			return nil, err
		}
		if !rng.Contains(t) {
			continue
		}
		for key, item := range bucket {
			if item.Category.IsIncome() || item.Total == 0 {
				continue
			}
			if row, ok := merged[BaseName(key)]; ok {
				row.Quantity += item.Quantity
			}
		}
	}
	out := make([]MergedRow, 0, len(merged))
	for _, row := range merged {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CategoryRow is one category's slice of a range total.
type CategoryRow struct {
	Category core.Category `json:"category"`
	Total    float64       `json:"total"`
	Share    float64       `json:"share"`
}

// CategorySummary returns the expense categories of a range as sorted
// rows with their share of the range total, largest first.
func CategorySummary(ledger core.DailyLedger, rng Range) ([]CategoryRow, error) {
	s, err := Aggregate(ledger, rng)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryRow, 0, len(s.CategoryTotals))
	for category, total := range s.CategoryTotals {
		row := CategoryRow{Category: category, Total: total}
		if s.Total != 0 {
			row.Share = total / s.Total
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
