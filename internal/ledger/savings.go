package ledger

import (
	"sort"

	"kharcha/internal/core"
)

// MonthlySavings is one month's income/expense split.
type MonthlySavings struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// SavingsReport maps YYYY-MM month keys to their savings plus the grand
// total across all months.
type SavingsReport struct {
	Months map[string]MonthlySavings `json:"months"`
	Total  float64                   `json:"total"`
}

// ComputeSavings folds the whole ledger into per-month income, expense
// and savings. Savings is income minus expense; the grand total is the
// sum of all monthly savings.
func ComputeSavings(ledger core.DailyLedger) (SavingsReport, error) {
	months := make(map[string]MonthlySavings)
	for date, bucket := range ledger {
		month, err := core.MonthKeyOf(date)
		if err != nil {
			return SavingsReport{}, err
		}
		m := months[month]
		for _, item := range bucket {
			if item.Category.IsIncome() {
				m.Income += item.Total
			} else {
				m.Expense += item.Total
			}
		}
		months[month] = m
	}
	report := SavingsReport{Months: months}
	for month, m := range months {
		m.Savings = m.Income - m.Expense
		months[month] = m
		report.Total += m.Savings
	}
	return report, nil
}

// MonthKeys returns the report's month keys in ascending order.
func (r SavingsReport) MonthKeys() []string {
	keys := make([]string, 0, len(r.Months))
	for key := range r.Months {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
