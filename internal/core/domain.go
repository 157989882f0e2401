package core

import (
	"errors"
	"math"
	"strings"
)

const (
	Food          Category = "food"
	Travel        Category = "travel"
	Entertainment Category = "entertainment"
	Others        Category = "others"
	// Income marks money received rather than spent. Entries in this
	// category are excluded from expense aggregation.
	Income Category = "income"
)

// IncomeKey is the reserved item key used for the monthly income entry
// stored in the bucket of the first day of a month.
const IncomeKey = "income"

type (
	Category string

	// LineItem is one purchase or income record. Amounts are float64 on
	// purpose: every consumer sums with plain floating addition and no
	// rounding is applied until display.
	LineItem struct {
		Quantity float64  `json:"quantity"`
		Price    float64  `json:"price"`
		Total    float64  `json:"total"`
		Category Category `json:"category"`
	}

	// DayBucket maps an item key to the entry recorded under it for a
	// single date. Keys are unique within the bucket but need not equal
	// display names (see ledger.ResolveKey).
	DayBucket map[string]LineItem

	// FrequentCatalog maps an item name to a reusable template for
	// one-click insertion into a day's bucket.
	FrequentCatalog map[string]LineItem
)

var (
	ErrEmptyName       = errors.New("empty item name")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrBadDate         = errors.New("malformed date key")
)

// ExpenseCategories lists every category an expense entry may carry.
// Income is deliberately absent.
var ExpenseCategories = []Category{Food, Travel, Entertainment, Others}

// Valid reports whether c is one of the known expense categories or income.
func (c Category) Valid() bool {
	switch c {
	case Food, Travel, Entertainment, Others, Income:
		return true
	}
	return false
}

// IsIncome reports whether the category marks money received.
func (c Category) IsIncome() bool { return c == Income }

func (i LineItem) Validate() error {
	if i.Quantity < 0 || math.IsNaN(i.Quantity) || math.IsInf(i.Quantity, 0) {
		return ErrInvalidQuantity
	}
	if i.Price < 0 || math.IsNaN(i.Price) || math.IsInf(i.Price, 0) {
		return ErrInvalidPrice
	}
	if !i.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// NewExpense builds an expense entry with the total derived from
// quantity and price.
func NewExpense(quantity, price float64, category Category) LineItem {
	return LineItem{
		Quantity: quantity,
		Price:    price,
		Total:    quantity * price,
		Category: category,
	}
}

// NewIncome builds the reserved income entry: quantity 1, total equal
// to the amount received.
func NewIncome(amount float64) LineItem {
	return LineItem{
		Quantity: 1,
		Price:    amount,
		Total:    amount,
		Category: Income,
	}
}

// NormalizeCategory maps raw user input to a known expense category,
// defaulting to Others when empty or unknown.
func NormalizeCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range ExpenseCategories {
		if c == known {
			return c
		}
	}
	return Others
}

// Clone returns an independent copy of the bucket.
func (b DayBucket) Clone() DayBucket {
	out := make(DayBucket, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the catalog.
func (c FrequentCatalog) Clone() FrequentCatalog {
	out := make(FrequentCatalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
