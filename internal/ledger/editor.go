package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kharcha/internal/core"
)

// Field names accepted by ApplyFieldEdit.
const (
	FieldName     = "name"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldCategory = "category"
)

// ErrUnknownField is returned by ApplyFieldEdit for a field name outside
// the editable set.
var ErrUnknownField = fmt.Errorf("unknown field")

// EditedEntry is one row of an in-progress day edit. The display name is
// carried separately from the bucket key: renames touch only the name,
// and keys are re-resolved against the other rows when the day is saved.
type EditedEntry struct {
	Name string
	Item core.LineItem
}

// EntriesForEdit extracts the expense rows of a bucket as an ordered edit
// list, base names restored and income entries left out. Rows are sorted
// by key so repeated extractions of the same bucket agree.
func EntriesForEdit(bucket core.DayBucket) []EditedEntry {
	keys := make([]string, 0, len(bucket))
	for key, item := range bucket {
		if item.Category.IsIncome() {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]EditedEntry, 0, len(keys))
	for _, key := range keys {
		out = append(out, EditedEntry{Name: BaseName(key), Item: bucket[key]})
	}
	return out
}

// UpsertFromCatalogItem inserts a catalog template into a bucket, adding
// quantityDelta to the quantity already recorded under the resolved key.
// The original bucket is not mutated. An entry whose quantity drops to
// zero or below is removed.
func UpsertFromCatalogItem(bucket core.DayBucket, name string, tmpl core.LineItem, quantityDelta float64) (core.DayBucket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.ErrEmptyName
	}
	out := bucket.Clone()
	key := ResolveKey(name, tmpl.Price, out)
	quantity := out[key].Quantity + quantityDelta
	if quantity <= 0 {
		delete(out, key)
		return out, nil
	}
	out[key] = core.LineItem{
		Quantity: quantity,
		Price:    tmpl.Price,
		Total:    quantity * tmpl.Price,
		Category: tmpl.Category,
	}
	return out, nil
}

// UpsertNewItem inserts a free-form expense into a bucket from raw form
// input. Name, quantity and price are validated before anything is
// touched; a same name and price entry absorbs the quantity instead of
// getting a new key.
func UpsertNewItem(bucket core.DayBucket, name, rawQuantity, rawPrice, rawCategory string) (core.DayBucket, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.ErrEmptyName
	}
	quantity, err := core.ParseQuantity(rawQuantity)
	if err != nil {
		return nil, err
	}
	price, err := core.ParsePrice(rawPrice)
	if err != nil {
		return nil, err
	}
	category := core.NormalizeCategory(rawCategory)

	out := bucket.Clone()
	key := ResolveKey(name, price, out)
	quantity += out[key].Quantity
	out[key] = core.LineItem{
		Quantity: quantity,
		Price:    price,
		Total:    quantity * price,
		Category: category,
	}
	return out, nil
}

// RemoveEntry returns the bucket without the given key. Removing an
// absent key is a no-op.
func RemoveEntry(bucket core.DayBucket, key string) core.DayBucket {
	out := bucket.Clone()
	delete(out, key)
	return out
}

// SetIncome sets or overwrites the reserved income entry in the bucket
// of the first calendar day of the given month. The returned ledger is a
// new value; the input is untouched.
func SetIncome(ledger core.DailyLedger, month time.Time, rawAmount string) (core.DailyLedger, error) {
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	date := core.FirstOfMonth(month)
	out := ledger.Clone()
	bucket := out[date]
	if bucket == nil {
		bucket = core.DayBucket{}
	}
	bucket[core.IncomeKey] = core.NewIncome(amount)
	out[date] = bucket
	return out, nil
}

// ApplyFieldEdit updates one field of an edit row from raw form input and
// recomputes the total when quantity or price changes. Renames change the
// display name only; key resolution happens at save time.
func ApplyFieldEdit(entry EditedEntry, field, raw string) (EditedEntry, error) {
	switch field {
	case FieldName:
		name := strings.TrimSpace(raw)
		if name == "" {
			return entry, core.ErrEmptyName
		}
		entry.Name = name
	case FieldQuantity:
		quantity, err := core.ParseQuantity(raw)
		if err != nil {
			return entry, err
		}
		entry.Item.Quantity = quantity
		entry.Item.Total = quantity * entry.Item.Price
	case FieldPrice:
		price, err := core.ParsePrice(raw)
		if err != nil {
			return entry, err
		}
		entry.Item.Price = price
		entry.Item.Total = entry.Item.Quantity * price
	case FieldCategory:
		entry.Item.Category = core.NormalizeCategory(raw)
	default:
		return entry, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return entry, nil
}

// SaveDay writes an edited day back into the ledger. Expense rows get
// their keys re-resolved in order against the bucket being rebuilt, so a
// rename that collides with another row's name but not its price is
// disambiguated the same way as a fresh insert. Income entries already
// recorded for the date are carried over untouched; income rows in the
// edit list are ignored. The returned ledger is a new value sorted
// chronologically on serialization.
func SaveDay(ledger core.DailyLedger, date string, edits []EditedEntry) (core.DailyLedger, error) {
	if _, err := core.ParseDay(date); err != nil {
		return nil, err
	}
	bucket := core.DayBucket{}
	for key, item := range ledger[date] {
		if item.Category.IsIncome() {
			bucket[key] = item
		}
	}
	for _, edit := range edits {
		if edit.Item.Category.IsIncome() {
			continue
		}
		name := strings.TrimSpace(edit.Name)
		if name == "" {
			return nil, core.ErrEmptyName
		}
		if err := edit.Item.Validate(); err != nil {
			return nil, err
		}
		key := ResolveKey(name, edit.Item.Price, bucket)
		quantity := bucket[key].Quantity + edit.Item.Quantity
		bucket[key] = core.LineItem{
			Quantity: quantity,
			Price:    edit.Item.Price,
			Total:    quantity * edit.Item.Price,
			Category: edit.Item.Category,
		}
	}
	out := ledger.Clone()
	out[date] = bucket
	return out, nil
}
