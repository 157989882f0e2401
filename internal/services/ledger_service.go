// Package services orchestrates ledger operations across the document
// store and AMQP.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kharcha/internal/amqp"
	"kharcha/internal/core"
	"kharcha/internal/ledger"
	"kharcha/internal/store"
)

// ErrUnknownFrequentItem is returned when a catalog upsert names an
// item that is not in the frequent catalog.
var ErrUnknownFrequentItem = errors.New("unknown frequent item")

// RevisionReader reports the stored revision of a named document.
// Backends without revision tracking leave it nil.
type RevisionReader interface {
	Revision(ctx context.Context, name string) (int64, error)
}

// LedgerService orchestrates ledger operations across the document
// store and AMQP day sync messages.
type LedgerService struct {
	store      store.DocumentStore
	amqpClient *amqp.Client
	revisions  RevisionReader
}

func NewLedgerService(store store.DocumentStore, amqpClient *amqp.Client, revisions RevisionReader) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
		revisions:  revisions,
	}
}

// LoadAll loads the daily ledger and the frequent catalog concurrently.
func (s *LedgerService) LoadAll(ctx context.Context) (store.Documents, error) {
	return store.LoadAll(ctx, s.store)
}

func (s *LedgerService) Ledger(ctx context.Context) (core.DailyLedger, error) {
	return s.store.LoadLedger(ctx)
}

func (s *LedgerService) Catalog(ctx context.Context) (core.FrequentCatalog, error) {
	return s.store.LoadCatalog(ctx)
}

// ReplaceLedger overwrites the whole daily ledger document. Every date
// key must parse.
func (s *LedgerService) ReplaceLedger(ctx context.Context, daily core.DailyLedger) error {
	for date := range daily {
		if _, err := core.ParseDay(date); err != nil {
			return err
		}
	}
	if err := s.store.SaveLedger(ctx, daily); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// ReplaceCatalog overwrites the whole frequent catalog document.
func (s *LedgerService) ReplaceCatalog(ctx context.Context, catalog core.FrequentCatalog) error {
	for name, item := range catalog {
		if name == "" {
			return core.ErrEmptyName
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("frequent item %q: %w", name, err)
		}
	}
	if err := s.store.SaveCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Day returns the bucket for the given date as editable rows.
func (s *LedgerService) Day(ctx context.Context, date string) ([]ledger.EditedEntry, error) {
	if _, err := core.ParseDay(date); err != nil {
		return nil, err
	}
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return ledger.EntriesForEdit(daily[date]), nil
}

// SaveDay replaces the bucket for the given date with the edited rows
// and publishes a day sync message. The store write happens first, a
// failed write publishes nothing.
func (s *LedgerService) SaveDay(ctx context.Context, date string, edits []ledger.EditedEntry) error {
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	next, err := ledger.SaveDay(daily, date, edits)
	if err != nil {
		return fmt.Errorf("apply day edits: %w", err)
	}

	if err := s.store.SaveLedger(ctx, next); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	s.publishDaySync(ctx, date)
	return nil
}

// AddFromCatalog bumps the quantity of a catalog item in the given
// day's bucket. A negative delta decrements, the entry disappears when
// its quantity reaches zero.
func (s *LedgerService) AddFromCatalog(ctx context.Context, date, name string, quantityDelta float64) error {
	if _, err := core.ParseDay(date); err != nil {
		return err
	}

	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	tmpl, ok := catalog[name]
	if !ok {
		return fmt.Errorf("frequent item %q: %w", name, ErrUnknownFrequentItem)
	}

	return s.mutateDay(ctx, date, func(bucket core.DayBucket) (core.DayBucket, error) {
		return ledger.UpsertFromCatalogItem(bucket, name, tmpl, quantityDelta)
	})
}

// AddItem validates and inserts a free-form entry into the given day.
func (s *LedgerService) AddItem(ctx context.Context, date, name, rawQuantity, rawPrice, rawCategory string) error {
	if _, err := core.ParseDay(date); err != nil {
		return err
	}
	return s.mutateDay(ctx, date, func(bucket core.DayBucket) (core.DayBucket, error) {
		return ledger.UpsertNewItem(bucket, name, rawQuantity, rawPrice, rawCategory)
	})
}

// RemoveItem deletes one entry key from the given day.
func (s *LedgerService) RemoveItem(ctx context.Context, date, key string) error {
	if _, err := core.ParseDay(date); err != nil {
		return err
	}
	return s.mutateDay(ctx, date, func(bucket core.DayBucket) (core.DayBucket, error) {
		return ledger.RemoveEntry(bucket, key), nil
	})
}

// SetIncome records the month's income on its first day, replacing any
// previous value.
func (s *LedgerService) SetIncome(ctx context.Context, month time.Time, rawAmount string) error {
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	next, err := ledger.SetIncome(daily, month, rawAmount)
	if err != nil {
		return fmt.Errorf("set income: %w", err)
	}

	if err := s.store.SaveLedger(ctx, next); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	s.publishDaySync(ctx, core.FirstOfMonth(month))
	return nil
}

// SaveCatalogItem validates and stores a frequent item template.
func (s *LedgerService) SaveCatalogItem(ctx context.Context, name, rawQuantity, rawPrice, rawCategory string) error {
	if name == "" {
		return core.ErrEmptyName
	}

	quantity, err := core.ParseQuantity(rawQuantity)
	if err != nil {
		return err
	}
	price, err := core.ParsePrice(rawPrice)
	if err != nil {
		return err
	}
	item := core.NewExpense(quantity, price, core.NormalizeCategory(rawCategory))
	if err := item.Validate(); err != nil {
		return err
	}

	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if catalog == nil {
		catalog = core.FrequentCatalog{}
	}
	catalog[name] = item

	if err := s.store.SaveCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// RemoveCatalogItem deletes a frequent item template. Removing an
// unknown name is a no-op.
func (s *LedgerService) RemoveCatalogItem(ctx context.Context, name string) error {
	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if _, ok := catalog[name]; !ok {
		return nil
	}
	delete(catalog, name)

	if err := s.store.SaveCatalog(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Summary aggregates expense totals by category and month for the
// given range.
func (s *LedgerService) Summary(ctx context.Context, rng ledger.Range) (ledger.Summary, error) {
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("load ledger: %w", err)
	}
	return ledger.Aggregate(daily, rng)
}

// Report returns merged per-item rows and per-category shares for the
// given range.
func (s *LedgerService) Report(ctx context.Context, rng ledger.Range) ([]ledger.MergedRow, []ledger.CategoryRow, error) {
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load ledger: %w", err)
	}
	rows, err := ledger.MergeByBaseName(daily, rng)
	if err != nil {
		return nil, nil, err
	}
	cats, err := ledger.CategorySummary(daily, rng)
	if err != nil {
		return nil, nil, err
	}
	return rows, cats, nil
}

// Savings computes monthly income minus expenses over the whole ledger.
func (s *LedgerService) Savings(ctx context.Context) (ledger.SavingsReport, error) {
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return ledger.SavingsReport{}, fmt.Errorf("load ledger: %w", err)
	}
	return ledger.ComputeSavings(daily)
}

// mutateDay loads the ledger, applies fn to the date's bucket, writes
// the result back and publishes a day sync message.
func (s *LedgerService) mutateDay(ctx context.Context, date string, fn func(core.DayBucket) (core.DayBucket, error)) error {
	daily, err := s.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	bucket, err := fn(daily[date])
	if err != nil {
		return err
	}

	next := daily.Clone()
	if len(bucket) == 0 {
		delete(next, date)
	} else {
		next[date] = bucket
	}

	if err := s.store.SaveLedger(ctx, next); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	s.publishDaySync(ctx, date)
	return nil
}

// publishDaySync publishes a day sync message after a successful write.
// A publish failure is logged, not returned, the store write already
// succeeded.
func (s *LedgerService) publishDaySync(ctx context.Context, date string) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping day sync message", "date", date)
		return
	}

	var revision int64
	if s.revisions != nil {
		rev, err := s.revisions.Revision(ctx, store.ResourceDaily)
		if err != nil {
			slog.WarnContext(ctx, "Failed to read document revision",
				"resource", store.ResourceDaily, "error", err)
		} else {
			revision = rev
		}
	}

	if err := s.amqpClient.PublishDaySync(ctx, date, revision); err != nil {
		slog.ErrorContext(ctx, "Failed to publish day sync message",
			"date", date, "revision", revision, "error", err)
	}
}

// Close closes the AMQP connection if one is configured.
func (s *LedgerService) Close() error {
	if s.amqpClient == nil {
		return nil
	}
	if err := s.amqpClient.Close(); err != nil {
		return fmt.Errorf("close amqp: %w", err)
	}
	return nil
}
