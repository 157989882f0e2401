// Package worker exports saved ledger days to a spreadsheet in response
// to day sync messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"kharcha/internal/amqp"
	"kharcha/internal/core"
	"kharcha/internal/ledger"
	"kharcha/internal/sheets"
	"kharcha/internal/store"
)

// ExportWorker handles export of day buckets from the document store to
// a spreadsheet.
type ExportWorker struct {
	store  store.DocumentStore
	sheets sheets.EntryAppender

	mu       sync.Mutex
	exported map[string]int64 // date -> last exported revision
}

func NewExportWorker(store store.DocumentStore, sheets sheets.EntryAppender) *ExportWorker {
	return &ExportWorker{
		store:    store,
		sheets:   sheets,
		exported: make(map[string]int64),
	}
}

// HandleDaySync processes a single day sync message from AMQP.
// Messages older than the last exported revision for the same date are
// skipped so redelivered messages do not duplicate rows.
func (w *ExportWorker) HandleDaySync(ctx context.Context, msg *amqp.DaySyncMessage) error {
	slog.InfoContext(ctx, "Processing day sync message",
		"date", msg.Date,
		"revision", msg.Revision)

	w.mu.Lock()
	last, seen := w.exported[msg.Date]
	w.mu.Unlock()
	if seen && msg.Revision <= last {
		slog.InfoContext(ctx, "Skipping stale day sync message",
			"date", msg.Date,
			"revision", msg.Revision,
			"exported_revision", last)
		return nil
	}

	if err := w.ExportDay(ctx, msg.Date); err != nil {
		return err
	}

	w.mu.Lock()
	if msg.Revision > w.exported[msg.Date] {
		w.exported[msg.Date] = msg.Revision
	}
	w.mu.Unlock()

	return nil
}

// ExportDay loads the bucket for the given date and appends its expense
// entries to the spreadsheet. Income entries stay out of the export.
func (w *ExportWorker) ExportDay(ctx context.Context, date string) error {
	if _, err := core.ParseDay(date); err != nil {
		return fmt.Errorf("parse date %q: %w", date, err)
	}

	daily, err := w.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	bucket, ok := daily[date]
	if !ok || len(bucket) == 0 {
		slog.InfoContext(ctx, "No entries for date, nothing to export", "date", date)
		return nil
	}

	rows := exportRows(date, bucket)
	if len(rows) == 0 {
		slog.InfoContext(ctx, "Only income entries for date, nothing to export", "date", date)
		return nil
	}

	ref, err := w.sheets.AppendDayEntries(ctx, date, rows)
	if err != nil {
		return fmt.Errorf("append day entries: %w", err)
	}

	slog.InfoContext(ctx, "Successfully exported day",
		"date", date,
		"entries", len(rows),
		"sheets_ref", ref)

	return nil
}

// ExportAll exports every day of the ledger in chronological order.
// Useful as a backfill when the spreadsheet starts empty.
func (w *ExportWorker) ExportAll(ctx context.Context) error {
	daily, err := w.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	dates, err := daily.SortedDates()
	if err != nil {
		return fmt.Errorf("sort ledger dates: %w", err)
	}

	exportedCount := 0
	for _, date := range dates {
		rows := exportRows(date, daily[date])
		if len(rows) == 0 {
			continue
		}
		if _, err := w.sheets.AppendDayEntries(ctx, date, rows); err != nil {
			return fmt.Errorf("append day entries for %s: %w", date, err)
		}
		exportedCount++
	}

	slog.InfoContext(ctx, "Backfill export completed",
		"days", len(dates),
		"exported", exportedCount)

	return nil
}

// exportRows flattens a bucket into spreadsheet rows sorted by entry
// key, base names restored, income entries dropped.
func exportRows(date string, bucket core.DayBucket) []sheets.DayEntry {
	keys := make([]string, 0, len(bucket))
	for key := range bucket {
		if bucket[key].Category.IsIncome() {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]sheets.DayEntry, 0, len(keys))
	for _, key := range keys {
		item := bucket[key]
		rows = append(rows, sheets.DayEntry{
			Date:     date,
			Name:     ledger.BaseName(key),
			Category: item.Category,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Total,
		})
	}
	return rows
}
