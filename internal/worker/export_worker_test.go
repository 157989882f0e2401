package worker

import (
	"context"
	"testing"

	"kharcha/internal/amqp"
	"kharcha/internal/core"
	sheetsmem "kharcha/internal/sheets/memory"
	storemem "kharcha/internal/store/memory"
)

func seededStore(t *testing.T) *storemem.Store {
	t.Helper()
	s := storemem.New()
	ledger := core.DailyLedger{
		"01/06/2024": {
			"coffee": {Quantity: 2, Price: 1.5, Total: 3, Category: core.Food},
			"tea_1":  {Quantity: 1, Price: 2, Total: 2, Category: core.Food},
			"income": {Quantity: 1, Price: 20000, Total: 20000, Category: core.Income},
		},
		"02/06/2024": {
			"income": {Quantity: 1, Price: 500, Total: 500, Category: core.Income},
		},
	}
	if err := s.SaveLedger(context.Background(), ledger); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	return s
}

func TestHandleDaySync(t *testing.T) {
	appender := sheetsmem.New()
	w := NewExportWorker(seededStore(t), appender)

	msg := amqp.NewDaySyncMessage("01/06/2024", 1)
	if err := w.HandleDaySync(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows := appender.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Sorted by key, income skipped, base names restored.
	if rows[0].Name != "coffee" || rows[1].Name != "tea" {
		t.Errorf("names = %q, %q", rows[0].Name, rows[1].Name)
	}
	for _, row := range rows {
		if row.Category.IsIncome() {
			t.Errorf("income row exported: %+v", row)
		}
		if row.Date != "01/06/2024" {
			t.Errorf("row date = %q", row.Date)
		}
	}
}

func TestHandleDaySyncSkipsStaleRevision(t *testing.T) {
	appender := sheetsmem.New()
	w := NewExportWorker(seededStore(t), appender)
	ctx := context.Background()

	if err := w.HandleDaySync(ctx, amqp.NewDaySyncMessage("01/06/2024", 3)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if err := w.HandleDaySync(ctx, amqp.NewDaySyncMessage("01/06/2024", 3)); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if err := w.HandleDaySync(ctx, amqp.NewDaySyncMessage("01/06/2024", 2)); err != nil {
		t.Fatalf("stale: %v", err)
	}

	if got := len(appender.Rows()); got != 2 {
		t.Errorf("rows = %d, want 2 (single export)", got)
	}

	// A newer revision exports again.
	if err := w.HandleDaySync(ctx, amqp.NewDaySyncMessage("01/06/2024", 4)); err != nil {
		t.Fatalf("newer revision: %v", err)
	}
	if got := len(appender.Rows()); got != 4 {
		t.Errorf("rows = %d, want 4 after second export", got)
	}
}

func TestHandleDaySyncBadDate(t *testing.T) {
	w := NewExportWorker(seededStore(t), sheetsmem.New())
	if err := w.HandleDaySync(context.Background(), amqp.NewDaySyncMessage("2024-06-01", 1)); err == nil {
		t.Fatal("expected error for bad date format")
	}
}

func TestExportDayNoEntries(t *testing.T) {
	appender := sheetsmem.New()
	w := NewExportWorker(seededStore(t), appender)

	if err := w.ExportDay(context.Background(), "15/06/2024"); err != nil {
		t.Fatalf("missing day should be a no-op, got %v", err)
	}
	// Income-only day exports nothing.
	if err := w.ExportDay(context.Background(), "02/06/2024"); err != nil {
		t.Fatalf("income-only day: %v", err)
	}
	if got := len(appender.Rows()); got != 0 {
		t.Errorf("rows = %d, want 0", got)
	}
}

func TestExportAll(t *testing.T) {
	appender := sheetsmem.New()
	w := NewExportWorker(seededStore(t), appender)

	if err := w.ExportAll(context.Background()); err != nil {
		t.Fatalf("export all: %v", err)
	}
	rows := appender.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}
