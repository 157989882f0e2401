package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
	storemem "kharcha/internal/store/memory"
)

func newTestService(t *testing.T) (*LedgerService, *storemem.Store) {
	t.Helper()
	st := storemem.New()
	ctx := context.Background()

	daily := core.DailyLedger{
		"01/06/2024": {
			"coffee": {Quantity: 2, Price: 1.5, Total: 3, Category: core.Food},
			"income": {Quantity: 1, Price: 20000, Total: 20000, Category: core.Income},
		},
	}
	if err := st.SaveLedger(ctx, daily); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	catalog := core.FrequentCatalog{
		"tea": {Quantity: 1, Price: 20, Total: 20, Category: core.Food},
	}
	if err := st.SaveCatalog(ctx, catalog); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	return NewLedgerService(st, nil, nil), st
}

func TestAddFromCatalog(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.AddFromCatalog(ctx, "01/06/2024", "tea", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddFromCatalog(ctx, "01/06/2024", "tea", 1); err != nil {
		t.Fatalf("add again: %v", err)
	}

	daily, _ := st.LoadLedger(ctx)
	item, ok := daily["01/06/2024"]["tea"]
	if !ok {
		t.Fatal("tea entry missing")
	}
	if item.Quantity != 2 || item.Total != 40 {
		t.Errorf("tea = %+v, want quantity 2 total 40", item)
	}

	// Decrement back to zero removes the entry.
	if err := svc.AddFromCatalog(ctx, "01/06/2024", "tea", -2); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	daily, _ = st.LoadLedger(ctx)
	if _, ok := daily["01/06/2024"]["tea"]; ok {
		t.Error("tea entry should be removed at zero quantity")
	}
}

func TestAddFromCatalogUnknownItem(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.AddFromCatalog(context.Background(), "01/06/2024", "nope", 1)
	if !errors.Is(err, ErrUnknownFrequentItem) {
		t.Fatalf("err = %v, want ErrUnknownFrequentItem", err)
	}
}

func TestAddFromCatalogBadDate(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.AddFromCatalog(context.Background(), "2024-06-01", "tea", 1)
	if !errors.Is(err, core.ErrBadDate) {
		t.Fatalf("err = %v, want ErrBadDate", err)
	}
}

func TestAddItem(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.AddItem(ctx, "02/06/2024", "cinema", "1", "12,50", "entertainment"); err != nil {
		t.Fatalf("add item: %v", err)
	}

	daily, _ := st.LoadLedger(ctx)
	item, ok := daily["02/06/2024"]["cinema"]
	if !ok {
		t.Fatal("cinema entry missing")
	}
	if item.Total != 12.5 || item.Category != core.Entertainment {
		t.Errorf("cinema = %+v", item)
	}
}

func TestAddItemInvalidInput(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.AddItem(ctx, "02/06/2024", "cinema", "abc", "12", "entertainment"); err == nil {
		t.Fatal("expected error for non-numeric quantity")
	}

	// Failed validation writes nothing.
	daily, _ := st.LoadLedger(ctx)
	if _, ok := daily["02/06/2024"]; ok {
		t.Error("bucket should not exist after failed add")
	}
}

func TestRemoveItem(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.RemoveItem(ctx, "01/06/2024", "coffee"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	daily, _ := st.LoadLedger(ctx)
	if _, ok := daily["01/06/2024"]["coffee"]; ok {
		t.Error("coffee should be removed")
	}
	// Income entry stays.
	if _, ok := daily["01/06/2024"]["income"]; !ok {
		t.Error("income entry should survive removal of coffee")
	}
}

func TestSetIncome(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	month := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if err := svc.SetIncome(ctx, month, "1500"); err != nil {
		t.Fatalf("set income: %v", err)
	}

	daily, _ := st.LoadLedger(ctx)
	item, ok := daily["01/07/2024"][core.IncomeKey]
	if !ok {
		t.Fatal("income entry missing on first of month")
	}
	if item.Total != 1500 || item.Category != core.Income {
		t.Errorf("income = %+v", item)
	}
}

func TestSaveDay(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	edits := []ledger.EditedEntry{
		{Name: "coffee", Item: core.LineItem{Quantity: 1, Price: 2, Total: 2, Category: core.Food}},
		{Name: "bus", Item: core.LineItem{Quantity: 2, Price: 1.8, Total: 3.6, Category: core.Travel}},
	}
	if err := svc.SaveDay(ctx, "01/06/2024", edits); err != nil {
		t.Fatalf("save day: %v", err)
	}

	daily, _ := st.LoadLedger(ctx)
	bucket := daily["01/06/2024"]
	if len(bucket) != 3 {
		t.Fatalf("bucket size = %d, want 3 (2 edits + income)", len(bucket))
	}
	if bucket["coffee"].Total != 2 {
		t.Errorf("coffee total = %v, want 2", bucket["coffee"].Total)
	}
	if _, ok := bucket[core.IncomeKey]; !ok {
		t.Error("income entry should be carried over")
	}
}

func TestDay(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.Day(context.Background(), "01/06/2024")
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (income excluded)", len(rows))
	}
	if rows[0].Name != "coffee" {
		t.Errorf("rows[0].Name = %q", rows[0].Name)
	}

	// Unknown day is an empty edit list, not an error.
	rows, err = svc.Day(context.Background(), "25/12/2024")
	if err != nil {
		t.Fatalf("unknown day: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveCatalogItem(ctx, "bread", "1", "2,40", "food"); err != nil {
		t.Fatalf("save catalog item: %v", err)
	}

	catalog, _ := st.LoadCatalog(ctx)
	if catalog["bread"].Total != 2.4 {
		t.Errorf("bread = %+v", catalog["bread"])
	}

	if err := svc.RemoveCatalogItem(ctx, "bread"); err != nil {
		t.Fatalf("remove catalog item: %v", err)
	}
	catalog, _ = st.LoadCatalog(ctx)
	if _, ok := catalog["bread"]; ok {
		t.Error("bread should be removed from catalog")
	}

	// Removing an unknown name is a no-op.
	if err := svc.RemoveCatalogItem(ctx, "nope"); err != nil {
		t.Fatalf("remove unknown: %v", err)
	}
}

func TestSaveCatalogItemInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveCatalogItem(ctx, "", "1", "2", "food"); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("empty name err = %v", err)
	}
	if err := svc.SaveCatalogItem(ctx, "bad", "-1", "2", "food"); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestSummaryAndSavings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sum, err := svc.Summary(ctx, ledger.Range{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 3 {
		t.Errorf("total = %v, want 3 (income excluded)", sum.Total)
	}

	savings, err := svc.Savings(ctx)
	if err != nil {
		t.Fatalf("savings: %v", err)
	}
	month := savings.Months["2024-06"]
	if month.Savings != 19997 {
		t.Errorf("savings = %v, want 19997", month.Savings)
	}
}

func TestReport(t *testing.T) {
	svc, _ := newTestService(t)

	rows, cats, err := svc.Report(context.Background(), ledger.Range{})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "coffee" {
		t.Errorf("rows = %+v", rows)
	}
	if len(cats) != 1 || cats[0].Category != core.Food {
		t.Errorf("cats = %+v", cats)
	}
}
