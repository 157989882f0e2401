package memory

import (
	"context"
	"testing"

	"kharcha/internal/core"
	ports "kharcha/internal/sheets"
)

func TestAppendDayEntries(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.AppendDayEntries(ctx, "01/06/2024", []ports.DayEntry{
		{Date: "01/06/2024", Name: "coffee", Category: core.Food, Quantity: 2, Price: 1.5, Total: 3},
		{Date: "01/06/2024", Name: "bus", Category: core.Travel, Quantity: 1, Price: 2, Total: 2},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1-2" {
		t.Errorf("ref = %q, want mem:1-2", ref)
	}

	ref, err = s.AppendDayEntries(ctx, "02/06/2024", []ports.DayEntry{
		{Date: "02/06/2024", Name: "cinema", Category: core.Entertainment, Quantity: 1, Price: 12, Total: 12},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:3-3" {
		t.Errorf("ref = %q, want mem:3-3", ref)
	}

	rows := s.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[2].Name != "cinema" {
		t.Errorf("rows[2].Name = %q, want cinema", rows[2].Name)
	}
}

func TestAppendDayEntriesEmpty(t *testing.T) {
	s := New()
	ref, err := s.AppendDayEntries(context.Background(), "01/06/2024", nil)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "" {
		t.Errorf("ref = %q, want empty", ref)
	}
	if len(s.Rows()) != 0 {
		t.Errorf("rows = %d, want 0", len(s.Rows()))
	}
}

func TestEntriesFromBucket(t *testing.T) {
	bucket := core.DayBucket{
		"tea_1": {Quantity: 2, Price: 20, Total: 40, Category: core.Food},
	}
	rows := ports.EntriesFromBucket("01/06/2024", bucket, func(k string) string { return "tea" })
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Name != "tea" || rows[0].Total != 40 {
		t.Errorf("row = %+v", rows[0])
	}
}
