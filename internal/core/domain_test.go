package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewExpenseTotal(t *testing.T) {
	item := NewExpense(2, 50, Food)
	if item.Total != 100 {
		t.Errorf("Total = %v, want 100", item.Total)
	}
	if item.Category != Food {
		t.Errorf("Category = %q, want %q", item.Category, Food)
	}
}

func TestNewIncome(t *testing.T) {
	item := NewIncome(20000)
	if item.Quantity != 1 {
		t.Errorf("Quantity = %v, want 1", item.Quantity)
	}
	if item.Total != 20000 {
		t.Errorf("Total = %v, want 20000", item.Total)
	}
	if !item.Category.IsIncome() {
		t.Errorf("Category = %q, want income", item.Category)
	}
}

func TestLineItemValidate(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want error
	}{
		{"valid", NewExpense(1, 10, Food), nil},
		{"negative quantity", LineItem{Quantity: -1, Price: 10, Category: Food}, ErrInvalidQuantity},
		{"nan price", LineItem{Quantity: 1, Price: math.NaN(), Category: Food}, ErrInvalidPrice},
		{"infinite quantity", LineItem{Quantity: math.Inf(1), Price: 10, Category: Food}, ErrInvalidQuantity},
		{"unknown category", LineItem{Quantity: 1, Price: 10, Category: "misc"}, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"food", Food},
		{"  Travel ", Travel},
		{"ENTERTAINMENT", Entertainment},
		{"misc", Others},
		{"", Others},
		{"income", Others},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.raw); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDayBucketCloneIsIndependent(t *testing.T) {
	orig := DayBucket{"coffee": NewExpense(1, 10, Food)}
	clone := orig.Clone()
	clone["coffee"] = NewExpense(5, 10, Food)
	if orig["coffee"].Quantity != 1 {
		t.Errorf("original mutated through clone: quantity = %v", orig["coffee"].Quantity)
	}
}
