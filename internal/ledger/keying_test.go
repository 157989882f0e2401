package ledger

import (
	"testing"

	"kharcha/internal/core"
)

func TestResolveKeyUnusedName(t *testing.T) {
	bucket := core.DayBucket{}
	if got := ResolveKey("coffee", 50, bucket); got != "coffee" {
		t.Errorf("ResolveKey = %q, want %q", got, "coffee")
	}
}

func TestResolveKeySamePriceMerges(t *testing.T) {
	bucket := core.DayBucket{"coffee": core.NewExpense(2, 50, core.Food)}
	if got := ResolveKey("coffee", 50, bucket); got != "coffee" {
		t.Errorf("ResolveKey = %q, want %q", got, "coffee")
	}
}

func TestResolveKeyDifferentPriceProbes(t *testing.T) {
	bucket := core.DayBucket{"coffee": core.NewExpense(2, 50, core.Food)}
	if got := ResolveKey("coffee", 80, bucket); got != "coffee_1" {
		t.Errorf("ResolveKey = %q, want %q", got, "coffee_1")
	}
}

func TestResolveKeyProbesUntilMatchingPrice(t *testing.T) {
	bucket := core.DayBucket{
		"coffee":   core.NewExpense(2, 50, core.Food),
		"coffee_1": core.NewExpense(1, 80, core.Food),
		"coffee_2": core.NewExpense(1, 90, core.Food),
	}
	if got := ResolveKey("coffee", 80, bucket); got != "coffee_1" {
		t.Errorf("ResolveKey = %q, want %q", got, "coffee_1")
	}
	if got := ResolveKey("coffee", 70, bucket); got != "coffee_3" {
		t.Errorf("ResolveKey = %q, want %q", got, "coffee_3")
	}
}

func TestResolveKeyDeterministic(t *testing.T) {
	bucket := core.DayBucket{
		"coffee":   core.NewExpense(2, 50, core.Food),
		"coffee_1": core.NewExpense(1, 80, core.Food),
	}
	first := ResolveKey("coffee", 70, bucket)
	for i := 0; i < 10; i++ {
		if got := ResolveKey("coffee", 70, bucket); got != first {
			t.Fatalf("ResolveKey not deterministic: %q then %q", first, got)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"coffee", "coffee"},
		{"coffee_1", "coffee"},
		{"coffee_12", "coffee"},
		{"green_tea", "green_tea"},
		{"green_tea_2", "green_tea"},
		{"_1", "_1"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.key); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
