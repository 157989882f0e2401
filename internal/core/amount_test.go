package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.34", 12.34},
		{"12,34", 12.34},
		{" 50 ", 50},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "NaN", "Inf", "1.2.3"} {
		if _, err := ParseAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", in, err)
		}
	}
}

func TestParseQuantityError(t *testing.T) {
	if _, err := ParseQuantity("x"); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("ParseQuantity error = %v, want ErrInvalidQuantity", err)
	}
}

func TestParsePriceError(t *testing.T) {
	if _, err := ParsePrice("-1"); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("ParsePrice error = %v, want ErrInvalidPrice", err)
	}
}
