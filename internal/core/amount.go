// Package core holds the domain types shared by every other package:
// line items, day buckets, the daily ledger and its date keys.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a user-supplied amount string to a float64.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Empty strings, non-numeric input, negative values, NaN and infinities
// are rejected with ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}
	return f, nil
}

// ParseQuantity parses a quantity string; same rules as ParseAmount but
// reports ErrInvalidQuantity.
func ParseQuantity(s string) (float64, error) {
	q, err := ParseAmount(s)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return q, nil
}

// ParsePrice parses a price string; same rules as ParseAmount but
// reports ErrInvalidPrice.
func ParsePrice(s string) (float64, error) {
	p, err := ParseAmount(s)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return p, nil
}
