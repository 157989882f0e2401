package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DayFormat is the fixed date-key format of the ledger: DD/MM/YYYY.
// Keys must be preserved bit-exact; parsing splits on "/" and rebuilds
// the date from locale-independent integer fields.
const DayFormat = "02/01/2006"

// DailyLedger maps a date key (DD/MM/YYYY) to the bucket of entries
// recorded on that date. Serialization is chronological: see MarshalJSON.
type DailyLedger map[string]DayBucket

// ParseDay parses a DD/MM/YYYY ledger key into a UTC midnight time.
func ParseDay(key string) (time.Time, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, key)
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, key)
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, key)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// FormatDay renders a time as a ledger date key.
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

// FirstOfMonth returns the ledger key of the first calendar day of t's month.
func FirstOfMonth(t time.Time) string {
	return FormatDay(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
}

// MonthKey returns the zero-padded YYYY-MM bucket key for a date.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// MonthKeyOf parses a ledger date key and returns its YYYY-MM bucket.
func MonthKeyOf(key string) (string, error) {
	t, err := ParseDay(key)
	if err != nil {
		return "", err
	}
	return MonthKey(t), nil
}

// SortedDates returns the ledger's date keys in ascending chronological
// order. Malformed keys abort the sort with ErrBadDate rather than
// silently misordering the ledger.
func (l DailyLedger) SortedDates() ([]string, error) {
	type dated struct {
		key string
		t   time.Time
	}
	out := make([]dated, 0, len(l))
	for key := range l {
		t, err := ParseDay(key)
		if err != nil {
			return nil, err
		}
		out = append(out, dated{key: key, t: t})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].t.Before(out[j].t) })
	keys := make([]string, len(out))
	for i, d := range out {
		keys[i] = d.key
	}
	return keys, nil
}

// Clone returns a deep copy of the ledger.
func (l DailyLedger) Clone() DailyLedger {
	out := make(DailyLedger, len(l))
	for date, bucket := range l {
		out[date] = bucket.Clone()
	}
	return out
}

// MarshalJSON serializes the ledger with date keys in chronological
// order. The order matters for display and iteration consistency only;
// no reader depends on it semantically. Malformed keys fall back to
// lexical order so a save never fails on serialization alone.
func (l DailyLedger) MarshalJSON() ([]byte, error) {
	keys, err := l.SortedDates()
	if err != nil {
		keys = make([]string, 0, len(l))
		for k := range l {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		body, err := json.Marshal(l[key])
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
