package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	got, err := ParseDay("05/06/2024")
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	want := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDay = %v, want %v", got, want)
	}
}

func TestParseDayMalformed(t *testing.T) {
	cases := []string{"", "2024-06-05", "5/6", "aa/06/2024", "32/01/2024", "01/13/2024", "01/00/2024"}
	for _, key := range cases {
		if _, err := ParseDay(key); !errors.Is(err, ErrBadDate) {
			t.Errorf("ParseDay(%q) error = %v, want ErrBadDate", key, err)
		}
	}
}

func TestFormatDayRoundTrip(t *testing.T) {
	key := "01/06/2024"
	parsed, err := ParseDay(key)
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	if got := FormatDay(parsed); got != key {
		t.Errorf("FormatDay = %q, want %q", got, key)
	}
}

func TestMonthKey(t *testing.T) {
	got := MonthKey(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC))
	if got != "2024-06" {
		t.Errorf("MonthKey = %q, want %q", got, "2024-06")
	}
}

func TestMonthKeyOf(t *testing.T) {
	got, err := MonthKeyOf("15/11/2024")
	if err != nil {
		t.Fatalf("MonthKeyOf returned error: %v", err)
	}
	if got != "2024-11" {
		t.Errorf("MonthKeyOf = %q, want %q", got, "2024-11")
	}
}

func TestFirstOfMonth(t *testing.T) {
	got := FirstOfMonth(time.Date(2024, time.June, 23, 0, 0, 0, 0, time.UTC))
	if got != "01/06/2024" {
		t.Errorf("FirstOfMonth = %q, want %q", got, "01/06/2024")
	}
}

func TestSortedDates(t *testing.T) {
	ledger := DailyLedger{
		"02/01/2025": {},
		"15/11/2024": {},
		"01/06/2024": {},
		"30/06/2024": {},
	}
	got, err := ledger.SortedDates()
	if err != nil {
		t.Fatalf("SortedDates returned error: %v", err)
	}
	want := []string{"01/06/2024", "30/06/2024", "15/11/2024", "02/01/2025"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedDates = %v, want %v", got, want)
	}
}

func TestSortedDatesMalformedKey(t *testing.T) {
	ledger := DailyLedger{"not-a-date": {}}
	if _, err := ledger.SortedDates(); !errors.Is(err, ErrBadDate) {
		t.Errorf("SortedDates error = %v, want ErrBadDate", err)
	}
}

func TestLedgerMarshalChronological(t *testing.T) {
	ledger := DailyLedger{
		"15/11/2024": {"tea": NewExpense(1, 20, Food)},
		"01/06/2024": {"coffee": NewExpense(2, 50, Food)},
	}
	raw, err := json.Marshal(ledger)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var keys []string
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		t.Fatalf("reading opening token: %v", err)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			t.Fatalf("reading key token: %v", err)
		}
		keys = append(keys, tok.(string))
		var bucket DayBucket
		if err := dec.Decode(&bucket); err != nil {
			t.Fatalf("decoding bucket: %v", err)
		}
	}
	want := []string{"01/06/2024", "15/11/2024"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("marshaled key order = %v, want %v", keys, want)
	}
}

func TestLedgerMarshalRoundTrip(t *testing.T) {
	ledger := DailyLedger{
		"01/06/2024": {"coffee": NewExpense(2, 50, Food), "income": NewIncome(20000)},
	}
	raw, err := json.Marshal(ledger)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var back DailyLedger
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !reflect.DeepEqual(back, ledger) {
		t.Errorf("round trip = %v, want %v", back, ledger)
	}
}
