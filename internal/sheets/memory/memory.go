// Package memory provides an in-memory entry appender for tests and
// local runs without spreadsheet credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "kharcha/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []ports.DayEntry
}

var (
	_ ports.EntryAppender = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// AppendDayEntries stores the rows and returns a synthetic range reference.
func (s *Store) AppendDayEntries(_ context.Context, date string, entries []ports.DayEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	first := len(s.rows) + 1
	s.rows = append(s.rows, entries...)
	return fmt.Sprintf("mem:%d-%d", first, len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []ports.DayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.DayEntry(nil), s.rows...)
}
