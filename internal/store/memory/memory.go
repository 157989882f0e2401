// Package memory is an in-process document store, optionally seeded
// from JSON files on disk. It backs tests and the default dev setup.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"kharcha/internal/core"
)

type Store struct {
	mu      sync.Mutex
	ledger  core.DailyLedger
	catalog core.FrequentCatalog
}

func New() *Store {
	return &Store{
		ledger:  core.DailyLedger{},
		catalog: core.FrequentCatalog{},
	}
}

// NewFromFiles seeds the store from base/daily_records.json and
// base/frequent_records.json when present. Missing or malformed files
// leave the corresponding document empty.
func NewFromFiles(base string) *Store {
	s := New()
	readJSON(filepath.Join(base, "daily_records.json"), &s.ledger)
	readJSON(filepath.Join(base, "frequent_records.json"), &s.catalog)
	return s
}

func (s *Store) LoadLedger(_ context.Context) (core.DailyLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone(), nil
}

func (s *Store) SaveLedger(_ context.Context, ledger core.DailyLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = ledger.Clone()
	return nil
}

func (s *Store) LoadCatalog(_ context.Context) (core.FrequentCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone(), nil
}

func (s *Store) SaveCatalog(_ context.Context, catalog core.FrequentCatalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog.Clone()
	return nil
}

func readJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, out)
}
