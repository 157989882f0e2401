// Package store defines the document store port: whole-document reads
// and writes of the daily ledger and the frequent catalog.
package store

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"kharcha/internal/core"
)

// Resource names of the two documents a store holds.
const (
	ResourceDaily    = "dailyRecords"
	ResourceFrequent = "frequentRecords"
)

// DocumentStore is the port every backend implements. Reads return the
// whole document; writes overwrite it. There is no partial update.
type DocumentStore interface {
	LoadLedger(ctx context.Context) (core.DailyLedger, error)
	SaveLedger(ctx context.Context, ledger core.DailyLedger) error
	LoadCatalog(ctx context.Context) (core.FrequentCatalog, error)
	SaveCatalog(ctx context.Context, catalog core.FrequentCatalog) error
}

// Documents bundles both documents for call sites that need a full
// snapshot.
type Documents struct {
	Ledger  core.DailyLedger
	Catalog core.FrequentCatalog
}

// TransportError marks a failed read or write against the backing
// store. Status is the HTTP status when one exists, zero otherwise.
type TransportError struct {
	Op       string
	Resource string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.Resource, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// LoadAll fetches both documents concurrently and returns the combined
// snapshot. Either failure fails the whole load.
func LoadAll(ctx context.Context, s DocumentStore) (Documents, error) {
	var docs Documents
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ledger, err := s.LoadLedger(ctx)
		if err != nil {
			return err
		}
		docs.Ledger = ledger
		return nil
	})
	g.Go(func() error {
		catalog, err := s.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		docs.Catalog = catalog
		return nil
	})
	if err := g.Wait(); err != nil {
		return Documents{}, err
	}
	return docs, nil
}
