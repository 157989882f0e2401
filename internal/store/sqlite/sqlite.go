// Package sqlite persists the two documents in a local SQLite database.
// Each document is one row; every overwrite bumps its revision.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) LoadLedger(ctx context.Context) (core.DailyLedger, error) {
	var ledger core.DailyLedger
	if err := r.loadDocument(ctx, store.ResourceDaily, &ledger); err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = core.DailyLedger{}
	}
	return ledger, nil
}

func (r *Repository) SaveLedger(ctx context.Context, ledger core.DailyLedger) error {
	return r.saveDocument(ctx, store.ResourceDaily, ledger)
}

func (r *Repository) LoadCatalog(ctx context.Context) (core.FrequentCatalog, error) {
	var catalog core.FrequentCatalog
	if err := r.loadDocument(ctx, store.ResourceFrequent, &catalog); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = core.FrequentCatalog{}
	}
	return catalog, nil
}

func (r *Repository) SaveCatalog(ctx context.Context, catalog core.FrequentCatalog) error {
	return r.saveDocument(ctx, store.ResourceFrequent, catalog)
}

// Revision returns the current revision of a document, zero if it has
// never been written.
func (r *Repository) Revision(ctx context.Context, name string) (int64, error) {
	var revision int64
	err := r.db.QueryRowContext(ctx,
		`SELECT revision FROM documents WHERE name = ?`, name).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, &store.TransportError{Op: "revision", Resource: name, Err: err}
	}
	return revision, nil
}

func (r *Repository) loadDocument(ctx context.Context, name string, out any) error {
	var body string
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return &store.TransportError{Op: "load", Resource: name, Err: err}
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return &store.TransportError{Op: "load", Resource: name, Err: fmt.Errorf("decode document: %w", err)}
	}
	return nil
}

func (r *Repository) saveDocument(ctx context.Context, name string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &store.TransportError{Op: "save", Resource: name, Err: fmt.Errorf("encode document: %w", err)}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			revision = documents.revision + 1,
			updated_at = excluded.updated_at`,
		name, string(body), time.Now().UTC())
	if err != nil {
		return &store.TransportError{Op: "save", Resource: name, Err: err}
	}

	slog.DebugContext(ctx, "Document saved", "document", name, "bytes", len(body))
	return nil
}
