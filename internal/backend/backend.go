// Package backend selects and constructs the document store
// implementation named by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"kharcha/internal/config"
	"kharcha/internal/log"
	"kharcha/internal/store"
	"kharcha/internal/store/httpdoc"
	"kharcha/internal/store/memory"
	"kharcha/internal/store/sqlite"
)

// Type names a document store implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
	HTTPBackend   Type = "http"
)

// String implements fmt.Stringer
func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend, HTTPBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases the backend's resources.
type CleanupFunc func() error

// Result bundles the constructed store with its cleanup.
type Result struct {
	Store   store.DocumentStore
	Cleanup CleanupFunc
}

// Config holds what each backend needs to come up.
type Config struct {
	Type Type

	// SQLite
	SQLiteDBPath string

	// Remote store
	StoreBaseURL string
	StoreTimeout time.Duration

	// Memory
	DataDirectory string
}

// FromAppConfig converts the application config to a backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}
	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}
	return Config{
		Type:          t,
		SQLiteDBPath:  appConfig.SQLiteDBPath,
		StoreBaseURL:  appConfig.StoreBaseURL,
		StoreTimeout:  appConfig.StoreTimeout,
		DataDirectory: "data",
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case HTTPBackend:
		if c.StoreBaseURL == "" {
			return fmt.Errorf("store base URL is required for http backend")
		}
	}
	return nil
}

// Factory creates document stores based on configuration.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(log.ComponentBackend)}
}

// Create builds the store named by cfg.
func (f *Factory) Create(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case SQLiteBackend:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case HTTPBackend:
		var opts []httpdoc.Option
		if cfg.StoreTimeout > 0 {
			opts = append(opts, httpdoc.WithTimeout(cfg.StoreTimeout))
		}
		client := httpdoc.NewClient(cfg.StoreBaseURL, opts...)
		f.logger.InfoContext(ctx, "Initialized HTTP document store backend",
			"base_url", cfg.StoreBaseURL, "timeout", cfg.StoreTimeout)
		return &Result{Store: client}, nil

	case MemoryBackend:
		dataDir := cfg.DataDirectory
		if dataDir == "" {
			dataDir = "data"
		}
		s := memory.NewFromFiles(dataDir)
		f.logger.InfoContext(ctx, "Initialized memory backend", "data_directory", dataDir)
		return &Result{Store: s}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
