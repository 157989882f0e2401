package backend

import (
	"context"
	"testing"

	"kharcha/internal/config"
)

func TestTypeIsValid(t *testing.T) {
	for _, typ := range []Type{MemoryBackend, SQLiteBackend, HTTPBackend} {
		if !typ.IsValid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if Type("redis").IsValid() {
		t.Errorf("unknown type reported valid")
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:  "http",
		StoreBaseURL: "http://records.local",
		SQLiteDBPath: "./data/test.db",
	})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != HTTPBackend {
		t.Errorf("Type = %s, want http", cfg.Type)
	}
	if cfg.StoreBaseURL != "http://records.local" {
		t.Errorf("StoreBaseURL = %q", cfg.StoreBaseURL)
	}
}

func TestFromAppConfigRejectsUnknownBackend(t *testing.T) {
	if _, err := FromAppConfig(&config.Config{DataBackend: "redis"}); err == nil {
		t.Errorf("expected error for unknown backend")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory ok", Config{Type: MemoryBackend}, false},
		{"sqlite needs path", Config{Type: SQLiteBackend}, true},
		{"sqlite ok", Config{Type: SQLiteBackend, SQLiteDBPath: "./x.db"}, false},
		{"http needs url", Config{Type: HTTPBackend}, true},
		{"http ok", Config{Type: HTTPBackend, StoreBaseURL: "http://x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.Create(context.Background(), Config{Type: MemoryBackend, DataDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if result.Store == nil {
		t.Fatalf("Store is nil")
	}
	ledger, err := result.Store.LoadLedger(context.Background())
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("fresh memory backend not empty: %v", ledger)
	}
}
