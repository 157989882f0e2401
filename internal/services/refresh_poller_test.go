package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"kharcha/internal/store"
)

func TestRefreshPollerLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	poller := NewRefreshPoller(svc, RefreshPollerConfig{Interval: 20 * time.Millisecond})
	ctx := context.Background()

	var refreshes atomic.Int64
	poller.OnRefresh = func(store.Documents) {
		refreshes.Add(1)
	}

	if poller.IsRunning() {
		t.Fatal("poller should not be running before Start")
	}
	if err := poller.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !poller.IsRunning() {
		t.Fatal("poller should be running after Start")
	}
	if err := poller.Start(ctx); err == nil {
		t.Fatal("second Start should fail")
	}

	// The startup refresh runs synchronously.
	docs, loadedAt := poller.Snapshot()
	if loadedAt.IsZero() {
		t.Fatal("snapshot should be loaded at startup")
	}
	if len(docs.Ledger) != 1 {
		t.Errorf("snapshot days = %d, want 1", len(docs.Ledger))
	}
	if refreshes.Load() < 1 {
		t.Error("OnRefresh should have run at startup")
	}

	// Wait for at least one ticker refresh.
	deadline := time.Now().Add(2 * time.Second)
	for refreshes.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if refreshes.Load() < 2 {
		t.Error("expected a periodic refresh")
	}

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := poller.Stop(stopCtx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if poller.IsRunning() {
		t.Error("poller should not be running after Stop")
	}

	// Stopping again is a no-op.
	if err := poller.Stop(stopCtx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestRefreshPollerDefaultInterval(t *testing.T) {
	svc, _ := newTestService(t)
	poller := NewRefreshPoller(svc, RefreshPollerConfig{})
	if poller.config.Interval != 10*time.Second {
		t.Errorf("interval = %v, want 10s", poller.config.Interval)
	}
}
