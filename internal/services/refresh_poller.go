package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kharcha/internal/store"
)

// RefreshPollerConfig holds configuration for the refresh poller
type RefreshPollerConfig struct {
	// Interval is how often to reload the documents (default: 10s)
	Interval time.Duration
}

// DefaultRefreshPollerConfig returns sensible defaults
func DefaultRefreshPollerConfig() RefreshPollerConfig {
	return RefreshPollerConfig{
		Interval: 10 * time.Second,
	}
}

// RefreshPoller periodically reloads the ledger and catalog from the
// document store and keeps the latest snapshot available. Writes made
// by other processes against the same store become visible on the next
// poll.
type RefreshPoller struct {
	service *LedgerService
	config  RefreshPollerConfig

	// OnRefresh, when set, runs after every successful reload.
	OnRefresh func(store.Documents)

	snapMu   sync.RWMutex
	snapshot store.Documents
	loadedAt time.Time

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewRefreshPoller(service *LedgerService, config RefreshPollerConfig) *RefreshPoller {
	if config.Interval <= 0 {
		config.Interval = DefaultRefreshPollerConfig().Interval
	}
	return &RefreshPoller{
		service: service,
		config:  config,
	}
}

// Start begins the polling loop. Returns an error if already running.
func (p *RefreshPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("refresh poller is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	// Load immediately so the first snapshot is available at startup.
	p.refresh(ctx)

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Refresh poller started",
		"interval", p.config.Interval)

	return nil
}

// Stop gracefully stops the poller and waits for completion.
func (p *RefreshPoller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Refresh poller stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Refresh poller stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the poller is currently running
func (p *RefreshPoller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Snapshot returns the most recently loaded documents and when they
// were loaded. The zero time means no load has succeeded yet.
func (p *RefreshPoller) Snapshot() (store.Documents, time.Time) {
	p.snapMu.RLock()
	defer p.snapMu.RUnlock()
	return p.snapshot, p.loadedAt
}

func (p *RefreshPoller) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *RefreshPoller) refresh(ctx context.Context) {
	docs, err := p.service.LoadAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to refresh documents", "error", err)
		return
	}

	p.snapMu.Lock()
	p.snapshot = docs
	p.loadedAt = time.Now()
	p.snapMu.Unlock()

	if p.OnRefresh != nil {
		p.OnRefresh(docs)
	}

	slog.DebugContext(ctx, "Documents refreshed",
		"days", len(docs.Ledger),
		"frequent_items", len(docs.Catalog))
}
