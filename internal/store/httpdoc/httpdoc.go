// Package httpdoc talks to a remote flat document store over HTTP. A
// GET returns the whole document wrapped in {"data": ...}; a PUT with an
// empty trailing id overwrites the whole collection.
package httpdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/store"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) LoadLedger(ctx context.Context) (core.DailyLedger, error) {
	var ledger core.DailyLedger
	if err := c.get(ctx, store.ResourceDaily, &ledger); err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = core.DailyLedger{}
	}
	return ledger, nil
}

func (c *Client) SaveLedger(ctx context.Context, ledger core.DailyLedger) error {
	return c.put(ctx, store.ResourceDaily, ledger)
}

func (c *Client) LoadCatalog(ctx context.Context) (core.FrequentCatalog, error) {
	var catalog core.FrequentCatalog
	if err := c.get(ctx, store.ResourceFrequent, &catalog); err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = core.FrequentCatalog{}
	}
	return catalog, nil
}

func (c *Client) SaveCatalog(ctx context.Context, catalog core.FrequentCatalog) error {
	return c.put(ctx, store.ResourceFrequent, catalog)
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) get(ctx context.Context, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+resource, nil)
	if err != nil {
		return &store.TransportError{Op: "get", Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &store.TransportError{Op: "get", Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &store.TransportError{
			Op:       "get",
			Resource: resource,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status"),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &store.TransportError{Op: "get", Resource: resource, Err: fmt.Errorf("decode body: %w", err)}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &store.TransportError{Op: "get", Resource: resource, Err: fmt.Errorf("decode document: %w", err)}
	}
	return nil
}

// put overwrites the whole collection. The trailing empty id matches the
// store's convention of addressing the collection rather than a row.
func (c *Client) put(ctx context.Context, resource string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &store.TransportError{Op: "put", Resource: resource, Err: fmt.Errorf("encode document: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+resource+"/", bytes.NewReader(body))
	if err != nil {
		return &store.TransportError{Op: "put", Resource: resource, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &store.TransportError{Op: "put", Resource: resource, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &store.TransportError{
			Op:       "put",
			Resource: resource,
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("unexpected status"),
		}
	}
	return nil
}
