package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
	"kharcha/internal/services"
	"kharcha/internal/store"
)

// respondJSON writes v as a JSON response with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to encode response",
			"url", r.URL.Path, "error", err)
	}
}

type errorPayload struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP status codes.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrBadDate), errors.Is(err, ledger.ErrUnknownField):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownFrequentItem):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidQuantity),
		errors.Is(err, core.ErrInvalidPrice),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory):
		status = http.StatusUnprocessableEntity
	case store.IsTransport(err):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		s.logger.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "status", status, "error", err)
	} else {
		s.logger.WarnContext(r.Context(), "Request rejected",
			"method", r.Method, "url", r.URL.Path, "status", status, "error", err)
	}

	s.respondJSON(w, r, status, errorPayload{Error: err.Error()})
}

// methodNotAllowed writes a 405 with the Allow header set.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// parseRange reads optional from/to query parameters as day keys. An
// absent bound stays open.
func parseRange(r *http.Request) (ledger.Range, error) {
	var rng ledger.Range
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := core.ParseDay(v)
		if err != nil {
			return ledger.Range{}, err
		}
		rng.From = t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := core.ParseDay(v)
		if err != nil {
			return ledger.Range{}, err
		}
		rng.To = t
	}
	return rng, nil
}

// rangeKey builds a cache key for a date range.
func rangeKey(rng ledger.Range) string {
	from, to := "open", "open"
	if !rng.From.IsZero() {
		from = core.FormatDay(rng.From)
	}
	if !rng.To.IsZero() {
		to = core.FormatDay(rng.To)
	}
	return from + ".." + to
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
