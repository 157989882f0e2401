package http

import (
	"net/http"

	"kharcha/internal/ledger"
)

// reportPayload joins the merged item rows with per-category shares.
type reportPayload struct {
	Items      []ledger.MergedRow   `json:"items"`
	Categories []ledger.CategoryRow `json:"categories"`
}

// handleSummary aggregates expense totals by category and month over an
// optional from/to range.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := rangeKey(rng)
	if sum, found := s.summaryCache.Get(key); found {
		s.respondJSON(w, r, http.StatusOK, sum)
		return
	}

	sum, err := s.service.Summary(r.Context(), rng)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.summaryCache.Set(key, sum)
	s.respondJSON(w, r, http.StatusOK, sum)
}

// handleReport returns merged per-item rows and category shares.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	key := rangeKey(rng)
	if report, found := s.reportCache.Get(key); found {
		s.respondJSON(w, r, http.StatusOK, report)
		return
	}

	rows, cats, err := s.service.Report(r.Context(), rng)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	report := reportPayload{Items: rows, Categories: cats}
	s.reportCache.Set(key, report)
	s.respondJSON(w, r, http.StatusOK, report)
}

// handleSavings returns per-month income, expense and savings for the
// whole ledger.
func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if report, found := s.savingsCache.Get("all"); found {
		s.respondJSON(w, r, http.StatusOK, report)
		return
	}

	report, err := s.service.Savings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.savingsCache.Set("all", report)
	s.respondJSON(w, r, http.StatusOK, report)
}
