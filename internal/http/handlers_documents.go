package http

import (
	"net/http"

	"kharcha/internal/core"
)

// dataEnvelope wraps whole-document responses in the shape the
// front-end expects from its document store.
type dataEnvelope struct {
	Data any `json:"data"`
}

// handleDailyRecords serves the daily ledger as one document. GET wraps
// the document in a data envelope, PUT replaces it with the raw body.
func (s *Server) handleDailyRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		daily, err := s.service.Ledger(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, dataEnvelope{Data: daily})

	case http.MethodPut:
		var daily core.DailyLedger
		if err := decodeBody(r, &daily); err != nil {
			s.respondError(w, r, err)
			return
		}
		if daily == nil {
			daily = core.DailyLedger{}
		}
		if err := s.service.ReplaceLedger(r.Context(), daily); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.invalidateReadCaches()
		s.respondJSON(w, r, http.StatusOK, daily)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

// handleFrequentRecords serves the frequent catalog as one document.
func (s *Server) handleFrequentRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		catalog, err := s.service.Catalog(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, dataEnvelope{Data: catalog})

	case http.MethodPut:
		var catalog core.FrequentCatalog
		if err := decodeBody(r, &catalog); err != nil {
			s.respondError(w, r, err)
			return
		}
		if catalog == nil {
			catalog = core.FrequentCatalog{}
		}
		if err := s.service.ReplaceCatalog(r.Context(), catalog); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, catalog)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}
