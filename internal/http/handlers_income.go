package http

import (
	"fmt"
	"net/http"
	"time"

	"kharcha/internal/core"
)

type incomePayload struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

// handleIncome records a month's income. The month comes as a YYYY-MM
// key, the amount as a raw string so decimal commas survive.
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var in incomePayload
	if err := decodeBody(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	month, err := time.Parse("2006-01", in.Month)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("month %q: %w", in.Month, core.ErrBadDate))
		return
	}

	if err := s.service.SetIncome(r.Context(), month, in.Amount); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.invalidateReadCaches()
	s.respondJSON(w, r, http.StatusOK, nil)
}
