package http

import (
	"net/http"
	"strings"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

// dayEntryPayload is one editable row of a day.
type dayEntryPayload struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
	Category string  `json:"category"`
}

type dayPayload struct {
	Date    string            `json:"date"`
	Entries []dayEntryPayload `json:"entries"`
}

func toDayPayload(date string, rows []ledger.EditedEntry) dayPayload {
	out := dayPayload{Date: date, Entries: make([]dayEntryPayload, 0, len(rows))}
	for _, row := range rows {
		out.Entries = append(out.Entries, dayEntryPayload{
			Name:     row.Name,
			Quantity: row.Item.Quantity,
			Price:    row.Item.Price,
			Total:    row.Item.Total,
			Category: string(row.Item.Category),
		})
	}
	return out
}

func fromDayPayload(in dayPayload) []ledger.EditedEntry {
	edits := make([]ledger.EditedEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		edits = append(edits, ledger.EditedEntry{
			Name: sanitizeInput(e.Name),
			Item: core.LineItem{
				Quantity: e.Quantity,
				Price:    e.Price,
				Total:    e.Quantity * e.Price,
				Category: core.NormalizeCategory(e.Category),
			},
		})
	}
	return edits
}

// handleDay reads or replaces one day of the ledger. GET takes the date
// as a query parameter, PUT takes the whole day in the body.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		rows, err := s.service.Day(r.Context(), date)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, toDayPayload(date, rows))

	case http.MethodPut:
		var in dayPayload
		if err := decodeBody(r, &in); err != nil {
			s.respondError(w, r, err)
			return
		}
		if err := s.service.SaveDay(r.Context(), in.Date, fromDayPayload(in)); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.invalidateReadCaches()

		rows, err := s.service.Day(r.Context(), in.Date)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, toDayPayload(in.Date, rows))

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

type newItemPayload struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// handleDayItems adds or removes a single entry. POST inserts a
// free-form item, DELETE removes one entry key.
func (s *Server) handleDayItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var in newItemPayload
		if err := decodeBody(r, &in); err != nil {
			s.respondError(w, r, err)
			return
		}
		err := s.service.AddItem(r.Context(), in.Date, sanitizeInput(in.Name), in.Quantity, in.Price, in.Category)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.invalidateReadCaches()
		s.respondJSON(w, r, http.StatusCreated, nil)

	case http.MethodDelete:
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		key := strings.TrimSpace(r.URL.Query().Get("key"))
		if err := s.service.RemoveItem(r.Context(), date, key); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.invalidateReadCaches()
		s.respondJSON(w, r, http.StatusOK, nil)

	default:
		methodNotAllowed(w, http.MethodPost, http.MethodDelete)
	}
}

type catalogUpsertPayload struct {
	Date  string  `json:"date"`
	Name  string  `json:"name"`
	Delta float64 `json:"delta"`
}

// handleDayFrequent bumps a catalog item's quantity in a day bucket.
// A missing delta means one more.
func (s *Server) handleDayFrequent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var in catalogUpsertPayload
	if err := decodeBody(r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}
	if in.Delta == 0 {
		in.Delta = 1
	}

	if err := s.service.AddFromCatalog(r.Context(), in.Date, in.Name, in.Delta); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.invalidateReadCaches()
	s.respondJSON(w, r, http.StatusOK, nil)
}
