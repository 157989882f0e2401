package http

import (
	"net/http"
	"sort"
	"strings"
)

type frequentItemPayload struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
	Category string  `json:"category"`
}

type frequentUpsertPayload struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// handleFrequent manages the frequent catalog. GET lists templates
// sorted by name, POST upserts one, DELETE removes one by name.
func (s *Server) handleFrequent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		catalog, err := s.service.Catalog(r.Context())
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		items := make([]frequentItemPayload, 0, len(catalog))
		for name, item := range catalog {
			items = append(items, frequentItemPayload{
				Name:     name,
				Quantity: item.Quantity,
				Price:    item.Price,
				Total:    item.Total,
				Category: string(item.Category),
			})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		s.respondJSON(w, r, http.StatusOK, items)

	case http.MethodPost:
		var in frequentUpsertPayload
		if err := decodeBody(r, &in); err != nil {
			s.respondError(w, r, err)
			return
		}
		err := s.service.SaveCatalogItem(r.Context(), sanitizeInput(in.Name), in.Quantity, in.Price, in.Category)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusCreated, nil)

	case http.MethodDelete:
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if err := s.service.RemoveCatalogItem(r.Context(), name); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, r, http.StatusOK, nil)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}
