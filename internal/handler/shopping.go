package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ListShopping handles GET /shopping.
// With ?grouped=true the items come grouped by category in display order.
func (s *Server) ListShopping(w http.ResponseWriter, r *http.Request) {
	var grouped *bool
	if err := queryParam(r, "grouped", &grouped); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	if grouped != nil && *grouped {
		writeJSON(w, http.StatusOK, s.shopping.Grouped(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, s.shopping.List(r.Context()))
}

// AddShoppingItem handles POST /shopping.
func (s *Server) AddShoppingItem(w http.ResponseWriter, r *http.Request) {
	var item domain.ShoppingItem
	if err := decodeJSON(r, &item); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.shopping.Add(r.Context(), item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateShoppingItem handles PUT /shopping/{id}.
func (s *Server) UpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt[int64](w, r, "id")
	if !ok {
		return
	}
	var item domain.ShoppingItem
	if err := decodeJSON(r, &item); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	updated, err := s.shopping.Update(r.Context(), id, item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleShoppingItem handles POST /shopping/{id}/toggle.
func (s *Server) ToggleShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt[int64](w, r, "id")
	if !ok {
		return
	}

	item, err := s.shopping.ToggleDone(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteShoppingItem handles DELETE /shopping/{id}.
func (s *Server) DeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt[int64](w, r, "id")
	if !ok {
		return
	}

	if err := s.shopping.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
