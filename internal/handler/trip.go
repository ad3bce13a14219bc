package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripResponse is the whole trip plus its day count.
// DayCount is omitted when the dates do not form a range.
type TripResponse struct {
	domain.Trip
	DayCount      *int   `json:"dayCount,omitempty"`
	DayCountError string `json:"dayCountError,omitempty"`
}

// DayCountResponse is the body of GET /trip/day-count.
type DayCountResponse struct {
	Days int `json:"days"`
}

// GetTrip handles GET /trip.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	ov := s.trip.Overview(r.Context())
	writeJSON(w, http.StatusOK, TripResponse{Trip: ov.Trip, DayCount: ov.DayCount, DayCountError: ov.DayCountError})
}

// ResetTrip handles DELETE /trip.
// The saved trip is erased and the first-run defaults come back.
func (s *Server) ResetTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.backup.Reset(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripMeta handles GET /trip/meta.
func (s *Server) GetTripMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.trip.Get(r.Context()))
}

// UpdateTripMeta handles PUT /trip/meta.
// The body replaces every single-value field; omitted fields become empty.
func (s *Server) UpdateTripMeta(w http.ResponseWriter, r *http.Request) {
	var meta domain.TripMeta
	if err := decodeJSON(r, &meta); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	updated, err := s.trip.Update(r.Context(), meta)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GetDayCount handles GET /trip/day-count.
// Returns 422 invalid_range when the dates do not form a range.
func (s *Server) GetDayCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.trip.DayCount(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DayCountResponse{Days: n})
}
