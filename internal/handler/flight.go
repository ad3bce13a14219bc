package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// FlightResponse is one flight leg with its display type filled in.
type FlightResponse struct {
	domain.Flight
	DisplayType string `json:"displayType"`
}

// ListFlights handles GET /flights.
func (s *Server) ListFlights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, flightsToResponse(s.flights.List(r.Context())))
}

// AddFlight handles POST /flights.
func (s *Server) AddFlight(w http.ResponseWriter, r *http.Request) {
	var f domain.Flight
	if err := decodeJSON(r, &f); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	flights, err := s.flights.Add(r.Context(), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, flightsToResponse(flights))
}

// UpdateFlight handles PUT /flights/{index}.
func (s *Server) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt[int](w, r, "index")
	if !ok {
		return
	}
	var f domain.Flight
	if err := decodeJSON(r, &f); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	flights, err := s.flights.Update(r.Context(), index, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flightsToResponse(flights))
}

// DeleteFlight handles DELETE /flights/{index}.
func (s *Server) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt[int](w, r, "index")
	if !ok {
		return
	}

	flights, err := s.flights.Delete(r.Context(), index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, flightsToResponse(flights))
}

func flightsToResponse(flights []domain.Flight) []FlightResponse {
	out := make([]FlightResponse, len(flights))
	for i, f := range flights {
		out[i] = FlightResponse{Flight: f, DisplayType: f.DisplayType(i)}
	}
	return out
}
