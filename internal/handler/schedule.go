package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DayResponse is one itinerary day with the weekday of its date.
type DayResponse struct {
	domain.ItineraryDay
	Weekday string `json:"weekday,omitempty"`
}

// AddItemResponse is the day after a stop was added and where the stop went.
type AddItemResponse struct {
	Day   DayResponse `json:"day"`
	Index int         `json:"index"`
}

// ListDays handles GET /schedule.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.daysToResponse(s.schedule.List(r.Context())))
}

// AddDay handles POST /schedule/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	days, err := s.schedule.AddDay(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.daysToResponse(days))
}

// RemoveLastDay handles DELETE /schedule/days/last.
func (s *Server) RemoveLastDay(w http.ResponseWriter, r *http.Request) {
	days, err := s.schedule.RemoveLastDay(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.daysToResponse(days))
}

// AddItem handles POST /schedule/days/{day}/items.
// The new stop is a placeholder; clients edit it with UpdateItem.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	dayIdx, ok := pathInt[int](w, r, "day")
	if !ok {
		return
	}

	day, at, err := s.schedule.AddItem(r.Context(), dayIdx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AddItemResponse{Day: s.dayToResponse(day), Index: at})
}

// UpdateItem handles PUT /schedule/days/{day}/items/{item}.
// The day comes back re-sorted, so item indexes may have moved.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	dayIdx, ok := pathInt[int](w, r, "day")
	if !ok {
		return
	}
	itemIdx, ok := pathInt[int](w, r, "item")
	if !ok {
		return
	}
	var item domain.ItineraryItem
	if err := decodeJSON(r, &item); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	day, err := s.schedule.UpdateItem(r.Context(), dayIdx, itemIdx, item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.dayToResponse(day))
}

// DeleteItem handles DELETE /schedule/days/{day}/items/{item}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	dayIdx, ok := pathInt[int](w, r, "day")
	if !ok {
		return
	}
	itemIdx, ok := pathInt[int](w, r, "item")
	if !ok {
		return
	}

	day, err := s.schedule.DeleteItem(r.Context(), dayIdx, itemIdx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.dayToResponse(day))
}

func (s *Server) dayToResponse(d domain.ItineraryDay) DayResponse {
	if d.Items == nil {
		d.Items = []domain.ItineraryItem{}
	}
	return DayResponse{ItineraryDay: d, Weekday: s.schedule.Weekday(d.Date)}
}

func (s *Server) daysToResponse(days []domain.ItineraryDay) []DayResponse {
	out := make([]DayResponse, len(days))
	for i, d := range days {
		out[i] = s.dayToResponse(d)
	}
	return out
}
