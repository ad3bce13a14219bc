package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ExpenseResponse is one entry with its per-person share.
type ExpenseResponse struct {
	domain.ExpenseEntry
	EachShare int64 `json:"eachShare"`
}

// DaySummaryResponse is the expense view of one itinerary day.
type DaySummaryResponse struct {
	Day     string                 `json:"day"`
	Entries []ExpenseResponse      `json:"entries"`
	Totals  []domain.CurrencyTotal `json:"totals"`
}

// ListExpenses handles GET /expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, expensesToResponse(s.expenses.List(r.Context())))
}

// ExpenseSummary handles GET /expenses/summary.
// Every itinerary day is listed, including days without entries.
func (s *Server) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.expenses.Summary(r.Context())
	out := make([]DaySummaryResponse, len(summary))
	for i, d := range summary {
		out[i] = DaySummaryResponse{Day: d.Day, Entries: expensesToResponse(d.Entries), Totals: d.Totals}
	}
	writeJSON(w, http.StatusOK, out)
}

// AddExpense handles POST /expenses.
func (s *Server) AddExpense(w http.ResponseWriter, r *http.Request) {
	var e domain.ExpenseEntry
	if err := decodeJSON(r, &e); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	created, err := s.expenses.Add(r.Context(), e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// UpdateExpense handles PUT /expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt[int64](w, r, "id")
	if !ok {
		return
	}
	var e domain.ExpenseEntry
	if err := decodeJSON(r, &e); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	updated, err := s.expenses.Update(r.Context(), id, e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

// DeleteExpense handles DELETE /expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt[int64](w, r, "id")
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseToResponse(e domain.ExpenseEntry) ExpenseResponse {
	return ExpenseResponse{ExpenseEntry: e, EachShare: e.EachShare()}
}

func expensesToResponse(entries []domain.ExpenseEntry) []ExpenseResponse {
	out := make([]ExpenseResponse, len(entries))
	for i, e := range entries {
		out[i] = expenseToResponse(e)
	}
	return out
}
