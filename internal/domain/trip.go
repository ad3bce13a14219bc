// Package domain contains the core data types for the trip planner.
// Apart from google/uuid it has no dependencies, and it is imported by every other
// internal package (tripstore, service, handler).
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format of TripMeta.StartDate and EndDate.
const DateLayout = "2006-01-02"

// TripMeta holds the single-value fields of a trip shown on the home tab.
// Dates are kept as entered; DayCount reports when they do not form a range.
type TripMeta struct {
	Title     string `json:"tripTitle" yaml:"title"`
	StartDate string `json:"startDate" yaml:"start_date"`
	EndDate   string `json:"endDate" yaml:"end_date"`
	HomeImage string `json:"homeImage" yaml:"home_image"` // data URI or URL
	Headline  string `json:"homeHeadline" yaml:"headline"`
	Subtext   string `json:"homeSubtext" yaml:"subtext"`
}

// Trip is the whole aggregate owned by the Trip Store.
type Trip struct {
	TripMeta `yaml:",inline"`

	Schedule []ItineraryDay `json:"scheduleData" yaml:"schedule"`
	Flights  []Flight       `json:"flights" yaml:"flights"`
	Shopping []ShoppingItem `json:"shoppingList" yaml:"shopping"`
	Expenses []ExpenseEntry `json:"expenseList" yaml:"expenses"`
}

// Clone returns a deep copy of t. Views work on clones and hand the result
// back to the store, so no slice is ever shared with the store's copy.
func (t Trip) Clone() Trip {
	out := t
	out.Schedule = CloneDays(t.Schedule)
	out.Flights = cloneSlice(t.Flights)
	out.Shopping = cloneSlice(t.Shopping)
	out.Expenses = cloneSlice(t.Expenses)
	return out
}

// DayLabels returns the label of every itinerary day in order.
// Expense entries are grouped under these labels.
func (t Trip) DayLabels() []string {
	labels := make([]string, len(t.Schedule))
	for i, d := range t.Schedule {
		labels[i] = d.Label
	}
	return labels
}

// DayCount returns the number of calendar days from start to end, counting
// both endpoints. "2026-02-12".."2026-02-17" is 6.
// Returns ErrInvalidRange if either date fails to parse or end is before start.
func DayCount(start, end string) (int, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0, fmt.Errorf("%w: start date %q", ErrInvalidRange, start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0, fmt.Errorf("%w: end date %q", ErrInvalidRange, end)
	}
	if e.Before(s) {
		return 0, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidRange, end, start)
	}
	// Both parse as UTC midnight, so the difference is a whole number of days.
	return int(e.Sub(s).Hours()/24) + 1, nil
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
