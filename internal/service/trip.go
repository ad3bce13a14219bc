// Package service contains the tab operations of the trip planner.
// Services validate inputs, enforce business rules, and apply each change as
// a whole-collection replace through the Trip Store. No storage code lives
// here; services depend on small store interfaces, not on a backend.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// MetaStore is the part of the Trip Store the home tab needs.
type MetaStore interface {
	Meta() domain.TripMeta
	SetMeta(ctx context.Context, m domain.TripMeta) error
	Snapshot() domain.Trip
}

// TripService implements the home tab: title, dates, cover and the overview.
type TripService struct {
	store MetaStore
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(s MetaStore) *TripService {
	return &TripService{store: s}
}

// Overview is the whole trip plus its day count.
// DayCount is nil when the dates do not form a range; DayCountError says why.
type Overview struct {
	Trip          domain.Trip
	DayCount      *int
	DayCountError string
}

// Get returns the single-value trip fields.
func (s *TripService) Get(_ context.Context) domain.TripMeta {
	return s.store.Meta()
}

// Overview returns a snapshot of the whole trip with its day count.
func (s *TripService) Overview(_ context.Context) Overview {
	trip := s.store.Snapshot()
	ov := Overview{Trip: trip}
	n, err := domain.DayCount(trip.StartDate, trip.EndDate)
	if err != nil {
		ov.DayCountError = err.Error()
	} else {
		ov.DayCount = &n
	}
	return ov
}

// DayCount returns the inclusive number of days between the trip dates.
// Returns domain.ErrInvalidRange if the dates do not form a range.
func (s *TripService) DayCount(_ context.Context) (int, error) {
	m := s.store.Meta()
	n, err := domain.DayCount(m.StartDate, m.EndDate)
	if err != nil {
		return 0, fmt.Errorf("service.TripService.DayCount: %w", err)
	}
	return n, nil
}

// Update replaces the single-value fields. Dates are stored as given; an
// unusable range only shows up in DayCount.
// Returns domain.ErrUnavailable if the change could not be saved.
func (s *TripService) Update(ctx context.Context, m domain.TripMeta) (domain.TripMeta, error) {
	if err := s.store.SetMeta(ctx, m); err != nil {
		return m, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return m, nil
}
