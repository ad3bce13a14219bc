package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// FlightStore is the part of the Trip Store the bookings tab needs.
type FlightStore interface {
	Flights() []domain.Flight
	UpdateFlights(ctx context.Context, fn func([]domain.Flight) ([]domain.Flight, error)) ([]domain.Flight, error)
}

// FlightService implements the bookings tab. Flights are addressed by index.
type FlightService struct {
	store FlightStore
}

// NewFlightService constructs a FlightService backed by the provided store.
func NewFlightService(s FlightStore) *FlightService {
	return &FlightService{store: s}
}

// List returns every flight in order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FlightService) List(_ context.Context) []domain.Flight {
	flights := s.store.Flights()
	if flights == nil {
		return []domain.Flight{}
	}
	return flights
}

// Add appends a flight and returns the new list.
func (s *FlightService) Add(ctx context.Context, f domain.Flight) ([]domain.Flight, error) {
	flights, err := s.store.UpdateFlights(ctx, func(flights []domain.Flight) ([]domain.Flight, error) {
		return append(flights, f), nil
	})
	if err != nil {
		return flights, fmt.Errorf("service.FlightService.Add: %w", err)
	}
	return flights, nil
}

// Update replaces the flight at index.
// Returns domain.ErrNotFound if index is out of range.
func (s *FlightService) Update(ctx context.Context, index int, f domain.Flight) ([]domain.Flight, error) {
	flights, err := s.store.UpdateFlights(ctx, func(flights []domain.Flight) ([]domain.Flight, error) {
		if err := checkIndex("flight", index, len(flights)); err != nil {
			return nil, err
		}
		flights[index] = f
		return flights, nil
	})
	if err != nil {
		return flights, fmt.Errorf("service.FlightService.Update: %w", err)
	}
	return flights, nil
}

// Delete removes the flight at index. Removing legs below two is allowed;
// only a fresh load replaces such a list with the defaults.
// Returns domain.ErrNotFound if index is out of range.
func (s *FlightService) Delete(ctx context.Context, index int) ([]domain.Flight, error) {
	flights, err := s.store.UpdateFlights(ctx, func(flights []domain.Flight) ([]domain.Flight, error) {
		if err := checkIndex("flight", index, len(flights)); err != nil {
			return nil, err
		}
		return slices.Delete(flights, index, index+1), nil
	})
	if err != nil {
		return flights, fmt.Errorf("service.FlightService.Delete: %w", err)
	}
	return flights, nil
}
