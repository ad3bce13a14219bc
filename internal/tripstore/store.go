package tripstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/storage"
)

// Store owns the trip aggregate. Every change updates the in-memory copy
// first and then writes the affected slots through to storage.
//
// All methods are safe for concurrent use; changes are applied one at a time,
// which keeps the single-writer discipline when the store sits behind an
// HTTP server. Getters return copies.
type Store struct {
	slots    storage.Storage
	defaults domain.Trip
	log      *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID

	mu   sync.Mutex
	trip domain.Trip
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fallback and write-failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the time source used to stamp exported backups.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open builds a Store over slots, loading every slot and falling back to the
// matching field of defaults wherever a slot is absent or unusable.
func Open(ctx context.Context, slots storage.Storage, defaults domain.Trip, opts ...Option) *Store {
	s := &Store{
		slots:    slots,
		defaults: defaults.Clone(),
		log:      slog.Default(),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.trip = s.loadAll(ctx)
	return s
}

func (s *Store) loadAll(ctx context.Context) domain.Trip {
	d := s.defaults.Clone()
	return domain.Trip{
		TripMeta: domain.TripMeta{
			Title:     load(ctx, s.slots, KeyTitle, d.Title, s.log),
			StartDate: load(ctx, s.slots, KeyStartDate, d.StartDate, s.log),
			EndDate:   load(ctx, s.slots, KeyEndDate, d.EndDate, s.log),
			HomeImage: load(ctx, s.slots, KeyHomeImage, d.HomeImage, s.log),
			Headline:  load(ctx, s.slots, KeyHeadline, d.Headline, s.log),
			Subtext:   load(ctx, s.slots, KeySubtext, d.Subtext, s.log),
		},
		Schedule: load(ctx, s.slots, KeySchedule, d.Schedule, s.log),
		Flights:  load(ctx, s.slots, KeyFlights, d.Flights, s.log),
		Shopping: load(ctx, s.slots, KeyShopping, d.Shopping, s.log),
		Expenses: load(ctx, s.slots, KeyExpenses, d.Expenses, s.log),
	}
}

// Snapshot returns a deep copy of the whole aggregate.
func (s *Store) Snapshot() domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.Clone()
}

// Meta returns the single-value trip fields.
func (s *Store) Meta() domain.TripMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.TripMeta
}

// Title returns the trip title.
func (s *Store) Title() string { return s.Meta().Title }

// StartDate returns the trip start date as entered.
func (s *Store) StartDate() string { return s.Meta().StartDate }

// EndDate returns the trip end date as entered.
func (s *Store) EndDate() string { return s.Meta().EndDate }

// HomeImage returns the cover image (data URI or URL).
func (s *Store) HomeImage() string { return s.Meta().HomeImage }

// Headline returns the home tab headline.
func (s *Store) Headline() string { return s.Meta().Headline }

// Subtext returns the home tab subtext.
func (s *Store) Subtext() string { return s.Meta().Subtext }

// Schedule returns a copy of the itinerary.
func (s *Store) Schedule() []domain.ItineraryDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneDays(s.trip.Schedule)
}

// Flights returns a copy of the flights list.
func (s *Store) Flights() []domain.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.trip.Flights)
}

// Shopping returns a copy of the shopping list.
func (s *Store) Shopping() []domain.ShoppingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.trip.Shopping)
}

// Expenses returns a copy of the expense list.
func (s *Store) Expenses() []domain.ExpenseEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.trip.Expenses)
}

// SetTitle replaces the trip title.
func (s *Store) SetTitle(ctx context.Context, v string) error {
	return set(ctx, s, KeyTitle, &s.trip.Title, v)
}

// SetStartDate replaces the trip start date.
func (s *Store) SetStartDate(ctx context.Context, v string) error {
	return set(ctx, s, KeyStartDate, &s.trip.StartDate, v)
}

// SetEndDate replaces the trip end date.
func (s *Store) SetEndDate(ctx context.Context, v string) error {
	return set(ctx, s, KeyEndDate, &s.trip.EndDate, v)
}

// SetHomeImage replaces the cover image.
func (s *Store) SetHomeImage(ctx context.Context, v string) error {
	return set(ctx, s, KeyHomeImage, &s.trip.HomeImage, v)
}

// SetHeadline replaces the home tab headline.
func (s *Store) SetHeadline(ctx context.Context, v string) error {
	return set(ctx, s, KeyHeadline, &s.trip.Headline, v)
}

// SetSubtext replaces the home tab subtext.
func (s *Store) SetSubtext(ctx context.Context, v string) error {
	return set(ctx, s, KeySubtext, &s.trip.Subtext, v)
}

// SetSchedule replaces the whole itinerary.
func (s *Store) SetSchedule(ctx context.Context, v []domain.ItineraryDay) error {
	return set(ctx, s, KeySchedule, &s.trip.Schedule, domain.CloneDays(v))
}

// SetFlights replaces the whole flights list. No minimum length is enforced
// here; the two-leg check only guards Load.
func (s *Store) SetFlights(ctx context.Context, v []domain.Flight) error {
	return set(ctx, s, KeyFlights, &s.trip.Flights, clone(v))
}

// SetShopping replaces the whole shopping list.
func (s *Store) SetShopping(ctx context.Context, v []domain.ShoppingItem) error {
	return set(ctx, s, KeyShopping, &s.trip.Shopping, clone(v))
}

// SetExpenses replaces the whole expense list.
func (s *Store) SetExpenses(ctx context.Context, v []domain.ExpenseEntry) error {
	return set(ctx, s, KeyExpenses, &s.trip.Expenses, clone(v))
}

// SetMeta replaces the single-value fields and writes every one of their
// slots, so a retry after a failed write is persisted even when memory
// already holds the values. All fields are updated in memory even if a
// write fails.
func (s *Store) SetMeta(ctx context.Context, m domain.TripMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trip.TripMeta = m

	var errs []error
	for _, f := range []struct {
		key   Key
		value string
	}{
		{KeyTitle, m.Title},
		{KeyStartDate, m.StartDate},
		{KeyEndDate, m.EndDate},
		{KeyHomeImage, m.HomeImage},
		{KeyHeadline, m.Headline},
		{KeySubtext, m.Subtext},
	} {
		if err := s.persist(ctx, f.key, f.value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// UpdateSchedule applies fn to a copy of the itinerary and stores the result.
// fn runs with the store locked, so the read-modify-write is not interleaved
// with other changes. If fn fails nothing changes.
func (s *Store) UpdateSchedule(ctx context.Context, fn func([]domain.ItineraryDay) ([]domain.ItineraryDay, error)) ([]domain.ItineraryDay, error) {
	return update(ctx, s, KeySchedule, &s.trip.Schedule, domain.CloneDays, fn)
}

// UpdateFlights applies fn to a copy of the flights list and stores the result.
func (s *Store) UpdateFlights(ctx context.Context, fn func([]domain.Flight) ([]domain.Flight, error)) ([]domain.Flight, error) {
	return update(ctx, s, KeyFlights, &s.trip.Flights, clone[domain.Flight], fn)
}

// UpdateShopping applies fn to a copy of the shopping list and stores the result.
func (s *Store) UpdateShopping(ctx context.Context, fn func([]domain.ShoppingItem) ([]domain.ShoppingItem, error)) ([]domain.ShoppingItem, error) {
	return update(ctx, s, KeyShopping, &s.trip.Shopping, clone[domain.ShoppingItem], fn)
}

// UpdateExpenses applies fn to a copy of the expense list and stores the result.
func (s *Store) UpdateExpenses(ctx context.Context, fn func([]domain.ExpenseEntry) ([]domain.ExpenseEntry, error)) ([]domain.ExpenseEntry, error) {
	return update(ctx, s, KeyExpenses, &s.trip.Expenses, clone[domain.ExpenseEntry], fn)
}

// Reset clears every slot and restores the defaults the store was opened with.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trip = s.defaults.Clone()
	if err := s.slots.Clear(ctx); err != nil {
		s.log.ErrorContext(ctx, "slot clear failed", "error", err)
		return fmt.Errorf("tripstore.Reset: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// persist writes one slot. The caller holds s.mu.
func (s *Store) persist(ctx context.Context, key Key, value any) error {
	if err := Save(ctx, s.slots, key, value); err != nil {
		s.log.ErrorContext(ctx, "slot write failed, change kept in memory only",
			"key", string(key), "error", err)
		return err
	}
	return nil
}

func set[T any](ctx context.Context, s *Store, key Key, field *T, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*field = v
	return s.persist(ctx, key, v)
}

func update[T any](ctx context.Context, s *Store, key Key, field *T, cp func(T) T, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cp(*field))
	if err != nil {
		var zero T
		return zero, err
	}
	*field = next
	return cp(next), s.persist(ctx, key, next)
}

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
