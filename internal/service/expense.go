package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ExpenseStore is the part of the Trip Store the expense tab needs.
type ExpenseStore interface {
	Expenses() []domain.ExpenseEntry
	Schedule() []domain.ItineraryDay
	UpdateExpenses(ctx context.Context, fn func([]domain.ExpenseEntry) ([]domain.ExpenseEntry, error)) ([]domain.ExpenseEntry, error)
}

// ExpenseService implements the expense tab. Entries are addressed by id.
type ExpenseService struct {
	store ExpenseStore
	ids   *IDSource
}

// NewExpenseService constructs an ExpenseService backed by the provided store.
func NewExpenseService(s ExpenseStore, ids *IDSource) *ExpenseService {
	return &ExpenseService{store: s, ids: ids}
}

// List returns every entry, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) List(_ context.Context) []domain.ExpenseEntry {
	entries := s.store.Expenses()
	if entries == nil {
		return []domain.ExpenseEntry{}
	}
	return entries
}

// Summary groups entries under every itinerary day, with per-currency totals.
// Entries whose day label no longer exists are not shown.
func (s *ExpenseService) Summary(_ context.Context) []domain.DaySummary {
	days := s.store.Schedule()
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Label
	}
	return domain.SummarizeByDay(labels, s.store.Expenses())
}

// Add validates a new entry, gives it an id and puts it at the top of the
// list. Defaults: the first itinerary day, currency ฿, split count 2.
// Returns domain.ErrValidation if input violates business rules.
func (s *ExpenseService) Add(ctx context.Context, e domain.ExpenseEntry) (domain.ExpenseEntry, error) {
	if e.Day == "" {
		if days := s.store.Schedule(); len(days) > 0 {
			e.Day = days[0].Label
		}
	}
	applyExpenseDefaults(&e)
	if err := validateExpense(e); err != nil {
		return domain.ExpenseEntry{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}

	_, err := s.store.UpdateExpenses(ctx, func(entries []domain.ExpenseEntry) ([]domain.ExpenseEntry, error) {
		e.ID = s.ids.Next(func(id int64) bool { return expenseIndex(entries, id) >= 0 })
		return append([]domain.ExpenseEntry{e}, entries...), nil
	})
	if err != nil {
		return e, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}
	return e, nil
}

// Update replaces the entry with the given id; the id itself never changes.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if no
// entry has that id.
func (s *ExpenseService) Update(ctx context.Context, id int64, e domain.ExpenseEntry) (domain.ExpenseEntry, error) {
	applyExpenseDefaults(&e)
	e.ID = id
	if err := validateExpense(e); err != nil {
		return domain.ExpenseEntry{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}

	_, err := s.store.UpdateExpenses(ctx, func(entries []domain.ExpenseEntry) ([]domain.ExpenseEntry, error) {
		i := expenseIndex(entries, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: expense %d", domain.ErrNotFound, id)
		}
		entries[i] = e
		return entries, nil
	})
	if err != nil {
		return e, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return e, nil
}

// Delete removes the entry with the given id.
// Returns domain.ErrNotFound if no entry has that id.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	_, err := s.store.UpdateExpenses(ctx, func(entries []domain.ExpenseEntry) ([]domain.ExpenseEntry, error) {
		i := expenseIndex(entries, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: expense %d", domain.ErrNotFound, id)
		}
		return slices.Delete(entries, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

func applyExpenseDefaults(e *domain.ExpenseEntry) {
	if e.Currency == "" {
		e.Currency = domain.DefaultCurrency
	}
	if e.SplitCount == 0 {
		e.SplitCount = domain.DefaultSplitCount
	}
}

func expenseIndex(entries []domain.ExpenseEntry, id int64) int {
	return slices.IndexFunc(entries, func(e domain.ExpenseEntry) bool { return e.ID == id })
}
