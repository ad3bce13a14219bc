package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ScheduleStore is the part of the Trip Store the schedule tab needs.
type ScheduleStore interface {
	Schedule() []domain.ItineraryDay
	StartDate() string
	UpdateSchedule(ctx context.Context, fn func([]domain.ItineraryDay) ([]domain.ItineraryDay, error)) ([]domain.ItineraryDay, error)
}

// ScheduleService implements the schedule tab: days and their stops.
// Days and items are addressed by index; item indexes change whenever a day
// is re-sorted, so callers should re-read the day after every edit.
type ScheduleService struct {
	store ScheduleStore
	now   func() time.Time
}

// NewScheduleService constructs a ScheduleService backed by the provided store.
func NewScheduleService(s ScheduleStore) *ScheduleService {
	return &ScheduleService{store: s, now: time.Now}
}

// List returns every day in order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ScheduleService) List(_ context.Context) []domain.ItineraryDay {
	days := s.store.Schedule()
	if days == nil {
		return []domain.ItineraryDay{}
	}
	return days
}

// year is the calendar year "MM/DD" day dates belong to: the year of the
// trip start date, or the current year if the start date does not parse.
func (s *ScheduleService) year() int {
	if t, err := time.Parse(domain.DateLayout, s.store.StartDate()); err == nil {
		return t.Year()
	}
	return s.now().Year()
}

// Weekday returns the short weekday name ("Thu") of a "MM/DD" day date,
// or "" if the date does not parse.
func (s *ScheduleService) Weekday(date string) string {
	wd, ok := domain.Weekday(date, s.year())
	if !ok {
		return ""
	}
	return wd.String()[:3]
}

// AddDay appends the day after the last one. On an empty schedule the first
// day is dated from the trip start date.
func (s *ScheduleService) AddDay(ctx context.Context) ([]domain.ItineraryDay, error) {
	year := s.year()
	start := s.store.StartDate()
	days, err := s.store.UpdateSchedule(ctx, func(days []domain.ItineraryDay) ([]domain.ItineraryDay, error) {
		if len(days) == 0 {
			first := domain.ItineraryDay{Label: "DAY 1", Items: []domain.ItineraryItem{}}
			if t, err := time.Parse(domain.DateLayout, start); err == nil {
				first.Date = t.Format("01/02")
			}
			return append(days, first), nil
		}
		return append(days, domain.NextDay(days[len(days)-1], len(days), year)), nil
	})
	if err != nil {
		return days, fmt.Errorf("service.ScheduleService.AddDay: %w", err)
	}
	return days, nil
}

// RemoveLastDay drops the last day and all of its stops.
// Returns domain.ErrValidation if it is the only day.
func (s *ScheduleService) RemoveLastDay(ctx context.Context) ([]domain.ItineraryDay, error) {
	days, err := s.store.UpdateSchedule(ctx, func(days []domain.ItineraryDay) ([]domain.ItineraryDay, error) {
		if len(days) <= 1 {
			return nil, fmt.Errorf("%w: cannot remove the only day", domain.ErrValidation)
		}
		return days[:len(days)-1], nil
	})
	if err != nil {
		return days, fmt.Errorf("service.ScheduleService.RemoveLastDay: %w", err)
	}
	return days, nil
}

// AddItem appends a placeholder stop to the day and re-sorts it.
// It returns the day and the index the new stop ended up at.
// Returns domain.ErrNotFound if dayIdx is out of range.
func (s *ScheduleService) AddItem(ctx context.Context, dayIdx int) (domain.ItineraryDay, int, error) {
	var at int
	days, err := s.store.UpdateSchedule(ctx, func(days []domain.ItineraryDay) ([]domain.ItineraryDay, error) {
		if err := checkIndex("day", dayIdx, len(days)); err != nil {
			return nil, err
		}
		item := domain.NewItineraryItem()
		at = sortedPosition(days[dayIdx].Items, item)
		days[dayIdx].Items = append(days[dayIdx].Items, item)
		domain.SortItems(days[dayIdx].Items)
		return days, nil
	})
	if err != nil {
		return dayOf(days, dayIdx), 0, fmt.Errorf("service.ScheduleService.AddItem: %w", err)
	}
	return days[dayIdx], at, nil
}

// UpdateItem replaces one stop and re-sorts its day by time of day.
// Returns domain.ErrNotFound if either index is out of range.
func (s *ScheduleService) UpdateItem(ctx context.Context, dayIdx, itemIdx int, item domain.ItineraryItem) (domain.ItineraryDay, error) {
	days, err := s.store.UpdateSchedule(ctx, func(days []domain.ItineraryDay) ([]domain.ItineraryDay, error) {
		if err := checkIndex("day", dayIdx, len(days)); err != nil {
			return nil, err
		}
		if err := checkIndex("item", itemIdx, len(days[dayIdx].Items)); err != nil {
			return nil, err
		}
		days[dayIdx].Items[itemIdx] = item
		domain.SortItems(days[dayIdx].Items)
		return days, nil
	})
	if err != nil {
		return dayOf(days, dayIdx), fmt.Errorf("service.ScheduleService.UpdateItem: %w", err)
	}
	return days[dayIdx], nil
}

// DeleteItem removes one stop. The remaining stops keep their order.
// Returns domain.ErrNotFound if either index is out of range.
func (s *ScheduleService) DeleteItem(ctx context.Context, dayIdx, itemIdx int) (domain.ItineraryDay, error) {
	days, err := s.store.UpdateSchedule(ctx, func(days []domain.ItineraryDay) ([]domain.ItineraryDay, error) {
		if err := checkIndex("day", dayIdx, len(days)); err != nil {
			return nil, err
		}
		items := days[dayIdx].Items
		if err := checkIndex("item", itemIdx, len(items)); err != nil {
			return nil, err
		}
		days[dayIdx].Items = append(items[:itemIdx], items[itemIdx+1:]...)
		return days, nil
	})
	if err != nil {
		return dayOf(days, dayIdx), fmt.Errorf("service.ScheduleService.DeleteItem: %w", err)
	}
	return days[dayIdx], nil
}

// sortedPosition is where a stable sort places item when appended to items.
func sortedPosition(items []domain.ItineraryItem, item domain.ItineraryItem) int {
	n := 0
	for _, it := range items {
		if domain.CompareItems(it, item) <= 0 {
			n++
		}
	}
	return n
}

// dayOf returns days[i], or the zero day when i is out of range.
func dayOf(days []domain.ItineraryDay, i int) domain.ItineraryDay {
	if i < 0 || i >= len(days) {
		return domain.ItineraryDay{}
	}
	return days[i]
}
