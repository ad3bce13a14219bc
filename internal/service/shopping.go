package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ShoppingStore is the part of the Trip Store the shopping tab needs.
type ShoppingStore interface {
	Shopping() []domain.ShoppingItem
	UpdateShopping(ctx context.Context, fn func([]domain.ShoppingItem) ([]domain.ShoppingItem, error)) ([]domain.ShoppingItem, error)
}

// ShoppingService implements the shopping tab. Items are addressed by id.
type ShoppingService struct {
	store ShoppingStore
	ids   *IDSource
}

// NewShoppingService constructs a ShoppingService backed by the provided store.
func NewShoppingService(s ShoppingStore, ids *IDSource) *ShoppingService {
	return &ShoppingService{store: s, ids: ids}
}

// List returns every item, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ShoppingService) List(_ context.Context) []domain.ShoppingItem {
	items := s.store.Shopping()
	if items == nil {
		return []domain.ShoppingItem{}
	}
	return items
}

// Grouped returns the items grouped by category in the fixed category order.
func (s *ShoppingService) Grouped(ctx context.Context) []domain.CategoryGroup {
	groups := domain.GroupByCategory(s.List(ctx))
	if groups == nil {
		return []domain.CategoryGroup{}
	}
	return groups
}

// Add validates a new item, gives it an id, marks it not done and puts it at
// the top of the list. An empty category or currency takes the first choice.
// Returns domain.ErrValidation if input violates business rules.
func (s *ShoppingService) Add(ctx context.Context, item domain.ShoppingItem) (domain.ShoppingItem, error) {
	applyShoppingDefaults(&item)
	item.Done = false
	if err := validateShoppingItem(item); err != nil {
		return domain.ShoppingItem{}, fmt.Errorf("service.ShoppingService.Add: %w", err)
	}

	_, err := s.store.UpdateShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, error) {
		item.ID = s.ids.Next(func(id int64) bool { return shoppingIndex(items, id) >= 0 })
		return append([]domain.ShoppingItem{item}, items...), nil
	})
	if err != nil {
		return item, fmt.Errorf("service.ShoppingService.Add: %w", err)
	}
	return item, nil
}

// Update replaces the item with the given id; the id itself never changes.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if no
// item has that id.
func (s *ShoppingService) Update(ctx context.Context, id int64, item domain.ShoppingItem) (domain.ShoppingItem, error) {
	applyShoppingDefaults(&item)
	item.ID = id
	if err := validateShoppingItem(item); err != nil {
		return domain.ShoppingItem{}, fmt.Errorf("service.ShoppingService.Update: %w", err)
	}

	_, err := s.store.UpdateShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, error) {
		i := shoppingIndex(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: shopping item %d", domain.ErrNotFound, id)
		}
		items[i] = item
		return items, nil
	})
	if err != nil {
		return item, fmt.Errorf("service.ShoppingService.Update: %w", err)
	}
	return item, nil
}

// ToggleDone flips the done flag of the item with the given id.
// Returns domain.ErrNotFound if no item has that id.
func (s *ShoppingService) ToggleDone(ctx context.Context, id int64) (domain.ShoppingItem, error) {
	var out domain.ShoppingItem
	_, err := s.store.UpdateShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, error) {
		i := shoppingIndex(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: shopping item %d", domain.ErrNotFound, id)
		}
		items[i].Done = !items[i].Done
		out = items[i]
		return items, nil
	})
	if err != nil {
		return out, fmt.Errorf("service.ShoppingService.ToggleDone: %w", err)
	}
	return out, nil
}

// Delete removes the item with the given id.
// Returns domain.ErrNotFound if no item has that id.
func (s *ShoppingService) Delete(ctx context.Context, id int64) error {
	_, err := s.store.UpdateShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, error) {
		i := shoppingIndex(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: shopping item %d", domain.ErrNotFound, id)
		}
		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("service.ShoppingService.Delete: %w", err)
	}
	return nil
}

func applyShoppingDefaults(item *domain.ShoppingItem) {
	if item.Category == "" {
		item.Category = domain.Categories[0]
	}
	if item.Currency == "" {
		item.Currency = domain.DefaultCurrency
	}
}

func shoppingIndex(items []domain.ShoppingItem, id int64) int {
	return slices.IndexFunc(items, func(it domain.ShoppingItem) bool { return it.ID == id })
}
