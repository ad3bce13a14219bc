package service

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// validationError wraps an ozzo validation failure in domain.ErrValidation
// so handlers can map it with errors.Is.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
}

func oneOf[T comparable](values []T) validation.Rule {
	elems := make([]any, len(values))
	for i, v := range values {
		elems[i] = v
	}
	return validation.In(elems...)
}

// validateShoppingItem enforces the rules shared by add and update.
//   - Name must be non-empty.
//   - Category and currency must be one of the fixed sets.
//   - Price must be between 0 and domain.MaxAmount.
func validateShoppingItem(it domain.ShoppingItem) error {
	return validationError(validation.ValidateStruct(&it,
		validation.Field(&it.Name, validation.Required.Error("name is required")),
		validation.Field(&it.Category, validation.Required, oneOf(domain.Categories)),
		validation.Field(&it.Currency, validation.Required, oneOf(domain.Currencies)),
		validation.Field(&it.Price, validation.Min(domain.Amount(0)), validation.Max(domain.MaxAmount)),
	))
}

// validateExpense enforces the rules shared by add and update.
//   - Item name and a non-zero amount are required.
//   - Amount must be between 0 and domain.MaxAmount.
//   - Currency must be one of the fixed set.
//   - Split count must be 1..5.
func validateExpense(e domain.ExpenseEntry) error {
	return validationError(validation.ValidateStruct(&e,
		validation.Field(&e.Item, validation.Required.Error("item is required")),
		validation.Field(&e.Amount, validation.Required.Error("amount is required"),
			validation.Min(domain.Amount(0)), validation.Max(domain.MaxAmount)),
		validation.Field(&e.Currency, validation.Required, oneOf(domain.Currencies)),
		validation.Field(&e.SplitCount, validation.Required, oneOf(domain.SplitCounts)),
	))
}

// checkIndex returns domain.ErrNotFound unless 0 <= i < n.
func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, strconv.Itoa(i))
	}
	return nil
}
