// Package tripstore implements the Trip Store: the single owned aggregate of
// a trip, persisted slot by slot to a storage.Storage on every change, with a
// manual export/import ("backup code") path.
package tripstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/storage"
)

// Key names one durable slot. The set is fixed; slot keys are also the field
// names of the backup code.
type Key string

// Slot keys.
const (
	KeyTitle     Key = "tripTitle"
	KeyStartDate Key = "startDate"
	KeyEndDate   Key = "endDate"
	KeyHomeImage Key = "homeImage"
	KeyHeadline  Key = "homeHeadline"
	KeySubtext   Key = "homeSubtext"
	KeySchedule  Key = "scheduleData"
	KeyFlights   Key = "flights"
	KeyShopping  Key = "shoppingList"
	KeyExpenses  Key = "expenseList"
)

// Keys lists every slot in persistence order.
var Keys = []Key{
	KeyTitle, KeyStartDate, KeyEndDate, KeyHomeImage, KeyHeadline, KeySubtext,
	KeySchedule, KeyFlights, KeyShopping, KeyExpenses,
}

// minFlights is the fewest legs a stored flights slot may hold before Load
// prefers the default.
const minFlights = 2

// errAbsent marks a slot that was never written or holds JSON null.
var errAbsent = errors.New("slot absent")

// Load reads the slot named key and decodes it into a T. It never fails:
// if the slot is absent, unreadable, not valid JSON for T, or (for the
// flights slot only) holds fewer than two entries, def is returned unchanged.
func Load[T any](ctx context.Context, slots storage.Storage, key Key, def T) T {
	return load(ctx, slots, key, def, slog.Default())
}

func load[T any](ctx context.Context, slots storage.Storage, key Key, def T, log *slog.Logger) T {
	v, err := decodeSlot[T](ctx, slots, key)
	if err != nil {
		if !errors.Is(err, errAbsent) {
			log.WarnContext(ctx, "slot unusable, using default", "key", string(key), "error", err)
		}
		return def
	}
	return v
}

// decodeSlot reads and decodes one slot, reporting why it cannot be used.
func decodeSlot[T any](ctx context.Context, slots storage.Storage, key Key) (T, error) {
	var v T

	raw, ok, err := slots.Get(ctx, string(key))
	if err != nil {
		return v, fmt.Errorf("tripstore.Load %s: %w: %w", key, domain.ErrUnavailable, err)
	}
	data := bytes.TrimSpace([]byte(raw))
	if !ok || bytes.Equal(data, []byte("null")) {
		return v, errAbsent
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("tripstore.Load %s: %w: %w", key, domain.ErrDecode, err)
	}

	if key == KeyFlights {
		var legs []json.RawMessage
		if err := json.Unmarshal(data, &legs); err != nil {
			return v, fmt.Errorf("tripstore.Load %s: %w: %w", key, domain.ErrDecode, err)
		}
		if len(legs) < minFlights {
			return v, fmt.Errorf("tripstore.Load %s: %w: %d entries, want at least %d",
				key, domain.ErrIntegrity, len(legs), minFlights)
		}
	}
	return v, nil
}

// Save encodes value as JSON and writes it to the slot named key, replacing
// whatever was there. A rejected write is reported as domain.ErrUnavailable.
func Save(ctx context.Context, slots storage.Storage, key Key, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("tripstore.Save %s: encode: %w", key, err)
	}
	if err := slots.Set(ctx, string(key), string(b)); err != nil {
		return fmt.Errorf("tripstore.Save %s: %w: %w", key, domain.ErrUnavailable, err)
	}
	return nil
}
