package tripstore_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/storage"
	"github.com/pkordes/trip-planner/backend/internal/tripstore"
)

// failingStorage wraps a Memory store and rejects writes while fail is set.
type failingStorage struct {
	*storage.Memory
	mu   sync.Mutex
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingStorage) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

func (f *failingStorage) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *failingStorage) Clear(ctx context.Context) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return f.Memory.Clear(ctx)
}

var _ storage.Storage = (*failingStorage)(nil)

// ---- helpers ---------------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func openStore(t *testing.T, slots storage.Storage) *tripstore.Store {
	t.Helper()
	return tripstore.Open(context.Background(), slots, domain.DefaultTrip(), tripstore.WithLogger(quietLogger()))
}

func rawSlot(t *testing.T, slots storage.Storage, key tripstore.Key) string {
	t.Helper()
	v, ok, err := slots.Get(context.Background(), string(key))
	require.NoError(t, err)
	require.True(t, ok, "slot %s not written", key)
	return v
}

// ---- Load / Save -----------------------------------------------------------

func TestLoad_missingReturnsDefault(t *testing.T) {
	slots := storage.NewMemory()
	got := tripstore.Load(context.Background(), slots, tripstore.KeyTitle, "Thailand Journey")
	assert.Equal(t, "Thailand Journey", got)
}

func TestLoad_malformedReturnsDefault(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	require.NoError(t, slots.Set(ctx, string(tripstore.KeySchedule), "{broken"))

	def := []domain.ItineraryDay{{Label: "DAY 1"}}
	got := tripstore.Load(ctx, slots, tripstore.KeySchedule, def)
	assert.Equal(t, def, got)
}

func TestLoad_wrongShapeReturnsDefault(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	require.NoError(t, slots.Set(ctx, string(tripstore.KeyShopping), `{"id":1}`))

	got := tripstore.Load(ctx, slots, tripstore.KeyShopping, []domain.ShoppingItem{})
	assert.Equal(t, []domain.ShoppingItem{}, got)
}

func TestLoad_nullReturnsDefault(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	require.NoError(t, slots.Set(ctx, string(tripstore.KeyTitle), "null"))

	assert.Equal(t, "fallback", tripstore.Load(ctx, slots, tripstore.KeyTitle, "fallback"))
}

func TestLoad_flightsIntegrityGuard(t *testing.T) {
	ctx := context.Background()
	def := domain.DefaultTrip().Flights

	for name, stored := range map[string]string{
		"empty":   `[]`,
		"one leg": `[{"flightNum":"TG635"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			slots := storage.NewMemory()
			require.NoError(t, slots.Set(ctx, string(tripstore.KeyFlights), stored))
			assert.Equal(t, def, tripstore.Load(ctx, slots, tripstore.KeyFlights, def))
		})
	}
}

func TestLoad_flightsWithTwoLegsIsKept(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	require.NoError(t, slots.Set(ctx, string(tripstore.KeyFlights), `[{"flightNum":"A1"},{"flightNum":"B2"}]`))

	got := tripstore.Load(ctx, slots, tripstore.KeyFlights, domain.DefaultTrip().Flights)
	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].FlightNum)
}

func TestLoad_guardOnlyAppliesToFlights(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	require.NoError(t, slots.Set(ctx, string(tripstore.KeyExpenses), `[{"id":1,"item":"Taxi","thb":120}]`))

	got := tripstore.Load(ctx, slots, tripstore.KeyExpenses, []domain.ExpenseEntry{})
	require.Len(t, got, 1)
	assert.Equal(t, "Taxi", got[0].Item)
}

func TestSave_thenLoad(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()

	require.NoError(t, tripstore.Save(ctx, slots, tripstore.KeyTitle, "Kyoto"))
	assert.Equal(t, `"Kyoto"`, rawSlot(t, slots, tripstore.KeyTitle))
	assert.Equal(t, "Kyoto", tripstore.Load(ctx, slots, tripstore.KeyTitle, "x"))
}

func TestSave_unavailable(t *testing.T) {
	slots := &failingStorage{Memory: storage.NewMemory(), fail: true}
	err := tripstore.Save(context.Background(), slots, tripstore.KeyTitle, "x")
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorIs(t, err, errDiskFull)
}

// ---- Store -----------------------------------------------------------------

func TestOpen_emptyStorageUsesDefaults(t *testing.T) {
	s := openStore(t, storage.NewMemory())

	assert.Equal(t, domain.DefaultTrip(), s.Snapshot())
	n, err := domain.DayCount(s.StartDate(), s.EndDate())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestOpen_readsPersistedSlots(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	require.NoError(t, slots.Set(ctx, string(tripstore.KeyTitle), `"Seoul Spring"`))
	require.NoError(t, slots.Set(ctx, string(tripstore.KeyFlights), `[{"flightNum":"X"}]`))

	s := openStore(t, slots)

	assert.Equal(t, "Seoul Spring", s.Title())
	assert.Equal(t, domain.DefaultTrip().Flights, s.Flights(), "one-leg flights slot falls back")
	assert.Equal(t, domain.DefaultTrip().Schedule, s.Schedule())
}

func TestStore_settersWriteThrough(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	s := openStore(t, slots)

	require.NoError(t, s.SetTitle(ctx, "Chiang Mai"))
	require.NoError(t, s.SetHeadline(ctx, "Lanterns"))
	require.NoError(t, s.SetShopping(ctx, []domain.ShoppingItem{{ID: 1, Name: "Mango"}}))

	assert.Equal(t, `"Chiang Mai"`, rawSlot(t, slots, tripstore.KeyTitle))
	assert.Equal(t, "Lanterns", s.Headline())

	reopened := openStore(t, slots)
	assert.Equal(t, "Chiang Mai", reopened.Title())
	require.Len(t, reopened.Shopping(), 1)
	assert.Equal(t, "Mango", reopened.Shopping()[0].Name)
}

func TestStore_gettersReturnCopies(t *testing.T) {
	s := openStore(t, storage.NewMemory())

	days := s.Schedule()
	days[0].Items[0].Title = "mutated"
	flights := s.Flights()
	flights[0].Gate = "Z9"

	assert.Equal(t, "Arrival & Hotel Check-in", s.Schedule()[0].Items[0].Title)
	assert.Equal(t, "B7", s.Flights()[0].Gate)
}

func TestStore_SetMeta_writesEverySlot(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	s := openStore(t, slots)

	m := s.Meta()
	m.Subtext = "new subtext"
	require.NoError(t, s.SetMeta(ctx, m))

	assert.Equal(t, `"new subtext"`, rawSlot(t, slots, tripstore.KeySubtext))
	assert.Equal(t, `"Thailand Journey"`, rawSlot(t, slots, tripstore.KeyTitle))
	assert.Equal(t, `"2026-02-12"`, rawSlot(t, slots, tripstore.KeyStartDate))
}

func TestStore_SetMeta_retryAfterFailedWriteIsPersisted(t *testing.T) {
	ctx := context.Background()
	slots := &failingStorage{Memory: storage.NewMemory()}
	s := openStore(t, slots)

	m := s.Meta()
	m.Title = "Kyoto"
	slots.setFail(true)
	require.ErrorIs(t, s.SetMeta(ctx, m), domain.ErrUnavailable)
	assert.Equal(t, "Kyoto", s.Title(), "change kept in memory")

	slots.setFail(false)
	require.NoError(t, s.SetMeta(ctx, m))

	reopened := openStore(t, slots)
	assert.Equal(t, "Kyoto", reopened.Title())
}

func TestStore_Update_errorLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	before := s.Flights()

	_, err := s.UpdateFlights(ctx, func(f []domain.Flight) ([]domain.Flight, error) {
		f[0].Seat = "1A"
		return nil, domain.ErrNotFound
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, s.Flights())
}

func TestStore_writeFailureKeepsChangeInMemory(t *testing.T) {
	ctx := context.Background()
	slots := &failingStorage{Memory: storage.NewMemory()}
	s := openStore(t, slots)
	slots.setFail(true)

	got, err := s.UpdateExpenses(ctx, func(e []domain.ExpenseEntry) ([]domain.ExpenseEntry, error) {
		return append(e, domain.ExpenseEntry{ID: 1, Item: "Tuk-tuk"}), nil
	})

	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Len(t, got, 1)
	assert.Len(t, s.Expenses(), 1)
}

func TestStore_concurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateShopping(ctx, func(items []domain.ShoppingItem) ([]domain.ShoppingItem, error) {
				return append(items, domain.ShoppingItem{ID: int64(i)}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Shopping(), 50)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	s := openStore(t, slots)
	require.NoError(t, s.SetTitle(ctx, "Changed"))

	require.NoError(t, s.Reset(ctx))

	assert.Equal(t, domain.DefaultTrip(), s.Snapshot())
	_, ok, err := slots.Get(ctx, string(tripstore.KeyTitle))
	require.NoError(t, err)
	assert.False(t, ok)
}

// ---- ExportAll / ImportAll -------------------------------------------------

func sampleTrip() domain.Trip {
	return domain.Trip{
		TripMeta: domain.TripMeta{
			Title:     "Tokyo Winter",
			StartDate: "2026-12-20",
			EndDate:   "2026-12-27",
			HomeImage: "data:image/png;base64,aGk=",
			Headline:  "Snow & ramen",
			Subtext:   "Eight days",
		},
		Schedule: []domain.ItineraryDay{{
			Label: "DAY 1", Date: "12/20",
			Items: []domain.ItineraryItem{{Time: "09:00", Title: "Tsukiji"}},
		}},
		Flights: []domain.Flight{{FlightNum: "BR198"}},
		Shopping: []domain.ShoppingItem{
			{ID: 1766200000000, Name: "Kit Kat", Category: domain.CategorySnacks, Price: 300, Currency: domain.CurrencyJPY},
		},
		Expenses: []domain.ExpenseEntry{
			{ID: 1766200000001, Day: "DAY 1", Item: "Sushi", Amount: 4800, Currency: domain.CurrencyJPY, SplitCount: 2},
		},
	}
}

func TestExportImport_roundTrip(t *testing.T) {
	ctx := context.Background()
	src := openStore(t, storage.NewMemory())
	want := sampleTrip()
	require.NoError(t, src.SetMeta(ctx, want.TripMeta))
	require.NoError(t, src.SetSchedule(ctx, want.Schedule))
	require.NoError(t, src.SetFlights(ctx, want.Flights))
	require.NoError(t, src.SetShopping(ctx, want.Shopping))
	require.NoError(t, src.SetExpenses(ctx, want.Expenses))

	code, err := src.ExportAll()
	require.NoError(t, err)

	dstSlots := storage.NewMemory()
	dst := openStore(t, dstSlots)
	_, err = dst.ImportAll(ctx, code)
	require.NoError(t, err)

	assert.Equal(t, want, dst.Snapshot())

	// The restore is durable: a fresh store over the same slots sees it,
	// except the one-leg flights list which Load refuses.
	reopened := openStore(t, dstSlots)
	assert.Equal(t, want.Title, reopened.Title())
	assert.Equal(t, domain.DefaultTrip().Flights, reopened.Flights())
}

func TestExportAll_envelope(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	s := tripstore.Open(context.Background(), storage.NewMemory(), domain.DefaultTrip(),
		tripstore.WithLogger(quietLogger()), tripstore.WithClock(func() time.Time { return fixed }))

	code, err := s.ExportAll()
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(code), &m))
	assert.JSONEq(t, `1`, string(m["version"]))
	assert.JSONEq(t, `"2026-10-18T09:30:00Z"`, string(m["exportedAt"]))
	assert.Contains(t, m, "backupId")
	for _, k := range tripstore.Keys {
		assert.Contains(t, m, string(k))
	}
}

func TestImportAll_partialMergeKeepsAbsentFields(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())
	require.NoError(t, s.SetTitle(ctx, "Current Title"))

	for range 3 {
		_, err := s.ImportAll(ctx, `{"homeSubtext":"from backup"}`)
		require.NoError(t, err)
		assert.Equal(t, "Current Title", s.Title())
		assert.Equal(t, "from backup", s.Subtext())
	}
}

func TestImportAll_falsyFieldsAreIgnored(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())

	_, err := s.ImportAll(ctx, `{"tripTitle":"","flights":null,"expenseList":[]}`)
	require.NoError(t, err)

	assert.Equal(t, "Thailand Journey", s.Title())
	assert.Equal(t, domain.DefaultTrip().Flights, s.Flights())
	assert.Empty(t, s.Expenses(), "an empty list is truthy and is applied")
}

func TestImportAll_oneFlightIsAccepted(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	s := openStore(t, slots)

	_, err := s.ImportAll(ctx, `{"flights":[{"flightNum":"TG635","from":"TPE","to":"BKK"}]}`)
	require.NoError(t, err)

	require.Len(t, s.Flights(), 1)
	assert.Equal(t, "TG635", s.Flights()[0].FlightNum)
	assert.JSONEq(t, `[{"flightNum":"TG635","from":"TPE","to":"BKK","date":"","gate":"","time":"","seat":"","imgUrl":"","pdfUrl":""}]`,
		rawSlot(t, slots, tripstore.KeyFlights))
}

func TestImportAll_decodeErrorChangesNothing(t *testing.T) {
	ctx := context.Background()
	slots := storage.NewMemory()
	s := openStore(t, slots)
	before := s.Snapshot()

	for name, blob := range map[string]string{
		"not json":         "hello",
		"empty":            "",
		"null":             "null",
		"array":            `[{"tripTitle":"x"}]`,
		"wrong field type": `{"tripTitle":"New","flights":"nope"}`,
		"trailing garbage": `{"tripTitle":"New"} extra`,
		"future version":   `{"version":2,"tripTitle":"New"}`,
		"bad backup id":    `{"backupId":"not-a-uuid","tripTitle":"New"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.ImportAll(ctx, blob)
			require.ErrorIs(t, err, domain.ErrDecode)
			assert.Equal(t, before, s.Snapshot())
		})
	}

	_, ok, err := slots.Get(ctx, string(tripstore.KeyTitle))
	require.NoError(t, err)
	assert.False(t, ok, "nothing may be written on a failed import")
}

func TestImportAll_legacyCodeWithoutVersion(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, storage.NewMemory())

	info, err := s.ImportAll(ctx, `{"tripTitle":"Old Trip","shoppingList":[{"id":1,"task":"Soap","price":"45","category":"代購"}]}`)
	require.NoError(t, err)

	assert.Equal(t, domain.BackupVersion, info.Version)
	assert.Equal(t, "Old Trip", s.Title())
	assert.Equal(t, domain.Amount(45), s.Shopping()[0].Price)
}

func TestImportAll_writeFailureIsReported(t *testing.T) {
	ctx := context.Background()
	slots := &failingStorage{Memory: storage.NewMemory()}
	s := openStore(t, slots)
	slots.setFail(true)

	_, err := s.ImportAll(ctx, `{"tripTitle":"Unsaved"}`)

	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, "Unsaved", s.Title())
}
