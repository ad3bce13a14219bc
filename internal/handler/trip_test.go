package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	get      func(ctx context.Context) domain.TripMeta
	overview func(ctx context.Context) service.Overview
	dayCount func(ctx context.Context) (int, error)
	update   func(ctx context.Context, m domain.TripMeta) (domain.TripMeta, error)
}

func (m *mockTripServicer) Get(ctx context.Context) domain.TripMeta { return m.get(ctx) }
func (m *mockTripServicer) Overview(ctx context.Context) service.Overview {
	return m.overview(ctx)
}
func (m *mockTripServicer) DayCount(ctx context.Context) (int, error) { return m.dayCount(ctx) }
func (m *mockTripServicer) Update(ctx context.Context, meta domain.TripMeta) (domain.TripMeta, error) {
	return m.update(ctx, meta)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockBackupServicer is a test double for handler.BackupServicer.
type mockBackupServicer struct {
	export func(ctx context.Context) (string, error)
	imp    func(ctx context.Context, code string) (domain.BackupInfo, error)
	reset  func(ctx context.Context) error
}

func (m *mockBackupServicer) Export(ctx context.Context) (string, error) { return m.export(ctx) }
func (m *mockBackupServicer) Import(ctx context.Context, code string) (domain.BackupInfo, error) {
	return m.imp(ctx, code)
}
func (m *mockBackupServicer) Reset(ctx context.Context) error { return m.reset(ctx) }

var _ handler.BackupServicer = (*mockBackupServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given services into a chi router.
// This mirrors how main.go mounts the routes in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.Handler(handler.NewServer(svc))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	return errResp.Error.Code
}

func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---- GET /trip ---------------------------------------------------------------

func TestGetTrip_200_IncludesDayCount(t *testing.T) {
	six := 6
	svc := &mockTripServicer{
		overview: func(_ context.Context) service.Overview {
			return service.Overview{Trip: domain.DefaultTrip(), DayCount: &six}
		},
	}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodGet, "/trip", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Thailand Journey", body["tripTitle"])
	assert.Equal(t, float64(6), body["dayCount"])
	assert.Len(t, body["flights"], 2)
	assert.NotContains(t, body, "dayCountError")
}

func TestGetTrip_200_InvalidRangeHasNoDayCount(t *testing.T) {
	svc := &mockTripServicer{
		overview: func(_ context.Context) service.Overview {
			return service.Overview{Trip: domain.DefaultTrip(), DayCountError: "invalid date range"}
		},
	}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodGet, "/trip", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotContains(t, body, "dayCount")
	assert.Equal(t, "invalid date range", body["dayCountError"])
}

// ---- GET /trip/day-count -------------------------------------------------------

func TestGetDayCount_200(t *testing.T) {
	svc := &mockTripServicer{
		dayCount: func(_ context.Context) (int, error) { return 6, nil },
	}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodGet, "/trip/day-count", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.DayCountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 6, body.Days)
}

func TestGetDayCount_422_InvalidRange(t *testing.T) {
	svc := &mockTripServicer{
		dayCount: func(_ context.Context) (int, error) {
			return 0, fmt.Errorf("service.TripService.DayCount: %w", domain.ErrInvalidRange)
		},
	}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodGet, "/trip/day-count", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_range", decodeErrorCode(t, rec))
}

// ---- /trip/meta -------------------------------------------------------------

func TestGetTripMeta_200(t *testing.T) {
	svc := &mockTripServicer{
		get: func(_ context.Context) domain.TripMeta { return domain.DefaultTrip().TripMeta },
	}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodGet, "/trip/meta", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var meta domain.TripMeta
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&meta))
	assert.Equal(t, "2026-02-12", meta.StartDate)
}

func TestUpdateTripMeta_200(t *testing.T) {
	var got domain.TripMeta
	svc := &mockTripServicer{
		update: func(_ context.Context, m domain.TripMeta) (domain.TripMeta, error) {
			got = m
			return m, nil
		},
	}

	body := jsonBody(t, map[string]any{"tripTitle": "Osaka Eats", "startDate": "2026-04-01", "endDate": "2026-04-05"})
	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodPut, "/trip/meta", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Osaka Eats", got.Title)
	assert.Equal(t, "2026-04-05", got.EndDate)
}

func TestUpdateTripMeta_422_MalformedBody(t *testing.T) {
	svc := &mockTripServicer{}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodPut, "/trip/meta",
		bytes.NewBufferString(`{"tripTitle":`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeErrorCode(t, rec))
}

func TestUpdateTripMeta_503_StorageUnavailable(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, m domain.TripMeta) (domain.TripMeta, error) {
			return m, fmt.Errorf("service.TripService.Update: %w", domain.ErrUnavailable)
		},
	}

	rec := serve(newHTTPHandler(handler.Services{Trip: svc}), http.MethodPut, "/trip/meta",
		jsonBody(t, map[string]any{"tripTitle": "x"}))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var errResp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "storage_unavailable", errResp.Error.Code)
	assert.Contains(t, errResp.Error.Message, "not being saved")
}

// ---- DELETE /trip -------------------------------------------------------------

func TestResetTrip_204(t *testing.T) {
	called := false
	svc := &mockBackupServicer{
		reset: func(_ context.Context) error {
			called = true
			return nil
		},
	}

	rec := serve(newHTTPHandler(handler.Services{Backup: svc}), http.MethodDelete, "/trip", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestResetTrip_500_UnexpectedError(t *testing.T) {
	svc := &mockBackupServicer{
		reset: func(_ context.Context) error { return fmt.Errorf("boom") },
	}

	rec := serve(newHTTPHandler(handler.Services{Backup: svc}), http.MethodDelete, "/trip", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decodeErrorCode(t, rec))
}
