package tripstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// backupEnvelope is the shape written by ExportAll: the version tag and
// backup id followed by every trip field under its slot key.
type backupEnvelope struct {
	domain.BackupInfo
	domain.Trip
}

// backupDocument is the shape read by ImportAll. Every field is optional;
// a nil pointer means the field was absent or null in the code.
type backupDocument struct {
	Version    *int       `json:"version"`
	ID         *uuid.UUID `json:"backupId"`
	ExportedAt *time.Time `json:"exportedAt"`

	Title     *string `json:"tripTitle"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	HomeImage *string `json:"homeImage"`
	Headline  *string `json:"homeHeadline"`
	Subtext   *string `json:"homeSubtext"`

	Schedule *[]domain.ItineraryDay `json:"scheduleData"`
	Flights  *[]domain.Flight       `json:"flights"`
	Shopping *[]domain.ShoppingItem `json:"shoppingList"`
	Expenses *[]domain.ExpenseEntry `json:"expenseList"`
}

// ExportAll serializes the whole aggregate into one backup code.
func (s *Store) ExportAll() (string, error) {
	s.mu.Lock()
	env := backupEnvelope{
		BackupInfo: domain.BackupInfo{
			Version:    domain.BackupVersion,
			ID:         s.newID(),
			ExportedAt: s.now().UTC().Truncate(time.Second),
		},
		Trip: s.trip.Clone(),
	}
	s.mu.Unlock()

	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("tripstore.ExportAll: %w", err)
	}
	return string(b), nil
}

// ImportAll restores a backup code produced by ExportAll (or by an older
// client that wrote no version tag).
//
// The code is decoded completely before anything changes; a code that is not
// a JSON object of the expected shape, or carries an unknown version, fails
// with domain.ErrDecode and leaves the store untouched. Otherwise each field
// that is present and truthy (a non-empty string, or a non-null list) replaces
// the current value and is written through. Fields the code does not mention
// keep their current value. The flights two-leg check is not applied here.
//
// A write failure after the fields are applied is reported as
// domain.ErrUnavailable; the restored values stay in memory.
func (s *Store) ImportAll(ctx context.Context, blob string) (domain.BackupInfo, error) {
	doc, err := decodeBackup(blob)
	if err != nil {
		return domain.BackupInfo{}, err
	}

	info := domain.BackupInfo{Version: domain.BackupVersion}
	if doc.Version != nil {
		info.Version = *doc.Version
	}
	if doc.ID != nil {
		info.ID = *doc.ID
	}
	if doc.ExportedAt != nil {
		info.ExportedAt = *doc.ExportedAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	apply := func(key Key, value any) {
		if err := s.persist(ctx, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	applyString := func(key Key, field *string, v *string) {
		if v == nil || *v == "" {
			return
		}
		*field = *v
		apply(key, *v)
	}

	applyString(KeyTitle, &s.trip.Title, doc.Title)
	applyString(KeyStartDate, &s.trip.StartDate, doc.StartDate)
	applyString(KeyEndDate, &s.trip.EndDate, doc.EndDate)
	applyString(KeyHomeImage, &s.trip.HomeImage, doc.HomeImage)
	applyString(KeyHeadline, &s.trip.Headline, doc.Headline)
	applyString(KeySubtext, &s.trip.Subtext, doc.Subtext)

	if doc.Schedule != nil {
		s.trip.Schedule = *doc.Schedule
		apply(KeySchedule, s.trip.Schedule)
	}
	if doc.Flights != nil {
		s.trip.Flights = *doc.Flights
		apply(KeyFlights, s.trip.Flights)
	}
	if doc.Shopping != nil {
		s.trip.Shopping = *doc.Shopping
		apply(KeyShopping, s.trip.Shopping)
	}
	if doc.Expenses != nil {
		s.trip.Expenses = *doc.Expenses
		apply(KeyExpenses, s.trip.Expenses)
	}

	if len(errs) > 0 {
		return info, fmt.Errorf("tripstore.ImportAll: %w", errors.Join(errs...))
	}
	s.log.InfoContext(ctx, "backup restored",
		"backup_id", info.ID.String(), "version", info.Version)
	return info, nil
}

// decodeBackup parses a backup code strictly: the whole code must be one
// JSON object and every present field must have the right type.
func decodeBackup(blob string) (backupDocument, error) {
	var doc backupDocument

	data := bytes.TrimSpace([]byte(blob))
	if len(data) == 0 || data[0] != '{' {
		return doc, fmt.Errorf("tripstore.ImportAll: %w: backup code is not a JSON object", domain.ErrDecode)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("tripstore.ImportAll: %w: %w", domain.ErrDecode, err)
	}
	if doc.Version != nil && *doc.Version != domain.BackupVersion {
		return doc, fmt.Errorf("tripstore.ImportAll: %w: unsupported backup version %d", domain.ErrDecode, *doc.Version)
	}
	return doc, nil
}
