package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// BackupStore is the part of the Trip Store the backup flow needs.
type BackupStore interface {
	ExportAll() (string, error)
	ImportAll(ctx context.Context, blob string) (domain.BackupInfo, error)
	Reset(ctx context.Context) error
}

// BackupService implements the manual backup code round trip.
type BackupService struct {
	store BackupStore
}

// NewBackupService constructs a BackupService backed by the provided store.
func NewBackupService(s BackupStore) *BackupService {
	return &BackupService{store: s}
}

// Export returns the backup code of the whole trip.
func (s *BackupService) Export(_ context.Context) (string, error) {
	code, err := s.store.ExportAll()
	if err != nil {
		return "", fmt.Errorf("service.BackupService.Export: %w", err)
	}
	return code, nil
}

// Import restores a backup code. Fields the code omits are left as they are.
// Returns domain.ErrDecode if the code is malformed; nothing changes then.
func (s *BackupService) Import(ctx context.Context, code string) (domain.BackupInfo, error) {
	info, err := s.store.ImportAll(ctx, code)
	if err != nil {
		return info, fmt.Errorf("service.BackupService.Import: %w", err)
	}
	return info, nil
}

// Reset erases the saved trip and goes back to the first-run defaults.
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("service.BackupService.Reset: %w", err)
	}
	return nil
}
