package domain

import (
	"time"

	"github.com/google/uuid"
)

// BackupVersion is the version tag written into every backup code.
// Codes without a version predate the tag and are read as version 1.
const BackupVersion = 1

// BackupInfo identifies one exported backup code.
type BackupInfo struct {
	Version    int       `json:"version"`
	ID         uuid.UUID `json:"backupId"`
	ExportedAt time.Time `json:"exportedAt"`
}
