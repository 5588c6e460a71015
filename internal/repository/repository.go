package repository

import (
	"context"
	"errors"

	"github.com/atelier-ops/content-engine/internal/models"
)

// ErrSnapshotNotFound is returned when the source holds no snapshot
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotSource supplies the caller-owned state the engine reads. The
// engine never writes back through it.
type SnapshotSource interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}
