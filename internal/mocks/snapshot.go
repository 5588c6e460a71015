package mocks

import (
	"context"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/repository"
)

// MockSnapshotSource is an in-memory implementation of SnapshotSource
type MockSnapshotSource struct {
	Snapshot  *models.Snapshot
	LoadError error
	LoadCalls int
}

// Verify interface compliance
var _ repository.SnapshotSource = (*MockSnapshotSource)(nil)

func NewMockSnapshotSource(snap *models.Snapshot) *MockSnapshotSource {
	return &MockSnapshotSource{Snapshot: snap}
}

func (m *MockSnapshotSource) Load(ctx context.Context) (*models.Snapshot, error) {
	m.LoadCalls++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Snapshot == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	return m.Snapshot, nil
}
