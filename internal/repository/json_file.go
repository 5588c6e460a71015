package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atelier-ops/content-engine/internal/models"
)

// JSONFileSource reads a snapshot exported as one JSON document, the same
// shape the web app keeps under its local-storage key
type JSONFileSource struct {
	path string
}

// Verify interface compliance
var _ SnapshotSource = (*JSONFileSource)(nil)

// NewJSONFileSource creates a source reading path
func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{path: path}
}

// Load reads and decodes the snapshot file
func (s *JSONFileSource) Load(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.path, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return Decode(data)
}

// rawSnapshot defers record decoding so one malformed record does not
// discard the rest of the document
type rawSnapshot struct {
	Assets       []json.RawMessage   `json:"assets"`
	Slots        []json.RawMessage   `json:"slots"`
	Posts        []json.RawMessage   `json:"posts"`
	EditorialDNA models.EditorialDNA `json:"editorialDNA"`
	ContentPacks []json.RawMessage   `json:"contentPacks"`
}

// Decode parses a snapshot document. Records that fail to decode are left
// out and listed in Snapshot.Rejected; only a malformed document is an error.
func Decode(data []byte) (*models.Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	snap := &models.Snapshot{EditorialDNA: raw.EditorialDNA}
	snap.Assets = decodeRecords[models.MediaAsset](raw.Assets, "assets", &snap.Rejected)
	snap.Slots = decodeRecords[models.PublicationSlot](raw.Slots, "slots", &snap.Rejected)
	snap.Posts = decodeRecords[models.ContentPost](raw.Posts, "posts", &snap.Rejected)
	snap.ContentPacks = decodeRecords[models.ContentPack](raw.ContentPacks, "contentPacks", &snap.Rejected)

	return snap, nil
}

func decodeRecords[T any](items []json.RawMessage, field string, rejected *[]models.ValidationError) []T {
	out := make([]T, 0, len(items))
	for i, item := range items {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			*rejected = append(*rejected, models.ValidationError{
				RecordID: recordID(item),
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Message:  err.Error(),
			})
			continue
		}
		out = append(out, rec)
	}
	return out
}

func recordID(item json.RawMessage) string {
	var ref struct {
		ID      string `json:"id"`
		AssetID string `json:"assetId"`
	}
	if json.Unmarshal(item, &ref) != nil {
		return ""
	}
	if ref.ID != "" {
		return ref.ID
	}
	return ref.AssetID
}
