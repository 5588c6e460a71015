package models

import (
	"time"
)

// SlotSuggestion proposes one asset for one dated slot occurrence.
// SuggestedAsset is nil when no inventory was left.
type SlotSuggestion struct {
	Slot           PublicationSlot `json:"slot"`
	SuggestedAsset *MediaAsset     `json:"suggestedAsset"`
	Reason         string          `json:"reason"`
	Score          int             `json:"score"`
	Date           time.Time       `json:"date"`
	WeekOffset     int             `json:"weekOffset"`
}

// ValidationError represents a single invalid field on an input record
type ValidationError struct {
	RecordID string      `json:"recordId,omitempty"`
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
}

// Snapshot is the caller's full working state, as exported from its store
type Snapshot struct {
	Assets       []MediaAsset      `json:"assets"`
	Slots        []PublicationSlot `json:"slots"`
	Posts        []ContentPost     `json:"posts"`
	EditorialDNA EditorialDNA      `json:"editorialDNA"`
	ContentPacks []ContentPack     `json:"contentPacks,omitempty"`

	// Rejected lists records that could not be decoded and were left out
	Rejected []ValidationError `json:"-"`
}

// Pack returns the content pack for assetID
func (s *Snapshot) Pack(assetID string) (ContentPack, bool) {
	for _, p := range s.ContentPacks {
		if p.AssetID == assetID {
			return p, true
		}
	}
	return ContentPack{}, false
}

// Asset looks up an asset by id
func (s *Snapshot) Asset(id string) (MediaAsset, bool) {
	for _, a := range s.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return MediaAsset{}, false
}

// Post looks up a post by id
func (s *Snapshot) Post(id string) (ContentPost, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return ContentPost{}, false
}
