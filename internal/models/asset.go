package models

import (
	"time"
)

// AssetType distinguishes still images from video
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
)

// AssetStatus is the lifecycle state of a media asset
type AssetStatus string

const (
	AssetStatusDraft      AssetStatus = "draft"
	AssetStatusToClassify AssetStatus = "to-classify"
	AssetStatusAnalyzed   AssetStatus = "analyzed"
	AssetStatusReady      AssetStatus = "ready"
	AssetStatusPublished  AssetStatus = "published"
)

// MediaType is the editorial discriminator of an asset
type MediaType string

const (
	MediaTypeObra        MediaType = "obra"
	MediaTypeRender      MediaType = "render"
	MediaTypeDetalhe     MediaType = "detalhe"
	MediaTypeBeforeAfter MediaType = "before-after"
	MediaTypeEquipa      MediaType = "equipa"
	MediaTypeOther       MediaType = "other"
)

// ValidAssetTypes defines allowed asset types
var ValidAssetTypes = map[AssetType]bool{
	AssetTypeImage: true,
	AssetTypeVideo: true,
}

// ValidAssetStatuses defines allowed asset statuses
var ValidAssetStatuses = map[AssetStatus]bool{
	AssetStatusDraft:      true,
	AssetStatusToClassify: true,
	AssetStatusAnalyzed:   true,
	AssetStatusReady:      true,
	AssetStatusPublished:  true,
}

// MaxQualityScore is the upper bound of MediaAsset.QualityScore
const MaxQualityScore = 100

// MediaAsset represents an uploaded photo or video in the library
type MediaAsset struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"createdAt"`
	Type         AssetType   `json:"type"`
	Status       AssetStatus `json:"status"`
	Tags         []string    `json:"tags,omitempty"`
	QualityScore *int        `json:"qualityScore,omitempty"`
	ProjectID    string      `json:"projectId,omitempty"`
	Restrictions []string    `json:"restrictions,omitempty"`
	MediaType    MediaType   `json:"mediaType,omitempty"`
}

// Schedulable reports whether the asset may be offered for a slot
func (a MediaAsset) Schedulable() bool {
	return a.Status == AssetStatusReady || a.Status == AssetStatusAnalyzed
}

// AgeDays returns the number of whole days between CreatedAt and now
func (a MediaAsset) AgeDays(now time.Time) int {
	if now.Before(a.CreatedAt) {
		return 0
	}
	return int(now.Sub(a.CreatedAt).Hours() / 24)
}

// Clone returns a copy that shares no slices or pointers with a
func (a MediaAsset) Clone() MediaAsset {
	out := a
	out.Tags = append([]string(nil), a.Tags...)
	out.Restrictions = append([]string(nil), a.Restrictions...)
	if a.QualityScore != nil {
		q := *a.QualityScore
		out.QualityScore = &q
	}
	return out
}
