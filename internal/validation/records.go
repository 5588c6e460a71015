package validation

import (
	"fmt"

	"github.com/atelier-ops/content-engine/internal/models"
)

// ValidateAsset checks a media asset record
func ValidateAsset(asset *models.MediaAsset) []models.ValidationError {
	var errors []models.ValidationError

	if asset.ID == "" {
		errors = append(errors, models.ValidationError{Field: "id", Message: "id is required"})
	}

	if asset.Type == "" {
		errors = append(errors, models.ValidationError{RecordID: asset.ID, Field: "type", Message: "type is required"})
	} else if !models.ValidAssetTypes[asset.Type] {
		errors = append(errors, models.ValidationError{
			RecordID: asset.ID,
			Field:    "type",
			Message:  "invalid type, must be one of: image, video",
			Value:    asset.Type,
		})
	}

	if asset.Status != "" && !models.ValidAssetStatuses[asset.Status] {
		errors = append(errors, models.ValidationError{RecordID: asset.ID, Field: "status", Message: "invalid status", Value: asset.Status})
	}

	if asset.QualityScore != nil {
		if q := *asset.QualityScore; q < 0 || q > models.MaxQualityScore {
			errors = append(errors, models.ValidationError{
				RecordID: asset.ID,
				Field:    "qualityScore",
				Message:  fmt.Sprintf("qualityScore must be between 0 and %d", models.MaxQualityScore),
				Value:    q,
			})
		}
	}

	if asset.CreatedAt.IsZero() {
		errors = append(errors, models.ValidationError{RecordID: asset.ID, Field: "createdAt", Message: "createdAt is required"})
	}

	return errors
}

// ValidateSlot checks a publication slot record
func ValidateSlot(slot *models.PublicationSlot) []models.ValidationError {
	var errors []models.ValidationError

	if slot.ID == "" {
		errors = append(errors, models.ValidationError{Field: "id", Message: "id is required"})
	}

	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		errors = append(errors, models.ValidationError{
			RecordID: slot.ID,
			Field:    "dayOfWeek",
			Message:  "dayOfWeek must be between 0 (Sunday) and 6 (Saturday)",
			Value:    slot.DayOfWeek,
		})
	}

	if len(slot.Channels) == 0 {
		errors = append(errors, models.ValidationError{RecordID: slot.ID, Field: "channels", Message: "at least one channel is required"})
	}
	for _, ch := range slot.Channels {
		if ch == "" {
			errors = append(errors, models.ValidationError{RecordID: slot.ID, Field: "channels", Message: "channel must not be empty"})
			break
		}
	}

	return errors
}

// ValidatePost checks a content post record
func ValidatePost(post *models.ContentPost) []models.ValidationError {
	var errors []models.ValidationError

	if post.ID == "" {
		errors = append(errors, models.ValidationError{Field: "id", Message: "id is required"})
	}

	if post.Channel == "" {
		errors = append(errors, models.ValidationError{RecordID: post.ID, Field: "channel", Message: "channel is required"})
	}

	if post.Status == "" {
		errors = append(errors, models.ValidationError{RecordID: post.ID, Field: "status", Message: "status is required"})
	} else if !models.ValidPostStatuses[post.Status] {
		errors = append(errors, models.ValidationError{RecordID: post.ID, Field: "status", Message: "invalid status", Value: post.Status})
	}

	if post.ParentPostID != "" && post.ParentPostID == post.ID {
		errors = append(errors, models.ValidationError{RecordID: post.ID, Field: "parentPostId", Message: "post cannot be its own parent"})
	}

	return errors
}
