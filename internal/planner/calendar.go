package planner

import (
	"time"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/scoring"
)

// NextOccurrence returns the date of the first dayOfWeek on or after today,
// moved weekOffset weeks forward. today is expected at midnight.
func NextOccurrence(today time.Time, dayOfWeek, weekOffset int) time.Time {
	diff := (dayOfWeek - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, diff+7*weekOffset)
}

// Occupied reports whether a live post already fills slot on date. A post
// counts when it falls on the same calendar day and either names this slot
// or names no slot at all.
func Occupied(posts []models.ContentPost, slot models.PublicationSlot, date time.Time) bool {
	day := date.Format(models.DateLayout)
	for _, p := range posts {
		if p.Status == models.PostStatusRejected || p.ScheduledDay() != day {
			continue
		}
		if p.SlotID == "" || p.SlotID == slot.ID {
			return true
		}
	}
	return false
}

// UsedAssetIDs collects asset ids consumed by scheduled or published posts
func UsedAssetIDs(posts []models.ContentPost) scoring.UsedSet {
	used := make(scoring.UsedSet)
	for _, p := range posts {
		if p.AssetID == "" {
			continue
		}
		if p.Status == models.PostStatusScheduled || p.Status == models.PostStatusPublished {
			used[p.AssetID] = struct{}{}
		}
	}
	return used
}

// CandidatePool returns the schedulable assets not already in used,
// preserving input order
func CandidatePool(assets []models.MediaAsset, used scoring.UsedSet) []models.MediaAsset {
	pool := make([]models.MediaAsset, 0, len(assets))
	for _, a := range assets {
		if a.ID == "" || !a.Schedulable() || used.Has(a.ID) {
			continue
		}
		pool = append(pool, a)
	}
	return pool
}
