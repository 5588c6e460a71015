// Package planner proposes one asset per open publication slot over the
// coming weeks.
package planner

import (
	"time"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
	"github.com/atelier-ops/content-engine/internal/scoring"
)

// NoInventoryReason is the justification attached to empty suggestions
const NoInventoryReason = "no ready or analyzed assets left in inventory for this slot"

// DefaultReasonLimit caps how many reasons a justification lists
const DefaultReasonLimit = 3

// Planner walks slots week by week and picks the best-scoring asset for each
type Planner struct {
	scorer      *scoring.Scorer
	clock       platform.Clock
	reasonLimit int
}

// New creates a planner. clock defines "today" for date resolution.
func New(scorer *scoring.Scorer, clock platform.Clock) *Planner {
	if clock == nil {
		clock = platform.SystemClock{}
	}
	return &Planner{scorer: scorer, clock: clock, reasonLimit: DefaultReasonLimit}
}

// Generate proposes an asset for every open slot occurrence in the next
// weeksAhead weeks. Output is week-major and follows the slot order within a
// week. An asset is suggested at most once per call.
func (p *Planner) Generate(slots []models.PublicationSlot, assets []models.MediaAsset, existing []models.ContentPost, dna models.EditorialDNA, weeksAhead int) []models.SlotSuggestion {
	used := UsedAssetIDs(existing)
	pool := CandidatePool(assets, used)
	today := platform.StartOfDay(p.clock.Now())

	suggestions := make([]models.SlotSuggestion, 0, max(weeksAhead, 0)*len(slots))
	for week := 0; week < weeksAhead; week++ {
		for _, slot := range slots {
			if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
				continue
			}
			date := NextOccurrence(today, slot.DayOfWeek, week)
			if Occupied(existing, slot, date) {
				continue
			}

			var s models.SlotSuggestion
			s, used = p.SuggestForSlot(slot, date, week, pool, dna, used)
			suggestions = append(suggestions, s)
		}
	}

	return suggestions
}

// SuggestForSlot picks the highest-scoring asset of pool that is not in used.
// It returns the suggestion and the used set extended with the chosen asset;
// the set passed in is left untouched. Ties go to the earliest pool entry.
func (p *Planner) SuggestForSlot(slot models.PublicationSlot, date time.Time, weekOffset int, pool []models.MediaAsset, dna models.EditorialDNA, used scoring.UsedSet) (models.SlotSuggestion, scoring.UsedSet) {
	suggestion := models.SlotSuggestion{
		Slot:       slot.Clone(),
		Date:       date,
		WeekOffset: weekOffset,
	}

	best := -1
	var bestBreakdown scoring.Breakdown
	for i, asset := range pool {
		if used.Has(asset.ID) {
			continue
		}
		b := p.scorer.Evaluate(asset, slot, dna, used, weekOffset)
		if best < 0 || b.Total > bestBreakdown.Total {
			best = i
			bestBreakdown = b
		}
	}

	if best < 0 {
		suggestion.Reason = NoInventoryReason
		return suggestion, used
	}

	chosen := pool[best].Clone()
	suggestion.SuggestedAsset = &chosen
	suggestion.Score = bestBreakdown.Total
	suggestion.Reason = scoring.Justify(bestBreakdown, p.reasonLimit)

	return suggestion, used.With(chosen.ID)
}
