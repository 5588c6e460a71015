// Package scoring ranks media assets against a publication slot with an
// additive point system. Scores are deterministic for a given clock reading.
package scoring

import (
	"fmt"
	"math"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
)

const (
	BaseScore = 50

	FreshWeekPoints      = 20
	FreshFortnightPoints = 15
	FreshMonthPoints     = 10
	StalePoints          = 5

	PillarMatchPoints  = 15
	ChannelFitPoints   = 10
	DiversityPenalty   = 30
	CleanAssetPoints   = 5
	WellTaggedPoints   = 5
	WellTaggedMinTags  = 3
	WeekOffsetPenalty  = 2
	qualityDivisor     = 5.0
	highQualityPoints  = 14 // quality >= 70
)

// ReasonKind names the rule that contributed points
type ReasonKind string

const (
	ReasonFreshness  ReasonKind = "freshness"
	ReasonQuality    ReasonKind = "quality"
	ReasonPillar     ReasonKind = "pillar"
	ReasonChannelFit ReasonKind = "channel-fit"
	ReasonDiversity  ReasonKind = "diversity"
	ReasonClean      ReasonKind = "clean"
	ReasonTags       ReasonKind = "tags"
	ReasonHorizon    ReasonKind = "horizon"
)

// Reason is one line of a score breakdown
type Reason struct {
	Kind   ReasonKind `json:"kind"`
	Points int        `json:"points"`
	Detail string     `json:"detail"`
}

// Breakdown is a score together with the rules that produced it
type Breakdown struct {
	Total   int      `json:"total"`
	Reasons []Reason `json:"reasons"`
	AgeDays int      `json:"ageDays"`
}

// Scorer evaluates assets against slots
type Scorer struct {
	vocab Vocabulary
	clock platform.Clock
}

// NewScorer creates a scorer using vocab for pillar and channel matching
func NewScorer(vocab Vocabulary, clock platform.Clock) *Scorer {
	if clock == nil {
		clock = platform.SystemClock{}
	}
	return &Scorer{vocab: vocab, clock: clock}
}

// Vocabulary returns the scorer's matching vocabulary
func (s *Scorer) Vocabulary() Vocabulary {
	return s.vocab
}

// Score returns the clamped total for asset in slot
func (s *Scorer) Score(asset models.MediaAsset, slot models.PublicationSlot, dna models.EditorialDNA, used UsedSet, weekOffset int) int {
	return s.Evaluate(asset, slot, dna, used, weekOffset).Total
}

// Evaluate scores asset in slot and records every rule that fired
func (s *Scorer) Evaluate(asset models.MediaAsset, slot models.PublicationSlot, dna models.EditorialDNA, used UsedSet, weekOffset int) Breakdown {
	b := Breakdown{AgeDays: asset.AgeDays(s.clock.Now())}
	total := BaseScore
	add := func(kind ReasonKind, points int, detail string) {
		total += points
		b.Reasons = append(b.Reasons, Reason{Kind: kind, Points: points, Detail: detail})
	}

	add(ReasonFreshness, freshnessPoints(b.AgeDays), fmt.Sprintf("%d days old", b.AgeDays))

	if asset.QualityScore != nil {
		q := *asset.QualityScore
		add(ReasonQuality, int(math.Round(float64(q)/qualityDivisor)), fmt.Sprintf("quality %d/100", q))
	}

	if pillar, ok := dna.Pillar(slot.PillarID); ok && s.vocab.MatchesPillar(pillar.Name, asset) {
		add(ReasonPillar, PillarMatchPoints, fmt.Sprintf("matches pillar %q", pillar.Name))
	}

	if fit, ch := s.channelFit(asset, slot); fit {
		add(ReasonChannelFit, ChannelFitPoints, fmt.Sprintf("%s suits %s", asset.Type, ch))
	}

	if used.Has(asset.ID) {
		add(ReasonDiversity, -DiversityPenalty, "already used in this plan")
	}

	if len(asset.Restrictions) == 0 {
		add(ReasonClean, CleanAssetPoints, "no restrictions")
	}

	if len(asset.Tags) >= WellTaggedMinTags {
		add(ReasonTags, WellTaggedPoints, fmt.Sprintf("%d tags", len(asset.Tags)))
	}

	if weekOffset > 0 {
		add(ReasonHorizon, -WeekOffsetPenalty*weekOffset, fmt.Sprintf("%d weeks ahead", weekOffset))
	}

	b.Total = max(total, 0)
	return b
}

func (s *Scorer) channelFit(asset models.MediaAsset, slot models.PublicationSlot) (bool, models.Channel) {
	for _, ch := range slot.Channels {
		switch {
		case asset.Type == models.AssetTypeVideo && s.vocab.IsVideoChannel(ch):
			return true, ch
		case asset.Type == models.AssetTypeImage && s.vocab.IsFeedChannel(ch):
			return true, ch
		}
	}
	return false, ""
}

func freshnessPoints(ageDays int) int {
	switch {
	case ageDays < 7:
		return FreshWeekPoints
	case ageDays < 14:
		return FreshFortnightPoints
	case ageDays < 30:
		return FreshMonthPoints
	default:
		return StalePoints
	}
}

// Justify builds a short human-readable explanation from the strongest
// freshness, quality and tagging reasons, at most limit of them.
func Justify(b Breakdown, limit int) string {
	var parts []string
	for _, r := range b.Reasons {
		if len(parts) == limit {
			break
		}
		switch r.Kind {
		case ReasonFreshness:
			if r.Points >= FreshFortnightPoints {
				parts = append(parts, fmt.Sprintf("recent content (%s)", r.Detail))
			}
		case ReasonQuality:
			if r.Points >= highQualityPoints {
				parts = append(parts, fmt.Sprintf("high %s", r.Detail))
			}
		case ReasonPillar:
			parts = append(parts, r.Detail)
		case ReasonTags:
			parts = append(parts, fmt.Sprintf("well organised (%s)", r.Detail))
		}
	}
	if len(parts) == 0 {
		return "best available asset"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}
