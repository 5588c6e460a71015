// Package queue expands one analyzed asset into a core post and a bounded
// set of derivative posts on other channels.
package queue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
	"github.com/atelier-ops/content-engine/internal/scoring"
)

// DefaultMaxDerivatives bounds how many derivatives one asset produces
const DefaultMaxDerivatives = 3

var (
	ErrAssetNotReady = errors.New("asset is not analyzed or ready")
	ErrAlreadyQueued = errors.New("asset already has a core post")
	ErrPackMismatch  = errors.New("content pack belongs to another asset")
	ErrNoPlan        = errors.New("no articulation plan for asset type")
)

// Expansion is the result of expanding one asset
type Expansion struct {
	Core        models.ContentPost   `json:"core"`
	Derivatives []models.ContentPost `json:"derivatives"`
}

// Posts returns the core post followed by its derivatives
func (e Expansion) Posts() []models.ContentPost {
	return append([]models.ContentPost{e.Core}, e.Derivatives...)
}

// Generator builds review-ready posts from assets and content packs
type Generator struct {
	plans          map[models.AssetType]TypePlan
	maxDerivatives int
	scorer         *scoring.Scorer
	ids            platform.IDGenerator
	clock          platform.Clock
}

// NewGenerator creates a generator. A nil plans map uses DefaultPlans and a
// non-positive maxDerivatives uses DefaultMaxDerivatives.
func NewGenerator(plans map[models.AssetType]TypePlan, maxDerivatives int, scorer *scoring.Scorer, ids platform.IDGenerator, clock platform.Clock) *Generator {
	if plans == nil {
		plans = DefaultPlans()
	}
	if maxDerivatives <= 0 {
		maxDerivatives = DefaultMaxDerivatives
	}
	if ids == nil {
		ids = platform.UUIDGenerator{}
	}
	if clock == nil {
		clock = platform.SystemClock{}
	}
	return &Generator{
		plans:          plans,
		maxDerivatives: maxDerivatives,
		scorer:         scorer,
		ids:            ids,
		clock:          clock,
	}
}

// Expand produces a core post and its derivatives for asset. Every post is
// created in review status; nothing is approved or scheduled here.
// Derivative channels that are rarer in catalogue come first.
func (g *Generator) Expand(asset models.MediaAsset, pack models.ContentPack, catalogue []models.ContentPost, dna models.EditorialDNA) (Expansion, error) {
	if !asset.Schedulable() {
		return Expansion{}, fmt.Errorf("expand %s (status %s): %w", asset.ID, asset.Status, ErrAssetNotReady)
	}
	if pack.AssetID != "" && pack.AssetID != asset.ID {
		return Expansion{}, fmt.Errorf("expand %s with pack for %s: %w", asset.ID, pack.AssetID, ErrPackMismatch)
	}
	for _, p := range catalogue {
		if p.AssetID == asset.ID && p.IsCore() && p.Status != models.PostStatusRejected {
			return Expansion{}, fmt.Errorf("expand %s: post %s: %w", asset.ID, p.ID, ErrAlreadyQueued)
		}
	}
	plan, ok := g.plans[asset.Type]
	if !ok {
		return Expansion{}, fmt.Errorf("expand %s (type %q): %w", asset.ID, asset.Type, ErrNoPlan)
	}

	scored := withPackTags(asset, pack.Tags)
	now := g.clock.Now()

	exp := Expansion{Core: g.build(plan.Core, scored, pack, dna, now)}

	for _, tmpl := range g.pickDerivatives(plan, catalogue) {
		d := g.build(tmpl, scored, pack, dna, now)
		d.ParentPostID = exp.Core.ID
		exp.Core.DerivativeIDs = append(exp.Core.DerivativeIDs, d.ID)
		exp.Derivatives = append(exp.Derivatives, d)
	}

	return exp, nil
}

func (g *Generator) build(tmpl Template, asset models.MediaAsset, pack models.ContentPack, dna models.EditorialDNA, now time.Time) models.ContentPost {
	post := models.ContentPost{
		ID:        g.ids.NewID(),
		AssetID:   asset.ID,
		Channel:   tmpl.Channel,
		Format:    tmpl.Format,
		CopyPT:    TrimCopy(pack.CopyPT, tmpl.MaxCopyRunes),
		Hashtags:  capHashtags(pack.Hashtags, tmpl.MaxHashtags),
		CTA:       pack.CTA,
		Status:    models.PostStatusReview,
		CreatedAt: now,
	}
	if tmpl.IncludeEN {
		post.CopyEN = TrimCopy(pack.CopyEN, tmpl.MaxCopyRunes)
	}
	if g.scorer != nil {
		slot := models.PublicationSlot{Channels: []models.Channel{tmpl.Channel}}
		score := g.scorer.Score(asset, slot, dna, nil, 0)
		post.Score = &score
	}
	return post
}

// pickDerivatives keeps at most maxDerivatives templates on distinct
// channels other than the core one, least-used channels first.
func (g *Generator) pickDerivatives(plan TypePlan, catalogue []models.ContentPost) []Template {
	usage := make(map[models.Channel]int)
	for _, p := range catalogue {
		if p.Channel != "" && p.Status != models.PostStatusRejected {
			usage[p.Channel]++
		}
	}

	candidates := make([]Template, 0, len(plan.Derivatives))
	seen := map[models.Channel]bool{plan.Core.Channel: true}
	for _, t := range plan.Derivatives {
		if t.Channel == "" || seen[t.Channel] {
			continue
		}
		seen[t.Channel] = true
		candidates = append(candidates, t)
	}

	slices.SortStableFunc(candidates, func(a, b Template) int {
		return usage[a.Channel] - usage[b.Channel]
	})

	return candidates[:min(len(candidates), g.maxDerivatives)]
}

func withPackTags(asset models.MediaAsset, tags []string) models.MediaAsset {
	out := asset.Clone()
	for _, t := range tags {
		if t != "" && !slices.Contains(out.Tags, t) {
			out.Tags = append(out.Tags, t)
		}
	}
	return out
}

func capHashtags(tags []string, n int) []string {
	if n <= 0 || len(tags) <= n {
		return slices.Clone(tags)
	}
	return slices.Clone(tags[:n])
}

// TrimCopy shortens s to at most limit runes plus an ellipsis, cutting at
// the last word boundary. A non-positive limit returns s unchanged.
func TrimCopy(s string, limit int) string {
	r := []rune(strings.TrimSpace(s))
	if limit <= 0 || len(r) <= limit {
		return string(r)
	}
	cut := r[:limit]
	if i := lastSpace(cut); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRightFunc(string(cut), func(c rune) bool {
		return unicode.IsSpace(c) || unicode.IsPunct(c)
	}) + "…"
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsSpace(r[i]) {
			return i
		}
	}
	return -1
}
