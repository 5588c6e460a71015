package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/atelier-ops/content-engine/internal/balance"
	"github.com/atelier-ops/content-engine/internal/config"
	"github.com/atelier-ops/content-engine/internal/fingerprint"
	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/planner"
	"github.com/atelier-ops/content-engine/internal/platform"
	"github.com/atelier-ops/content-engine/internal/queue"
	"github.com/atelier-ops/content-engine/internal/repository"
	"github.com/atelier-ops/content-engine/internal/scoring"
	"github.com/atelier-ops/content-engine/internal/similarity"
	"github.com/atelier-ops/content-engine/internal/validation"
)

var (
	ErrAssetNotFound  = errors.New("asset not found")
	ErrNoContentPack  = errors.New("asset has no content pack")
	ErrRepetitiveCopy = errors.New("copy repeats an existing post")
)

// Plan is the outcome of one calendar planning run
type Plan struct {
	Fingerprint string                   `json:"fingerprint"`
	GeneratedAt time.Time                `json:"generatedAt"`
	WeeksAhead  int                      `json:"weeksAhead"`
	Suggestions []models.SlotSuggestion  `json:"suggestions"`
	Skipped     []models.ValidationError `json:"skipped,omitempty"`
}

// MoveResult is a post after a successful status change, with any
// non-blocking channel balance warnings
type MoveResult struct {
	Post     models.ContentPost `json:"post"`
	Warnings []balance.Warning  `json:"warnings,omitempty"`
}

// Engine wires the scheduling components together. It holds only immutable
// configuration and is safe for concurrent use as long as callers do not
// modify the slices they pass in during a call.
type Engine struct {
	scorer     *scoring.Scorer
	planner    *planner.Planner
	detector   *similarity.Detector
	monitor    *balance.Monitor
	generator  *queue.Generator
	gate       *validation.Gate
	calendar   *validation.CalendarValidator
	clock      platform.Clock
	weeksAhead int
	log        zerolog.Logger
}

// NewEngine creates an engine from configuration. clock and ids may be nil
// to use the wall clock and random UUIDs.
func NewEngine(cfg *config.Config, clock platform.Clock, ids platform.IDGenerator, log zerolog.Logger) *Engine {
	if clock == nil {
		clock = platform.SystemClock{}
	}
	e := cfg.Engine
	scorer := scoring.NewScorer(e.Vocabulary, clock)

	log.Debug().
		Int("pillar_rules", len(scorer.Vocabulary().PillarRules)).
		Float64("similarity_threshold", e.SimilarityThreshold).
		Int("gram_size", e.GramSize).
		Int("balance_window", e.BalanceWindow).
		Float64("balance_max_share", e.BalanceMaxShare).
		Int("max_derivatives", e.MaxDerivatives).
		Msg("Initializing content engine")

	return &Engine{
		scorer:     scorer,
		planner:    planner.New(scorer, clock),
		detector:   similarity.NewDetector(e.SimilarityThreshold, e.GramSize),
		monitor:    balance.NewMonitor(e.BalanceWindow, e.BalanceMaxShare, e.BalanceMinPosts),
		generator:  queue.NewGenerator(e.Plans, e.MaxDerivatives, scorer, ids, clock),
		gate:       validation.NewGate(clock),
		calendar:   validation.NewCalendarValidator(clock),
		clock:      clock,
		weeksAhead: e.WeeksAhead,
		log:        log.With().Str("component", "engine").Logger(),
	}
}

// PlanCalendar proposes assets for the open slots of the next weeksAhead
// weeks (the configured default when weeksAhead <= 0). Invalid assets and
// slots are left out and listed in Plan.Skipped.
func (e *Engine) PlanCalendar(snap *models.Snapshot, weeksAhead int) Plan {
	if weeksAhead <= 0 {
		weeksAhead = e.weeksAhead
	}

	assets, slots, skipped := sanitize(snap)
	skipped = append(slices.Clone(snap.Rejected), skipped...)
	for _, s := range skipped {
		e.log.Warn().
			Str("record_id", s.RecordID).
			Str("field", s.Field).
			Str("reason", s.Message).
			Msg("Skipping invalid record")
	}

	suggestions := e.planner.Generate(slots, assets, snap.Posts, snap.EditorialDNA, weeksAhead)

	empty := 0
	for _, s := range suggestions {
		if s.SuggestedAsset == nil {
			empty++
		}
	}

	plan := Plan{
		Fingerprint: fingerprint.Of(snap.EditorialDNA),
		GeneratedAt: e.clock.Now(),
		WeeksAhead:  weeksAhead,
		Suggestions: suggestions,
		Skipped:     skipped,
	}

	e.log.Info().
		Int("weeks_ahead", weeksAhead).
		Int("slots", len(slots)).
		Int("candidates", len(assets)).
		Int("suggestions", len(suggestions)).
		Int("without_inventory", empty).
		Str("fingerprint", plan.Fingerprint).
		Msg("Calendar plan generated")

	return plan
}

// PlanFromSource loads the current snapshot from src and plans it
func (e *Engine) PlanFromSource(ctx context.Context, src repository.SnapshotSource, weeksAhead int) (Plan, error) {
	snap, err := src.Load(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("Failed to load snapshot")
		return Plan{}, fmt.Errorf("load snapshot: %w", err)
	}
	return e.PlanCalendar(snap, weeksAhead), nil
}

// CheckCopy compares newCopy with the copy of existing posts
func (e *Engine) CheckCopy(newCopy string, posts []models.ContentPost) similarity.Result {
	result := e.detector.Check(newCopy, posts)
	if result.IsTooSimilar {
		e.log.Info().
			Str("similar_post", result.SimilarPost.ID).
			Float64("similarity", result.SimilarityScore).
			Msg("Copy flagged as repetitive")
	}
	return result
}

// CheckCopyWithThreshold is CheckCopy with a one-off threshold
func (e *Engine) CheckCopyWithThreshold(newCopy string, posts []models.ContentPost, threshold float64) similarity.Result {
	return e.detector.CheckWithThreshold(newCopy, posts, threshold)
}

// CheckBalance reports channel concentration over recent posts, most recent
// first
func (e *Engine) CheckBalance(recent []models.ContentPost) balance.Report {
	report := e.monitor.Check(recent)
	for _, w := range report.Warnings {
		e.log.Info().
			Str("channel", string(w.Channel)).
			Float64("share", w.Share).
			Int("window", w.WindowSize).
			Msg("Channel over-represented")
	}
	return report
}

// ExpandAsset turns an asset and its content pack into review-ready posts
func (e *Engine) ExpandAsset(snap *models.Snapshot, assetID string) (queue.Expansion, error) {
	asset, ok := snap.Asset(assetID)
	if !ok {
		return queue.Expansion{}, fmt.Errorf("expand %s: %w", assetID, ErrAssetNotFound)
	}
	pack, ok := snap.Pack(assetID)
	if !ok {
		return queue.Expansion{}, fmt.Errorf("expand %s: %w", assetID, ErrNoContentPack)
	}

	exp, err := e.generator.Expand(asset, pack, snap.Posts, snap.EditorialDNA)
	if err != nil {
		e.log.Warn().Err(err).Str("asset_id", assetID).Msg("Asset expansion refused")
		return queue.Expansion{}, err
	}

	e.log.Info().
		Str("asset_id", assetID).
		Str("core_post", exp.Core.ID).
		Int("derivatives", len(exp.Derivatives)).
		Msg("Asset expanded")

	return exp, nil
}

// MovePost changes a post's status. Moves into approved, scheduled or
// published must pass the status gate and must not repeat the copy of a post
// from another asset; a resulting channel imbalance is reported but does not
// block the move. catalogue is every other post, most recent first.
func (e *Engine) MovePost(post models.ContentPost, to models.PostStatus, catalogue []models.ContentPost) (MoveResult, error) {
	moved, err := e.gate.Transition(post, to)
	if err != nil {
		e.log.Warn().
			Str("post_id", post.ID).
			Str("from", string(post.Status)).
			Str("to", string(to)).
			Msg("Status change rejected")
		return MoveResult{Post: post}, err
	}

	if !gatedStatus(to) {
		return MoveResult{Post: moved}, nil
	}

	others := make([]models.ContentPost, 0, len(catalogue))
	for _, p := range catalogue {
		// derivatives of the same asset share copy on purpose
		if p.ID == post.ID || (post.AssetID != "" && p.AssetID == post.AssetID) || p.Status == models.PostStatusRejected {
			continue
		}
		others = append(others, p)
	}

	if sim := e.detector.Check(post.Copy(), others); sim.IsTooSimilar {
		e.log.Warn().
			Str("post_id", post.ID).
			Str("similar_post", sim.SimilarPost.ID).
			Float64("similarity", sim.SimilarityScore).
			Msg("Status change blocked by repetitive copy")
		return MoveResult{Post: post}, &validation.TransitionError{
			PostID: post.ID,
			From:   post.Status,
			To:     to,
			Reason: sim.Suggestion,
			Err:    ErrRepetitiveCopy,
		}
	}

	result := MoveResult{Post: moved}
	if to == models.PostStatusScheduled || to == models.PostStatusPublished {
		recent := append([]models.ContentPost{moved}, catalogue...)
		result.Warnings = e.monitor.Check(recent).Warnings
	}

	e.log.Info().
		Str("post_id", post.ID).
		Str("from", string(post.Status)).
		Str("to", string(to)).
		Int("balance_warnings", len(result.Warnings)).
		Msg("Post status changed")

	return result, nil
}

// ValidateCalendar reports scheduling conflicts within windowDays
func (e *Engine) ValidateCalendar(posts []models.ContentPost, windowDays int) validation.ConflictReport {
	report := e.calendar.ValidateCalendar(posts, windowDays)
	e.log.Info().
		Int("posts", len(posts)).
		Int("window_days", windowDays).
		Int("conflicts", len(report.Conflicts)).
		Msg("Calendar validated")
	return report
}

func gatedStatus(s models.PostStatus) bool {
	return s == models.PostStatusApproved || s == models.PostStatusScheduled || s == models.PostStatusPublished
}

func sanitize(snap *models.Snapshot) ([]models.MediaAsset, []models.PublicationSlot, []models.ValidationError) {
	var skipped []models.ValidationError

	assets := make([]models.MediaAsset, 0, len(snap.Assets))
	for i := range snap.Assets {
		if errs := validation.ValidateAsset(&snap.Assets[i]); len(errs) > 0 {
			skipped = append(skipped, errs...)
			continue
		}
		assets = append(assets, snap.Assets[i])
	}

	slots := make([]models.PublicationSlot, 0, len(snap.Slots))
	for i := range snap.Slots {
		if errs := validation.ValidateSlot(&snap.Slots[i]); len(errs) > 0 {
			skipped = append(skipped, errs...)
			continue
		}
		slots = append(slots, snap.Slots[i])
	}

	return assets, slots, skipped
}
