package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/atelier-ops/content-engine/internal/config"
	"github.com/atelier-ops/content-engine/internal/mocks"
	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
	"github.com/atelier-ops/content-engine/internal/queue"
	"github.com/atelier-ops/content-engine/internal/repository"
	"github.com/atelier-ops/content-engine/internal/service"
	"github.com/atelier-ops/content-engine/internal/validation"
)

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func newTestEngine() *service.Engine {
	return service.NewEngine(config.Default(), platform.FixedClock{T: testNow}, mocks.NewSequenceIDGenerator("post"), zerolog.Nop())
}

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Assets: []models.MediaAsset{
			{ID: "a1", CreatedAt: testNow.AddDate(0, 0, -3), Type: models.AssetTypeImage, Status: models.AssetStatusReady, QualityScore: intPtr(85), MediaType: models.MediaTypeRender},
			{ID: "a2", CreatedAt: testNow.AddDate(0, 0, -20), Type: models.AssetTypeVideo, Status: models.AssetStatusAnalyzed, QualityScore: intPtr(60), MediaType: models.MediaTypeObra},
			{ID: "bad-quality", CreatedAt: testNow, Type: models.AssetTypeImage, Status: models.AssetStatusReady, QualityScore: intPtr(140)},
		},
		Slots: []models.PublicationSlot{
			{ID: "mon", DayOfWeek: 1, Channels: []models.Channel{models.ChannelInstagramFeed}, PillarID: "p5"},
			{ID: "broken", DayOfWeek: 9, Channels: []models.Channel{models.ChannelTikTok}},
		},
		EditorialDNA: models.EditorialDNA{Pillars: []models.Pillar{{ID: "p5", Name: "Resultado"}}},
		ContentPacks: []models.ContentPack{
			{AssetID: "a2", CopyPT: "Acompanhe a obra da Casa do Lago desde as fundações até à cobertura final.", Hashtags: []string{"#obra"}},
		},
	}
}

func TestEngine_PlanCalendar(t *testing.T) {
	e := newTestEngine()

	plan := e.PlanCalendar(testSnapshot(), 2)
	if plan.WeeksAhead != 2 {
		t.Errorf("WeeksAhead = %d", plan.WeeksAhead)
	}
	if len(plan.Suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2 (broken slot skipped)", len(plan.Suggestions))
	}
	if plan.Suggestions[0].SuggestedAsset == nil || plan.Suggestions[0].SuggestedAsset.ID != "a1" {
		t.Errorf("week 0 = %+v, want a1", plan.Suggestions[0].SuggestedAsset)
	}
	for _, s := range plan.Suggestions {
		if s.SuggestedAsset != nil && s.SuggestedAsset.ID == "bad-quality" {
			t.Error("asset with out-of-range quality was suggested")
		}
	}
	if len(plan.Skipped) != 2 {
		t.Errorf("Skipped = %+v, want the bad asset and the bad slot", plan.Skipped)
	}
	if len(plan.Fingerprint) != 16 {
		t.Errorf("Fingerprint = %q", plan.Fingerprint)
	}
	if !plan.GeneratedAt.Equal(testNow) {
		t.Errorf("GeneratedAt = %v", plan.GeneratedAt)
	}

	if got := e.PlanCalendar(testSnapshot(), 0); got.WeeksAhead != config.Default().Engine.WeeksAhead {
		t.Errorf("default WeeksAhead = %d", got.WeeksAhead)
	}
}

func TestEngine_PlanCalendar_ReportsUndecodableRecords(t *testing.T) {
	e := newTestEngine()
	snap := testSnapshot()
	snap.Rejected = []models.ValidationError{{RecordID: "p9", Field: "posts[3]", Message: "unrecognised date"}}

	plan := e.PlanCalendar(snap, 1)
	if len(plan.Skipped) != 3 || plan.Skipped[0].RecordID != "p9" {
		t.Errorf("Skipped = %+v, want the undecodable post first", plan.Skipped)
	}
}

func TestEngine_PlanFromSource(t *testing.T) {
	e := newTestEngine()

	src := mocks.NewMockSnapshotSource(testSnapshot())
	plan, err := e.PlanFromSource(context.Background(), src, 1)
	if err != nil {
		t.Fatalf("PlanFromSource() error = %v", err)
	}
	if len(plan.Suggestions) != 1 || src.LoadCalls != 1 {
		t.Errorf("suggestions = %d, load calls = %d", len(plan.Suggestions), src.LoadCalls)
	}

	empty := mocks.NewMockSnapshotSource(nil)
	if _, err := e.PlanFromSource(context.Background(), empty, 1); !errors.Is(err, repository.ErrSnapshotNotFound) {
		t.Errorf("empty source error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestEngine_ExpandAsset(t *testing.T) {
	e := newTestEngine()
	snap := testSnapshot()

	exp, err := e.ExpandAsset(snap, "a2")
	if err != nil {
		t.Fatalf("ExpandAsset() error = %v", err)
	}
	if exp.Core.ID != "post-1" || exp.Core.Channel != models.ChannelInstagramReels {
		t.Errorf("core = %s on %s", exp.Core.ID, exp.Core.Channel)
	}
	if len(exp.Derivatives) != config.Default().Engine.MaxDerivatives {
		t.Errorf("got %d derivatives", len(exp.Derivatives))
	}

	if _, err := e.ExpandAsset(snap, "nope"); !errors.Is(err, service.ErrAssetNotFound) {
		t.Errorf("unknown asset error = %v", err)
	}
	if _, err := e.ExpandAsset(snap, "a1"); !errors.Is(err, service.ErrNoContentPack) {
		t.Errorf("asset without pack error = %v", err)
	}

	snap.Posts = append(snap.Posts, exp.Posts()...)
	if _, err := e.ExpandAsset(snap, "a2"); !errors.Is(err, queue.ErrAlreadyQueued) {
		t.Errorf("second expansion error = %v, want ErrAlreadyQueued", err)
	}
}

func TestEngine_MovePost_GateRejects(t *testing.T) {
	e := newTestEngine()
	post := models.ContentPost{ID: "p1", Channel: models.ChannelLinkedIn, Status: models.PostStatusReview}

	res, err := e.MovePost(post, models.PostStatusScheduled, nil)
	if !errors.Is(err, validation.ErrNotApproved) {
		t.Fatalf("MovePost() error = %v, want ErrNotApproved", err)
	}
	if res.Post.Status != models.PostStatusReview {
		t.Errorf("rejected move changed status to %s", res.Post.Status)
	}
}

func TestEngine_MovePost_BlocksRepetitiveCopy(t *testing.T) {
	e := newTestEngine()
	copyText := "A nova fachada em cortiça da Casa do Lago reduz o consumo energético e devolve textura ao bairro."
	post := models.ContentPost{ID: "p1", AssetID: "a1", Channel: models.ChannelLinkedIn, Status: models.PostStatusReview, CopyPT: copyText}
	catalogue := []models.ContentPost{
		{ID: "old", AssetID: "a9", Channel: models.ChannelInstagramFeed, Status: models.PostStatusPublished, CopyPT: copyText},
	}

	_, err := e.MovePost(post, models.PostStatusApproved, catalogue)
	if !errors.Is(err, service.ErrRepetitiveCopy) {
		t.Fatalf("MovePost() error = %v, want ErrRepetitiveCopy", err)
	}
	var te *validation.TransitionError
	if !errors.As(err, &te) || te.Reason == "" {
		t.Errorf("expected a TransitionError with a reason, got %v", err)
	}

	// same asset: a derivative is allowed to repeat its core copy
	catalogue[0].AssetID = "a1"
	res, err := e.MovePost(post, models.PostStatusApproved, catalogue)
	if err != nil {
		t.Fatalf("MovePost() for sibling copy error = %v", err)
	}
	if res.Post.Status != models.PostStatusApproved {
		t.Errorf("status = %s, want approved", res.Post.Status)
	}

	// moves outside the approval path are never blocked by similarity
	catalogue[0].AssetID = "a9"
	if _, err := e.MovePost(post, models.PostStatusInbox, catalogue); err != nil {
		t.Errorf("move to inbox error = %v", err)
	}
}

func TestEngine_MovePost_ReportsImbalance(t *testing.T) {
	e := newTestEngine()
	var catalogue []models.ContentPost
	for i := 0; i < 9; i++ {
		catalogue = append(catalogue, models.ContentPost{ID: "feed-" + string(rune('a'+i)), Channel: models.ChannelInstagramFeed, Status: models.PostStatusPublished})
	}
	post := models.ContentPost{ID: "p1", Channel: models.ChannelInstagramFeed, Status: models.PostStatusApproved}

	res, err := e.MovePost(post, models.PostStatusScheduled, catalogue)
	if err != nil {
		t.Fatalf("MovePost() error = %v", err)
	}
	if res.Post.Status != models.PostStatusScheduled {
		t.Errorf("status = %s", res.Post.Status)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Channel != models.ChannelInstagramFeed {
		t.Errorf("warnings = %+v, want one for instagram-feed", res.Warnings)
	}
}

func TestEngine_CheckCopyAndBalanceAndCalendar(t *testing.T) {
	e := newTestEngine()
	text := "Visita guiada ao estaleiro da escola primária de Alvalade com a equipa."
	posts := []models.ContentPost{{ID: "x", CopyPT: text, Channel: models.ChannelLinkedIn}}

	if got := e.CheckCopy(text, posts); !got.IsTooSimilar {
		t.Error("identical copy not flagged")
	}
	if got := e.CheckBalance(posts); !got.Balanced {
		t.Error("a single post should be balanced")
	}

	day := testNow.AddDate(0, 0, 3)
	calendar := []models.ContentPost{
		{ID: "c1", Channel: models.ChannelTikTok, Status: models.PostStatusScheduled, ScheduledDate: &day},
		{ID: "c2", Channel: models.ChannelTikTok, Status: models.PostStatusScheduled, ScheduledDate: &day},
	}
	if got := e.ValidateCalendar(calendar, 14); got.Valid {
		t.Error("double booking not detected")
	}
}
