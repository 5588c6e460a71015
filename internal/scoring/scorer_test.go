package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
)

var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func newTestScorer() *Scorer {
	return NewScorer(DefaultVocabulary(), platform.FixedClock{T: testNow})
}

func daysAgo(n int) time.Time {
	return testNow.Add(-time.Duration(n) * 24 * time.Hour)
}

func testDNA() models.EditorialDNA {
	return models.EditorialDNA{
		Pillars: []models.Pillar{
			{ID: "p1", Name: "Obra em curso"},
			{ID: "p2", Name: "Detalhes & Materiais"},
			{ID: "p5", Name: "Resultado / Portfolio"},
		},
		Voices: []models.Voice{{ID: "v1", Name: "Técnica"}},
	}
}

func TestScore_AdditiveFormula(t *testing.T) {
	s := newTestScorer()
	asset := models.MediaAsset{
		ID:           "a1",
		CreatedAt:    daysAgo(2),
		Type:         models.AssetTypeImage,
		Status:       models.AssetStatusReady,
		QualityScore: intPtr(80),
	}
	slot := models.PublicationSlot{ID: "s1", DayOfWeek: 1, Channels: []models.Channel{models.ChannelTikTok}}

	// base 50 + fresh 20 + quality 16 + clean 5
	if got := s.Score(asset, slot, testDNA(), nil, 0); got != 91 {
		t.Errorf("Score() = %d, want 91", got)
	}
}

func TestScore_Freshness(t *testing.T) {
	s := newTestScorer()
	slot := models.PublicationSlot{ID: "s1"}

	tests := []struct {
		age  int
		want int
	}{
		{0, BaseScore + 20 + 5},
		{6, BaseScore + 20 + 5},
		{7, BaseScore + 15 + 5},
		{13, BaseScore + 15 + 5},
		{14, BaseScore + 10 + 5},
		{29, BaseScore + 10 + 5},
		{30, BaseScore + 5 + 5},
		{400, BaseScore + 5 + 5},
	}

	for _, tt := range tests {
		asset := models.MediaAsset{ID: "a", CreatedAt: daysAgo(tt.age), Type: models.AssetTypeImage}
		if got := s.Score(asset, slot, models.EditorialDNA{}, nil, 0); got != tt.want {
			t.Errorf("age %d: Score() = %d, want %d", tt.age, got, tt.want)
		}
	}
}

func TestScore_DiversityPenaltyIsExactlyThirty(t *testing.T) {
	s := newTestScorer()
	asset := models.MediaAsset{
		ID:           "a1",
		CreatedAt:    daysAgo(10),
		Type:         models.AssetTypeVideo,
		QualityScore: intPtr(55),
		Tags:         []string{"obra", "lisboa", "betão"},
	}
	slot := models.PublicationSlot{ID: "s1", PillarID: "p1", Channels: []models.Channel{models.ChannelInstagramReels}}

	fresh := s.Score(asset, slot, testDNA(), nil, 1)
	used := s.Score(asset, slot, testDNA(), NewUsedSet("a1"), 1)
	if fresh-used != DiversityPenalty {
		t.Errorf("penalty = %d, want %d (fresh=%d used=%d)", fresh-used, DiversityPenalty, fresh, used)
	}

	other := s.Score(asset, slot, testDNA(), NewUsedSet("someone-else"), 1)
	if other != fresh {
		t.Errorf("unrelated used id changed score: %d vs %d", other, fresh)
	}
}

func TestScore_ClampedAtZero(t *testing.T) {
	s := newTestScorer()
	asset := models.MediaAsset{
		ID:           "old",
		CreatedAt:    daysAgo(365),
		Type:         models.AssetTypeImage,
		Restrictions: []string{"faces", "client-nda"},
	}
	slot := models.PublicationSlot{ID: "s1"}

	for _, week := range []int{0, 5, 20, 100} {
		if got := s.Score(asset, slot, models.EditorialDNA{}, NewUsedSet("old"), week); got < 0 {
			t.Errorf("week %d: Score() = %d, want >= 0", week, got)
		}
	}
	if got := s.Score(asset, slot, models.EditorialDNA{}, NewUsedSet("old"), 100); got != 0 {
		t.Errorf("Score() = %d, want 0", got)
	}
}

func TestScore_PillarMatch(t *testing.T) {
	s := newTestScorer()
	dna := testDNA()

	tests := []struct {
		name   string
		pillar string
		asset  models.MediaAsset
		want   bool
	}{
		{
			name:   "render matches resultado",
			pillar: "p5",
			asset:  models.MediaAsset{ID: "a", MediaType: models.MediaTypeRender},
			want:   true,
		},
		{
			name:   "portfolio tag matches resultado",
			pillar: "p5",
			asset:  models.MediaAsset{ID: "a", MediaType: models.MediaTypeOther, Tags: []string{"Portfolio 2025"}},
			want:   true,
		},
		{
			name:   "before-after matches obra",
			pillar: "p1",
			asset:  models.MediaAsset{ID: "a", MediaType: models.MediaTypeBeforeAfter},
			want:   true,
		},
		{
			name:   "detalhe matches materials pillar",
			pillar: "p2",
			asset:  models.MediaAsset{ID: "a", MediaType: models.MediaTypeDetalhe},
			want:   true,
		},
		{
			name:   "obra does not match resultado",
			pillar: "p5",
			asset:  models.MediaAsset{ID: "a", MediaType: models.MediaTypeObra},
			want:   false,
		},
		{
			name:   "unknown pillar id",
			pillar: "missing",
			asset:  models.MediaAsset{ID: "a", MediaType: models.MediaTypeRender},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.asset.CreatedAt = testNow
			b := s.Evaluate(tt.asset, models.PublicationSlot{PillarID: tt.pillar}, dna, nil, 0)
			got := hasReason(b, ReasonPillar)
			if got != tt.want {
				t.Errorf("pillar match = %v, want %v (reasons %+v)", got, tt.want, b.Reasons)
			}
		})
	}
}

func TestScore_ChannelFit(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name     string
		kind     models.AssetType
		channels []models.Channel
		want     bool
	}{
		{"video on reels", models.AssetTypeVideo, []models.Channel{models.ChannelLinkedIn, models.ChannelInstagramReels}, true},
		{"video on feed only", models.AssetTypeVideo, []models.Channel{models.ChannelInstagramFeed}, false},
		{"image on pinterest", models.AssetTypeImage, []models.Channel{models.ChannelPinterest}, true},
		{"image on tiktok", models.AssetTypeImage, []models.Channel{models.ChannelTikTok}, false},
		{"no channels", models.AssetTypeImage, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := models.MediaAsset{ID: "a", CreatedAt: testNow, Type: tt.kind}
			b := s.Evaluate(asset, models.PublicationSlot{Channels: tt.channels}, models.EditorialDNA{}, nil, 0)
			if got := hasReason(b, ReasonChannelFit); got != tt.want {
				t.Errorf("channel fit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_WeekOffsetDecay(t *testing.T) {
	s := newTestScorer()
	asset := models.MediaAsset{ID: "a", CreatedAt: daysAgo(3), Type: models.AssetTypeImage}
	slot := models.PublicationSlot{ID: "s"}

	w0 := s.Score(asset, slot, models.EditorialDNA{}, nil, 0)
	w3 := s.Score(asset, slot, models.EditorialDNA{}, nil, 3)
	if w0-w3 != 3*WeekOffsetPenalty {
		t.Errorf("decay over 3 weeks = %d, want %d", w0-w3, 3*WeekOffsetPenalty)
	}
}

func TestScore_Deterministic(t *testing.T) {
	s := newTestScorer()
	asset := models.MediaAsset{
		ID:           "a",
		CreatedAt:    daysAgo(12),
		Type:         models.AssetTypeVideo,
		QualityScore: intPtr(73),
		Tags:         []string{"obra", "porto", "madeira", "fachada"},
		MediaType:    models.MediaTypeObra,
	}
	slot := models.PublicationSlot{ID: "s", PillarID: "p1", Channels: []models.Channel{models.ChannelTikTok}}

	first := s.Score(asset, slot, testDNA(), NewUsedSet("x"), 2)
	for i := 0; i < 50; i++ {
		if got := s.Score(asset, slot, testDNA(), NewUsedSet("x"), 2); got != first {
			t.Fatalf("call %d: Score() = %d, want %d", i, got, first)
		}
	}
}

func TestJustify(t *testing.T) {
	s := newTestScorer()
	asset := models.MediaAsset{
		ID:           "a",
		CreatedAt:    daysAgo(2),
		Type:         models.AssetTypeImage,
		QualityScore: intPtr(90),
		Tags:         []string{"a", "b", "c"},
	}
	b := s.Evaluate(asset, models.PublicationSlot{}, models.EditorialDNA{}, nil, 0)

	got := Justify(b, 3)
	for _, want := range []string{"recent content", "high quality 90/100", "well organised (3 tags)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Justify() = %q, missing %q", got, want)
		}
	}

	if got := Justify(b, 1); strings.Contains(got, ",") {
		t.Errorf("Justify(limit 1) = %q, want a single reason", got)
	}

	stale := s.Evaluate(models.MediaAsset{ID: "b", CreatedAt: daysAgo(90)}, models.PublicationSlot{}, models.EditorialDNA{}, nil, 0)
	if got := Justify(stale, 3); got != "best available asset" {
		t.Errorf("Justify(stale) = %q", got)
	}
}

func TestUsedSet_WithDoesNotMutate(t *testing.T) {
	base := NewUsedSet("a")
	next := base.With("b")

	if base.Has("b") {
		t.Error("With() modified the receiver")
	}
	if !next.Has("a") || !next.Has("b") {
		t.Errorf("With() result missing ids: %v", next)
	}

	var empty UsedSet
	if empty.Has("a") {
		t.Error("nil set should be empty")
	}
	if got := empty.With("a").Len(); got != 1 {
		t.Errorf("nil.With().Len() = %d, want 1", got)
	}
}

func hasReason(b Breakdown, kind ReasonKind) bool {
	for _, r := range b.Reasons {
		if r.Kind == kind {
			return true
		}
	}
	return false
}
