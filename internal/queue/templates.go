package queue

import (
	"github.com/atelier-ops/content-engine/internal/models"
)

// Template describes one post produced from an asset. MaxCopyRunes and
// MaxHashtags of zero mean no limit.
type Template struct {
	Channel      models.Channel `yaml:"channel" json:"channel"`
	Format       models.Format  `yaml:"format" json:"format"`
	MaxCopyRunes int            `yaml:"max_copy_runes" json:"maxCopyRunes"`
	MaxHashtags  int            `yaml:"max_hashtags" json:"maxHashtags"`
	IncludeEN    bool           `yaml:"include_en" json:"includeEn"`
}

// TypePlan is the core template and the candidate derivatives for one
// asset type
type TypePlan struct {
	Core        Template   `yaml:"core" json:"core"`
	Derivatives []Template `yaml:"derivatives" json:"derivatives"`
}

// DefaultPlans returns the studio's standard articulation per asset type
func DefaultPlans() map[models.AssetType]TypePlan {
	return map[models.AssetType]TypePlan{
		models.AssetTypeImage: {
			Core: Template{Channel: models.ChannelInstagramFeed, Format: models.FormatCarousel, MaxHashtags: 30, IncludeEN: true},
			Derivatives: []Template{
				{Channel: models.ChannelInstagramStories, Format: models.FormatStorySequence, MaxCopyRunes: 120, MaxHashtags: 3},
				{Channel: models.ChannelLinkedIn, Format: models.FormatArticlePost, MaxHashtags: 5, IncludeEN: true},
				{Channel: models.ChannelPinterest, Format: models.FormatPin, MaxCopyRunes: 200, MaxHashtags: 5, IncludeEN: true},
				{Channel: models.ChannelFacebook, Format: models.FormatSingleImage, MaxHashtags: 5},
			},
		},
		models.AssetTypeVideo: {
			Core: Template{Channel: models.ChannelInstagramReels, Format: models.FormatReel, MaxHashtags: 30, IncludeEN: true},
			Derivatives: []Template{
				{Channel: models.ChannelTikTok, Format: models.FormatShortCut, MaxCopyRunes: 150, MaxHashtags: 5},
				{Channel: models.ChannelYouTubeShorts, Format: models.FormatShortCut, MaxCopyRunes: 100, MaxHashtags: 3, IncludeEN: true},
				{Channel: models.ChannelInstagramStories, Format: models.FormatStorySequence, MaxCopyRunes: 120, MaxHashtags: 3},
				{Channel: models.ChannelLinkedIn, Format: models.FormatArticlePost, MaxHashtags: 5, IncludeEN: true},
			},
		},
	}
}
