package scoring

import (
	"slices"
	"strings"

	"github.com/atelier-ops/content-engine/internal/models"
)

// PillarRule maps pillar-name keywords to the asset media types and tags
// that count as a match for that pillar.
type PillarRule struct {
	Keywords   []string           `yaml:"keywords" json:"keywords"`
	MediaTypes []models.MediaType `yaml:"media_types" json:"mediaTypes"`
	Tags       []string           `yaml:"tags" json:"tags"`
}

// Vocabulary is the data-driven part of scoring: pillar keyword rules and
// the channel classes used for media-type fit.
type Vocabulary struct {
	PillarRules   []PillarRule     `yaml:"pillar_rules" json:"pillarRules"`
	VideoChannels []models.Channel `yaml:"video_channels" json:"videoChannels"`
	FeedChannels  []models.Channel `yaml:"feed_channels" json:"feedChannels"`
}

// DefaultVocabulary returns the Portuguese/English vocabulary the studio uses
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		PillarRules: []PillarRule{
			{
				Keywords:   []string{"obra", "processo", "process"},
				MediaTypes: []models.MediaType{models.MediaTypeObra, models.MediaTypeBeforeAfter},
				Tags:       []string{"obra", "construção", "estaleiro"},
			},
			{
				Keywords:   []string{"detalhe", "material", "materials"},
				MediaTypes: []models.MediaType{models.MediaTypeDetalhe},
				Tags:       []string{"detalhe", "material", "textura"},
			},
			{
				Keywords:   []string{"equipa", "team", "bastidores"},
				MediaTypes: []models.MediaType{models.MediaTypeEquipa},
				Tags:       []string{"equipa", "team"},
			},
			{
				Keywords:   []string{"resultado", "portfolio"},
				MediaTypes: []models.MediaType{models.MediaTypeRender},
				Tags:       []string{"portfolio", "render", "resultado"},
			},
		},
		VideoChannels: []models.Channel{
			models.ChannelInstagramReels,
			models.ChannelTikTok,
			models.ChannelYouTubeShorts,
		},
		FeedChannels: []models.Channel{
			models.ChannelInstagramFeed,
			models.ChannelPinterest,
			models.ChannelLinkedIn,
			models.ChannelFacebook,
		},
	}
}

// MatchesPillar reports whether the asset fits a pillar with the given name
func (v Vocabulary) MatchesPillar(pillarName string, asset models.MediaAsset) bool {
	name := strings.ToLower(pillarName)
	if name == "" {
		return false
	}
	for _, rule := range v.PillarRules {
		if !containsAny(name, rule.Keywords) {
			continue
		}
		if slices.Contains(rule.MediaTypes, asset.MediaType) {
			return true
		}
		for _, tag := range asset.Tags {
			if containsAny(strings.ToLower(tag), rule.Tags) {
				return true
			}
		}
	}
	return false
}

// IsVideoChannel reports whether c carries short-form/video content
func (v Vocabulary) IsVideoChannel(c models.Channel) bool {
	return slices.Contains(v.VideoChannels, c)
}

// IsFeedChannel reports whether c is a feed/board channel
func (v Vocabulary) IsFeedChannel(c models.Channel) bool {
	return slices.Contains(v.FeedChannels, c)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
