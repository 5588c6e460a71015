package models

import "slices"

// Channel is a publishing destination
type Channel string

const (
	ChannelInstagramFeed    Channel = "instagram-feed"
	ChannelInstagramReels   Channel = "instagram-reels"
	ChannelInstagramStories Channel = "instagram-stories"
	ChannelTikTok           Channel = "tiktok"
	ChannelYouTubeShorts    Channel = "youtube-shorts"
	ChannelLinkedIn         Channel = "linkedin"
	ChannelPinterest        Channel = "pinterest"
	ChannelFacebook         Channel = "facebook"
)

// PublicationSlot is a recurring weekly placeholder. DayOfWeek follows
// time.Weekday numbering (0 = Sunday).
type PublicationSlot struct {
	ID        string    `json:"id"`
	DayOfWeek int       `json:"dayOfWeek"`
	Label     string    `json:"label"`
	Channels  []Channel `json:"channels"`
	PillarID  string    `json:"pillar,omitempty"`
	VoiceID   string    `json:"voice,omitempty"`
}

// HasChannel reports whether the slot publishes to c
func (s PublicationSlot) HasChannel(c Channel) bool {
	return slices.Contains(s.Channels, c)
}

// Clone returns a copy with its own channel list
func (s PublicationSlot) Clone() PublicationSlot {
	out := s
	out.Channels = slices.Clone(s.Channels)
	return out
}
