package models

import (
	"time"
)

// PostStatus represents the editorial state of a post
type PostStatus string

const (
	PostStatusIdea      PostStatus = "idea"
	PostStatusInbox     PostStatus = "inbox"
	PostStatusGenerated PostStatus = "generated"
	PostStatusReview    PostStatus = "review"
	PostStatusApproved  PostStatus = "approved"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusRejected  PostStatus = "rejected"
)

// ValidPostStatuses defines allowed post statuses
var ValidPostStatuses = map[PostStatus]bool{
	PostStatusIdea:      true,
	PostStatusInbox:     true,
	PostStatusGenerated: true,
	PostStatusReview:    true,
	PostStatusApproved:  true,
	PostStatusScheduled: true,
	PostStatusPublished: true,
	PostStatusRejected:  true,
}

// Format is the shape of a post on its channel
type Format string

const (
	FormatSingleImage   Format = "single-image"
	FormatCarousel      Format = "carousel"
	FormatReel          Format = "reel"
	FormatStorySequence Format = "story-sequence"
	FormatShortCut      Format = "short-cut"
	FormatPin           Format = "pin"
	FormatArticlePost   Format = "article-post"
)

// DateLayout is the calendar-day key used to compare scheduled dates
const DateLayout = "2006-01-02"

// ContentPost is the schedulable unit of content
type ContentPost struct {
	ID            string     `json:"id"`
	AssetID       string     `json:"assetId"`
	SlotID        string     `json:"slotId,omitempty"`
	Channel       Channel    `json:"channel"`
	Format        Format     `json:"format,omitempty"`
	CopyPT        string     `json:"copyPt,omitempty"`
	CopyEN        string     `json:"copyEn,omitempty"`
	Hashtags      []string   `json:"hashtags,omitempty"`
	CTA           string     `json:"cta,omitempty"`
	Status        PostStatus `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	ParentPostID  string     `json:"parentPostId,omitempty"`
	DerivativeIDs []string   `json:"derivativeIds,omitempty"`
	Score         *int       `json:"score,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Copy returns the PT and EN copy joined by a space
func (p ContentPost) Copy() string {
	switch {
	case p.CopyPT == "":
		return p.CopyEN
	case p.CopyEN == "":
		return p.CopyPT
	default:
		return p.CopyPT + " " + p.CopyEN
	}
}

// ScheduledDay returns the calendar-day key of ScheduledDate, or "" when unset
func (p ContentPost) ScheduledDay() string {
	if p.ScheduledDate == nil {
		return ""
	}
	return p.ScheduledDate.Format(DateLayout)
}

// IsCore reports whether the post is not a derivative of another post
func (p ContentPost) IsCore() bool {
	return p.ParentPostID == ""
}

// Clone returns a deep copy so callers can modify the result without
// touching the original's slices
func (p ContentPost) Clone() ContentPost {
	out := p
	out.Hashtags = append([]string(nil), p.Hashtags...)
	out.DerivativeIDs = append([]string(nil), p.DerivativeIDs...)
	if p.ScheduledDate != nil {
		d := *p.ScheduledDate
		out.ScheduledDate = &d
	}
	if p.PublishedDate != nil {
		d := *p.PublishedDate
		out.PublishedDate = &d
	}
	if p.Score != nil {
		s := *p.Score
		out.Score = &s
	}
	return out
}
