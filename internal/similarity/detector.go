// Package similarity flags new copy that repeats previously written posts,
// using Jaccard similarity over word n-grams.
package similarity

import (
	"fmt"

	"github.com/atelier-ops/content-engine/internal/models"
)

const (
	DefaultThreshold = 0.4
	DefaultGramSize  = 3
	excerptRunes     = 100
)

// SimilarPost identifies the existing post closest to the checked copy
type SimilarPost struct {
	ID      string         `json:"id"`
	Excerpt string         `json:"excerpt"`
	Channel models.Channel `json:"channel"`
}

// Result is the verdict for one piece of copy
type Result struct {
	IsTooSimilar    bool         `json:"isTooSimilar"`
	SimilarityScore float64      `json:"similarityScore"`
	SimilarPost     *SimilarPost `json:"similarPost,omitempty"`
	Suggestion      string       `json:"suggestion,omitempty"`
}

// Detector compares copy against existing posts
type Detector struct {
	threshold float64
	gramSize  int
}

// NewDetector creates a detector. Non-positive values fall back to defaults.
func NewDetector(threshold float64, gramSize int) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if gramSize <= 0 {
		gramSize = DefaultGramSize
	}
	return &Detector{threshold: threshold, gramSize: gramSize}
}

// Threshold returns the configured similarity threshold
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Check compares newCopy against every post using the configured threshold
func (d *Detector) Check(newCopy string, posts []models.ContentPost) Result {
	return d.CheckWithThreshold(newCopy, posts, d.threshold)
}

// CheckWithThreshold compares newCopy against the PT+EN copy of every post
// and reports the closest one. Empty input, or copy too short to form a
// single n-gram, is never too similar.
func (d *Detector) CheckWithThreshold(newCopy string, posts []models.ContentPost, threshold float64) Result {
	if newCopy == "" || len(posts) == 0 {
		return Result{}
	}
	grams := NGrams(Tokenize(newCopy), d.gramSize)
	if len(grams) == 0 {
		return Result{}
	}

	best := -1
	var bestScore float64
	for i, p := range posts {
		text := p.Copy()
		if text == "" {
			continue
		}
		score := Jaccard(grams, NGrams(Tokenize(text), d.gramSize))
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	result := Result{SimilarityScore: bestScore}
	if best < 0 || bestScore < threshold {
		return result
	}

	match := posts[best]
	result.IsTooSimilar = true
	result.SimilarPost = &SimilarPost{
		ID:      match.ID,
		Excerpt: truncate(match.Copy(), excerptRunes),
		Channel: match.Channel,
	}
	result.Suggestion = fmt.Sprintf(
		"This copy is %.0f%% similar to post %s on %s. Reformulate the opening or highlight a different detail of the project.",
		bestScore*100, match.ID, match.Channel,
	)
	return result
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
