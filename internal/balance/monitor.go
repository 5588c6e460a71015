// Package balance warns when recent posting concentrates on one channel.
package balance

import (
	"fmt"
	"math"

	"github.com/atelier-ops/content-engine/internal/models"
)

const (
	DefaultWindowSize = 20
	DefaultMaxShare   = 0.40
	DefaultMinPosts   = 5
)

// Warning flags one over-represented channel
type Warning struct {
	Channel    models.Channel `json:"channel"`
	Count      int            `json:"count"`
	Share      float64        `json:"share"`
	WindowSize int            `json:"windowSize"`
	Message    string         `json:"message"`
}

// Report is the result of a balance check
type Report struct {
	Balanced bool      `json:"balanced"`
	Warnings []Warning `json:"warnings"`
	Counted  int       `json:"counted"`
}

// Monitor checks channel distribution over a window of recent posts
type Monitor struct {
	windowSize int
	maxShare   float64
	minPosts   int
}

// NewMonitor creates a monitor. Non-positive values fall back to defaults.
func NewMonitor(windowSize int, maxShare float64, minPosts int) *Monitor {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if maxShare <= 0 {
		maxShare = DefaultMaxShare
	}
	if minPosts <= 0 {
		minPosts = DefaultMinPosts
	}
	return &Monitor{windowSize: windowSize, maxShare: maxShare, minPosts: minPosts}
}

// Check inspects the first windowSize posts of recent, which the caller
// orders most recent first. Posts without a channel are not counted. With
// fewer than minPosts counted posts the result is balanced.
func (m *Monitor) Check(recent []models.ContentPost) Report {
	window := recent[:min(len(recent), m.windowSize)]

	counts := make(map[models.Channel]int)
	var order []models.Channel
	counted := 0
	for _, p := range window {
		if p.Channel == "" {
			continue
		}
		if counts[p.Channel] == 0 {
			order = append(order, p.Channel)
		}
		counts[p.Channel]++
		counted++
	}

	report := Report{Balanced: true, Warnings: []Warning{}, Counted: counted}
	if counted < m.minPosts {
		return report
	}

	for _, ch := range order {
		share := float64(counts[ch]) / float64(counted)
		if share <= m.maxShare {
			continue
		}
		report.Warnings = append(report.Warnings, Warning{
			Channel:    ch,
			Count:      counts[ch],
			Share:      share,
			WindowSize: len(window),
			Message: fmt.Sprintf("%s accounts for %d%% of the %d posts with a channel among the last %d (limit %d%%)",
				ch, percent(share), counted, len(window), percent(m.maxShare)),
		})
	}
	report.Balanced = len(report.Warnings) == 0
	return report
}

func percent(f float64) int {
	return int(math.Round(f * 100))
}
