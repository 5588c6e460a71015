package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
)

// ConflictKind classifies calendar problems
type ConflictKind string

const (
	ConflictDoubleBooking ConflictKind = "double-booking"
	ConflictMissingDate   ConflictKind = "missing-date"
)

// Conflict is one calendar problem to resolve by hand
type Conflict struct {
	Kind    ConflictKind   `json:"kind"`
	Date    string         `json:"date,omitempty"`
	Channel models.Channel `json:"channel,omitempty"`
	PostIDs []string       `json:"postIds"`
	Message string         `json:"message"`
}

// ConflictReport lists every conflict found
type ConflictReport struct {
	Valid     bool       `json:"valid"`
	Conflicts []Conflict `json:"conflicts"`
}

// CalendarValidator scans scheduled posts for conflicts
type CalendarValidator struct {
	clock platform.Clock
}

// NewCalendarValidator creates a validator; clock defines "today"
func NewCalendarValidator(clock platform.Clock) *CalendarValidator {
	if clock == nil {
		clock = platform.SystemClock{}
	}
	return &CalendarValidator{clock: clock}
}

// ValidateCalendar reports posts sharing a date and channel, and scheduled
// posts with no date. windowDays <= 0 checks every date; otherwise only dates
// in [today, today+windowDays). Rejected posts are ignored.
func (v *CalendarValidator) ValidateCalendar(posts []models.ContentPost, windowDays int) ConflictReport {
	report := ConflictReport{Conflicts: []Conflict{}}

	var from, to string
	if windowDays > 0 {
		today := platform.StartOfDay(v.clock.Now())
		from = today.Format(models.DateLayout)
		to = today.AddDate(0, 0, windowDays).Format(models.DateLayout)
	}

	type key struct {
		day     string
		channel models.Channel
	}
	groups := make(map[key][]string)
	var keys []key

	for _, p := range posts {
		if p.Status == models.PostStatusRejected {
			continue
		}
		day := p.ScheduledDay()
		if day == "" {
			if p.Status == models.PostStatusScheduled {
				report.Conflicts = append(report.Conflicts, Conflict{
					Kind:    ConflictMissingDate,
					Channel: p.Channel,
					PostIDs: []string{p.ID},
					Message: fmt.Sprintf("Post %s is scheduled on %s but has no date", p.ID, channelLabel(p.Channel)),
				})
			}
			continue
		}
		if p.Channel == "" {
			continue
		}
		if windowDays > 0 && (day < from || day >= to) {
			continue
		}
		k := key{day: day, channel: p.Channel}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], p.ID)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].channel < keys[j].channel
	})

	for _, k := range keys {
		ids := groups[k]
		if len(ids) < 2 {
			continue
		}
		report.Conflicts = append(report.Conflicts, Conflict{
			Kind:    ConflictDoubleBooking,
			Date:    k.day,
			Channel: k.channel,
			PostIDs: ids,
			Message: fmt.Sprintf("%d posts booked on %s for %s: %s", len(ids), k.day, k.channel, strings.Join(ids, ", ")),
		})
	}

	report.Valid = len(report.Conflicts) == 0
	return report
}

func channelLabel(c models.Channel) string {
	if c == "" {
		return "no channel"
	}
	return string(c)
}
