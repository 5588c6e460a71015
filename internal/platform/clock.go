package platform

import "time"

// Clock supplies the current time. Components that compute ages or resolve
// calendar dates take a Clock so tests can pin "today".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ZonedClock reports Base's time in Loc, so "today" follows the studio's
// timezone rather than the host's
type ZonedClock struct {
	Base Clock
	Loc  *time.Location
}

func (c ZonedClock) Now() time.Time { return c.Base.Now().In(c.Loc) }
