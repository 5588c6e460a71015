package validation

import (
	"errors"
	"fmt"

	"github.com/atelier-ops/content-engine/internal/models"
	"github.com/atelier-ops/content-engine/internal/platform"
)

var (
	ErrNotApproved    = errors.New("only approved posts may be scheduled or published")
	ErrTerminalStatus = errors.New("post is in a terminal status")
	ErrUnknownStatus  = errors.New("unknown post status")
)

// TransitionError is returned when the gate refuses a status change
type TransitionError struct {
	PostID string
	From   models.PostStatus
	To     models.PostStatus
	Reason string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("post %s: cannot move from %s to %s: %s", e.PostID, e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Gate enforces the editorial workflow on post status changes
type Gate struct {
	clock platform.Clock
}

// NewGate creates a gate; clock stamps publication dates
func NewGate(clock platform.Clock) *Gate {
	if clock == nil {
		clock = platform.SystemClock{}
	}
	return &Gate{clock: clock}
}

// CanTransition reports whether post may move to status to, and why not
func (g *Gate) CanTransition(from, to models.PostStatus) error {
	if !models.ValidPostStatuses[from] || !models.ValidPostStatuses[to] {
		return ErrUnknownStatus
	}
	if from == models.PostStatusRejected || (from == models.PostStatusPublished && to != models.PostStatusPublished) {
		return ErrTerminalStatus
	}

	switch to {
	case models.PostStatusScheduled:
		if from != models.PostStatusApproved && from != models.PostStatusScheduled {
			return ErrNotApproved
		}
	case models.PostStatusPublished:
		if from != models.PostStatusApproved && from != models.PostStatusScheduled && from != models.PostStatusPublished {
			return ErrNotApproved
		}
	}
	return nil
}

// Transition returns a copy of post moved to status to, or a
// *TransitionError explaining the refusal. The input post is not modified.
func (g *Gate) Transition(post models.ContentPost, to models.PostStatus) (models.ContentPost, error) {
	if err := g.CanTransition(post.Status, to); err != nil {
		return post, &TransitionError{
			PostID: post.ID,
			From:   post.Status,
			To:     to,
			Reason: err.Error(),
			Err:    err,
		}
	}

	out := post.Clone()
	out.Status = to
	if to == models.PostStatusPublished && out.PublishedDate == nil {
		now := g.clock.Now()
		out.PublishedDate = &now
	}
	return out, nil
}
