package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Stored documents carry dates either as RFC3339 timestamps or as bare
// calendar days, and numeric scores that are not always integers.

var nullJSON = []byte("null")

func decodeDate(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || bytes.Equal(raw, nullJSON) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised date %q", s)
}

func decodeScore(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 || bytes.Equal(raw, nullJSON) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("score must be a number: %w", err)
	}
	n := int(math.Round(f))
	return &n, nil
}

func orZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// UnmarshalJSON accepts date-only or empty createdAt values and rounds a
// fractional qualityScore
func (a *MediaAsset) UnmarshalJSON(data []byte) error {
	type plain MediaAsset
	aux := struct {
		*plain
		CreatedAt    json.RawMessage `json:"createdAt"`
		QualityScore json.RawMessage `json:"qualityScore"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	created, err := decodeDate(aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	a.CreatedAt = orZero(created)

	if a.QualityScore, err = decodeScore(aux.QualityScore); err != nil {
		return fmt.Errorf("qualityScore: %w", err)
	}
	return nil
}

// UnmarshalJSON accepts date-only or empty dates and rounds a fractional
// score
func (p *ContentPost) UnmarshalJSON(data []byte) error {
	type plain ContentPost
	aux := struct {
		*plain
		ScheduledDate json.RawMessage `json:"scheduledDate"`
		PublishedDate json.RawMessage `json:"publishedDate"`
		CreatedAt     json.RawMessage `json:"createdAt"`
		Score         json.RawMessage `json:"score"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if p.ScheduledDate, err = decodeDate(aux.ScheduledDate); err != nil {
		return fmt.Errorf("scheduledDate: %w", err)
	}
	if p.PublishedDate, err = decodeDate(aux.PublishedDate); err != nil {
		return fmt.Errorf("publishedDate: %w", err)
	}
	created, err := decodeDate(aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	p.CreatedAt = orZero(created)

	if p.Score, err = decodeScore(aux.Score); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	return nil
}
