// Package game defines the game record and the value types used to filter and
// order a collection of them.
package game

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status is the play state of a game.
type Status string

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusBacklog, StatusPlaying, StatusCompleted, StatusAbandoned}

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// ParseStatus converts user input to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}

	return s, nil
}

// Priority bounds.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// IsValidPriority checks if priority is in valid range.
func IsValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

// Record is a single game in the collection.
//
// JSON field names are the persisted snapshot format and must not change.
type Record struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Genre          string    `json:"genre"`
	Platform       string    `json:"platform"`
	Status         Status    `json:"status"`
	Priority       int       `json:"priority"`
	EstimatedHours *int      `json:"estimatedHours"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Hours returns the estimated hours, treating an absent estimate as zero.
func (r *Record) Hours() int {
	if r.EstimatedHours == nil {
		return 0
	}

	return *r.EstimatedHours
}

// Clone returns a copy that shares no memory with r.
func (r *Record) Clone() Record {
	out := *r
	if r.EstimatedHours != nil {
		h := *r.EstimatedHours
		out.EstimatedHours = &h
	}

	return out
}

// Draft is a record before it is added: no id and no timestamps.
type Draft struct {
	Title          string
	Genre          string
	Platform       string
	Status         Status
	Priority       int
	EstimatedHours *int
	Notes          string
}

// Normalize fills defaults and trims the title.
// A zero Status becomes backlog and a zero Priority becomes DefaultPriority.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)

	if d.Status == "" {
		d.Status = StatusBacklog
	}

	if d.Priority == 0 {
		d.Priority = DefaultPriority
	}

	return d
}

// Validate checks the fields a caller controls.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}

	if !d.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)
	}

	if !IsValidPriority(d.Priority) {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, d.Priority)
	}

	if d.EstimatedHours != nil && *d.EstimatedHours < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHours, *d.EstimatedHours)
	}

	return nil
}

// Record builds a full record from the draft.
func (d *Draft) Record(id string, now time.Time) Record {
	r := Record{
		ID:        id,
		Title:     d.Title,
		Genre:     d.Genre,
		Platform:  d.Platform,
		Status:    d.Status,
		Priority:  d.Priority,
		Notes:     d.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if d.EstimatedHours != nil {
		h := *d.EstimatedHours
		r.EstimatedHours = &h
	}

	return r
}

// Draft returns the caller-controlled fields of r.
func (r *Record) Draft() Draft {
	d := Draft{
		Title:    r.Title,
		Genre:    r.Genre,
		Platform: r.Platform,
		Status:   r.Status,
		Priority: r.Priority,
		Notes:    r.Notes,
	}

	if r.EstimatedHours != nil {
		h := *r.EstimatedHours
		d.EstimatedHours = &h
	}

	return d
}

// Estimate returns a pointer to h for use as EstimatedHours.
func Estimate(h int) *int {
	return &h
}
