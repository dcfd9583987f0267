package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/calvinalkan/backlog/internal/game"
)

// formatLine renders a record as one ls line:
//
//	<id>  [status]  P<priority>  <title>  (genre, platform)  <hours>h
func formatLine(r *game.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %-11s  P%d  %s", r.ID, "["+string(r.Status)+"]", r.Priority, r.Title)

	var tags []string
	if r.Genre != "" {
		tags = append(tags, r.Genre)
	}

	if r.Platform != "" {
		tags = append(tags, r.Platform)
	}

	if len(tags) > 0 {
		fmt.Fprintf(&b, "  (%s)", strings.Join(tags, ", "))
	}

	if r.EstimatedHours != nil {
		fmt.Fprintf(&b, "  %dh", *r.EstimatedHours)
	}

	return b.String()
}

// formatDetail renders every field of a record as key: value lines.
func formatDetail(r *game.Record) string {
	hours := "-"
	if r.EstimatedHours != nil {
		hours = strconv.Itoa(*r.EstimatedHours)
	}

	lines := []string{
		"id: " + r.ID,
		"title: " + r.Title,
		"genre: " + r.Genre,
		"platform: " + r.Platform,
		"status: " + string(r.Status),
		"priority: " + strconv.Itoa(r.Priority),
		"estimated_hours: " + hours,
		"created: " + r.CreatedAt.Format(time.RFC3339),
		"updated: " + r.UpdatedAt.Format(time.RFC3339),
	}

	if r.Notes != "" {
		lines = append(lines, "", r.Notes)
	}

	return strings.Join(lines, "\n")
}

// parseHours reads an estimate flag. Empty clears the estimate.
func parseHours(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	h, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrHoursNotNumber, raw)
	}

	return game.Estimate(h), nil
}
