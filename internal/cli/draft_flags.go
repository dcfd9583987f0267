package cli

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/game"
)

// draftFlags are the record field flags shared by add and edit.
type draftFlags struct {
	fs *flag.FlagSet

	title    *string
	genre    *string
	platform *string
	status   *string
	priority *int
	hours    *string
	notes    *string
}

func newDraftFlags(fs *flag.FlagSet, withTitle bool) *draftFlags {
	f := &draftFlags{fs: fs}

	if withTitle {
		f.title = fs.StringP("title", "t", "", "Title")
	}

	f.genre = fs.StringP("genre", "g", "", "Genre, e.g. "+strings.Join(game.SuggestedGenres[:3], ", "))
	f.platform = fs.StringP("platform", "p", "", "Platform, e.g. "+strings.Join(game.SuggestedPlatforms[:3], ", "))
	f.status = fs.StringP("status", "s", "", "Status: backlog|playing|completed|abandoned")
	f.priority = fs.IntP("priority", "P", 0, "Priority 1-5 (default 3)")
	f.hours = fs.StringP("hours", "e", "", "Estimated hours (empty clears on edit)")
	f.notes = fs.StringP("notes", "n", "", "Free-form notes")

	return f
}

// apply copies every flag that was given on the command line onto d.
func (f *draftFlags) apply(d *game.Draft) error {
	if f.title != nil && f.fs.Changed("title") {
		d.Title = *f.title
	}

	if f.fs.Changed("genre") {
		d.Genre = strings.TrimSpace(*f.genre)
	}

	if f.fs.Changed("platform") {
		d.Platform = strings.TrimSpace(*f.platform)
	}

	if f.fs.Changed("status") {
		st, err := game.ParseStatus(*f.status)
		if err != nil {
			return err
		}

		d.Status = st
	}

	if f.fs.Changed("priority") {
		if !game.IsValidPriority(*f.priority) {
			return fmt.Errorf("%w: %d", game.ErrInvalidPriority, *f.priority)
		}

		d.Priority = *f.priority
	}

	if f.fs.Changed("hours") {
		h, err := parseHours(*f.hours)
		if err != nil {
			return err
		}

		d.EstimatedHours = h
	}

	if f.fs.Changed("notes") {
		d.Notes = *f.notes
	}

	return nil
}
