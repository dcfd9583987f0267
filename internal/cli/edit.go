package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// EditCmd returns the edit command.
func EditCmd(a *app) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fields := newDraftFlags(fs, true)

	return &Command{
		Flags: fs,
		Usage: "edit <id> [flags]",
		Short: "Change fields of a game",
		Group: GroupGames,
		Long:  "Replace the given fields of a game. Fields without a flag keep their value.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execEdit(ctx, io, a, fields, args)
		},
	}
}

func execEdit(ctx context.Context, io *IO, a *app, fields *draftFlags, args []string) error {
	if len(args) > 1 {
		return ErrTooManyArgs
	}

	games, err := a.collection(ctx)
	if err != nil {
		return err
	}

	id, err := resolve(games, first(args))
	if err != nil {
		return err
	}

	rec, _ := games.Get(id)
	draft := rec.Draft()

	err = fields.apply(&draft)
	if err != nil {
		return err
	}

	rec.Title = draft.Title
	rec.Genre = draft.Genre
	rec.Platform = draft.Platform
	rec.Status = draft.Status
	rec.Priority = draft.Priority
	rec.EstimatedHours = draft.EstimatedHours
	rec.Notes = draft.Notes

	updated, _, err := games.Update(rec)
	if err != nil {
		return err
	}

	io.Println(formatLine(&updated))

	return nil
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
