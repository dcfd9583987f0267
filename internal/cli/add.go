package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/game"
)

// AddCmd returns the add command.
func AddCmd(a *app) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fields := newDraftFlags(fs, false)

	return &Command{
		Flags: fs,
		Usage: "add <title> [flags]",
		Short: "Add a game to the collection",
		Group: GroupGames,
		Long: `Add a game and print its ID.

The title is every positional argument joined by spaces. Status defaults to
backlog and priority to 3. Run "gb suggestions" for common genres and platforms.`,
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execAdd(ctx, io, a, fields, args)
		},
	}
}

func execAdd(ctx context.Context, io *IO, a *app, fields *draftFlags, args []string) error {
	draft := game.Draft{Title: strings.Join(args, " ")}

	err := fields.apply(&draft)
	if err != nil {
		return err
	}

	games, err := a.collection(ctx)
	if err != nil {
		return err
	}

	rec, err := games.Add(draft)
	if err != nil {
		return err
	}

	io.Println(rec.ID)

	return nil
}
