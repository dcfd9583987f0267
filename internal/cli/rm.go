package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(a *app) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage:   "rm <id>",
		Short:   "Remove a game",
		Group:   GroupGames,
		Aliases: []string{"delete"},
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execRm(ctx, io, a, args)
		},
	}
}

func execRm(ctx context.Context, io *IO, a *app, args []string) error {
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
	games.Delete(id)

	io.Println("Removed", rec.Title)

	return nil
}
