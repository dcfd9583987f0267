package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show game details",
		Group: GroupViews,
		Long:  "Display every field of a game. The ID may be a unique prefix.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execShow(ctx, io, a, args)
		},
	}
}

func execShow(ctx context.Context, io *IO, a *app, args []string) error {
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

	io.Println(formatDetail(&rec))

	return nil
}
