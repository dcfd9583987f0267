package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/game"
)

// StatusCmd returns the status command.
func StatusCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("status", flag.ContinueOnError),
		Usage: "status <id> <status>",
		Short: "Move a game to another status",
		Group: GroupGames,
		Long:  "Set the status of a game: backlog, playing, completed or abandoned.",
		Exec: func(ctx context.Context, io *IO, args []string) error {
			return execStatus(ctx, io, a, args)
		},
	}
}

func execStatus(ctx context.Context, io *IO, a *app, args []string) error {
	switch {
	case len(args) == 0:
		return game.ErrIDRequired
	case len(args) == 1:
		return ErrStatusRequired
	case len(args) > 2:
		return ErrTooManyArgs
	}

	st, err := game.ParseStatus(args[1])
	if err != nil {
		return err
	}

	games, err := a.collection(ctx)
	if err != nil {
		return err
	}

	id, err := resolve(games, args[0])
	if err != nil {
		return err
	}

	rec, _, err := games.SetStatus(id, st)
	if err != nil {
		return err
	}

	io.Println(formatLine(&rec))

	return nil
}
