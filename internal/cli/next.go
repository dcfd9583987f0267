package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// NextCmd returns the next command.
func NextCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("next", flag.ContinueOnError),
		Usage: "next",
		Short: "Recommend the next game to play",
		Group: GroupViews,
		Long: `Show the highest priority game still in the backlog. Ties go to the
game added first. Prints nothing and exits 0 when the backlog is empty.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			games, err := a.collection(ctx)
			if err != nil {
				return err
			}

			rec, ok := games.Recommendation()
			if ok {
				io.Println(formatLine(&rec))
			}

			return nil
		},
	}
}
