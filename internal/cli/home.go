package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/game"
)

// HomeCmd returns the home command.
func HomeCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("home", flag.ContinueOnError),
		Usage: "home",
		Short: "Show status counts and what to play next",
		Group: GroupViews,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			games, err := a.collection(ctx)
			if err != nil {
				return err
			}

			hist := games.StatusHistogram()
			for _, s := range game.Statuses {
				io.Printf("%-10s %d\n", s, hist[s])
			}

			io.Println()

			rec, ok := games.Recommendation()
			if !ok {
				io.Println("up next: nothing in the backlog")

				return nil
			}

			io.Println("up next:", formatLine(&rec))

			return nil
		},
	}
}
