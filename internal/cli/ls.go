package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/game"
)

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status: all|backlog|playing|completed|abandoned")
	sort := fs.String("sort", "", "Sort by priority|name|dateAdded|estimatedTime")

	return &Command{
		Flags:   fs,
		Usage:   "ls [--status=X] [--sort=Y]",
		Short:   "List games",
		Group:   GroupViews,
		Aliases: []string{"list"},
		Long: `List games matching the status filter, in the chosen order.

Priority lists highest first, dateAdded newest first, estimatedTime shortest
first with unknown estimates counted as zero, name alphabetically. In the
shell, the last --status and --sort stay in effect for later ls calls.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return execLs(ctx, io, a, fs, *status, *sort)
		},
	}
}

func execLs(ctx context.Context, io *IO, a *app, fs *flag.FlagSet, status, sort string) error {
	var (
		filter game.Filter
		order  game.SortOrder
		err    error
	)

	if fs.Changed("status") {
		filter, err = game.ParseFilter(status)
		if err != nil {
			return err
		}
	}

	if fs.Changed("sort") {
		order, err = game.ParseSortOrder(sort)
		if err != nil {
			return err
		}
	}

	games, err := a.collection(ctx)
	if err != nil {
		return err
	}

	if filter != "" {
		_ = games.SetFilter(filter)
	}

	if order != "" {
		_ = games.SetSort(order)
	}

	for _, rec := range games.FilteredView() {
		io.Println(formatLine(&rec))
	}

	return nil
}
