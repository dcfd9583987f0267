package cli

import (
	"context"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/collection"
	"github.com/calvinalkan/backlog/internal/game"
)

// StatsCmd returns the stats command.
func StatsCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("stats", flag.ContinueOnError),
		Usage: "stats",
		Short: "Show collection statistics",
		Group: GroupViews,
		Long:  "Summarize the whole collection regardless of any filter.",
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			games, err := a.collection(ctx)
			if err != nil {
				return err
			}

			printStats(io, games.Stats())

			return nil
		},
	}
}

func printStats(io *IO, st collection.Stats) {
	io.Println("total:", st.Total)
	io.Println("completed:", st.Completed)
	io.Println("completion:", strconv.FormatFloat(st.CompletionPercent, 'f', 1, 64)+"%")
	io.Println("estimated_hours:", st.TotalEstimatedHours)
	io.Println("average_priority:", strconv.FormatFloat(st.AveragePriority, 'f', 1, 64))

	io.Println()
	io.Println("# by status")

	for _, s := range game.Statuses {
		io.Printf("%s: %d\n", s, st.ByStatus[s])
	}

	printCounts(io, "# top genres", st.TopGenres)
	printCounts(io, "# top platforms", st.TopPlatforms)
}

func printCounts(io *IO, heading string, counts []collection.Count) {
	if len(counts) == 0 {
		return
	}

	io.Println()
	io.Println(heading)

	for _, c := range counts {
		io.Printf("%s: %d\n", c.Name, c.Count)
	}
}
