package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/game"
)

// SuggestionsCmd returns the suggestions command.
func SuggestionsCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("suggestions", flag.ContinueOnError),
		Usage: "suggestions",
		Short: "List common genres and platforms",
		Group: GroupSetup,
		Long:  "List the genres and platforms offered as suggestions for add and edit. Any value is accepted.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			io.Println("genres:", strings.Join(game.SuggestedGenres, ", "))
			io.Println("platforms:", strings.Join(game.SuggestedPlatforms, ", "))

			return nil
		},
	}
}
