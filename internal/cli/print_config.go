package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Group: GroupSetup,
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			execPrintConfig(io, cfg)

			return nil
		},
	}
}

func execPrintConfig(io *IO, cfg *config.Config) {
	io.Println(config.Format(*cfg))

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")

		return
	}

	if cfg.Sources.Global != "" {
		io.Println("global_config=" + cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		io.Println("project_config=" + cfg.Sources.Project)
	}
}
