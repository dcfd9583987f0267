package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/calvinalkan/backlog/internal/config"
	"github.com/calvinalkan/backlog/internal/logger"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"

	// closeTimeout bounds the final flush after the command returns.
	closeTimeout = 10 * time.Second
)

// Run is the main entry point. Returns exit code.
//
// A value on sigCh cancels the context commands run under; pending writes are
// still flushed before Run returns.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flags.remaining) == 0 || flags.remaining[0] == "-h" || flags.remaining[0] == helpFlag {
		printUsage(out)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDir:    flags.workDir,
		ConfigPath: flags.configPath,
		Overrides:  config.Overrides{DataDir: flags.dataDir, Backend: flags.backend},
		Env:        env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	log, err := logger.New(errOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	a := &app{cfg: cfg, log: log, in: in}
	o := NewIO(out, errOut)

	code := a.dispatch(ctx, o, flags.remaining)

	closeCtx, closeCancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer closeCancel()

	a.close(closeCtx, o)

	if code != 0 {
		return code
	}

	return o.Finish()
}

// commands returns a fresh set of commands. FlagSets remember what was
// parsed, so every invocation gets its own.
func (a *app) commands() []*Command {
	return []*Command{
		AddCmd(a),
		EditCmd(a),
		RmCmd(a),
		ShowCmd(a),
		LsCmd(a),
		StatusCmd(a),
		NextCmd(a),
		HomeCmd(a),
		StatsCmd(a),
		SuggestionsCmd(),
		ShellCmd(a),
		PrintConfigCmd(&a.cfg),
	}
}

// dispatch runs the command named by words[0]. Returns exit code.
func (a *app) dispatch(ctx context.Context, o *IO, words []string) int {
	name := words[0]

	for _, cmd := range a.commands() {
		if cmd.Matches(name) {
			return cmd.Run(ctx, o, words[1:])
		}
	}

	o.ErrPrintln("error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))

	if !a.inShell {
		var buf strings.Builder

		printUsage(&buf)
		o.ErrPrintln(strings.TrimRight(buf.String(), "\n"))
	}

	return 1
}

type globalFlags struct {
	workDir    string
	configPath string
	dataDir    string
	backend    string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// valueFlag parses "--name value", "--name=value" and, when short is set,
// "-x value" and "-xvalue". Returns args consumed.
func valueFlag(args []string, idx int, long, short string, dst *string) (int, error) {
	arg := args[idx]

	if arg == long || (short != "" && arg == short) {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		*dst = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, long+"="); ok {
		*dst = after

		return consumedOne, nil
	}

	if short != "" {
		if after, ok := strings.CutPrefix(arg, short); ok && after != "" {
			*dst = after

			return consumedOne, nil
		}
	}

	return consumedNone, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	if !strings.HasPrefix(arg, "-") || arg == "-" {
		return consumedNone, nil
	}

	targets := []struct {
		long, short string
		dst         *string
	}{
		{"--cwd", "-C", &flags.workDir},
		{"--config", "-c", &flags.configPath},
		{"--data-dir", "", &flags.dataDir},
		{"--backend", "", &flags.backend},
	}

	for _, t := range targets {
		consumed, err := valueFlag(args, idx, t.long, t.short, t.dst)
		if err != nil || consumed > 0 {
			return consumed, err
		}
	}

	return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer) {
	fprintln(w, `gb - game backlog tracker

Usage: gb [options] <command> [args]

Options:
  -C, --cwd <dir>        Run as if started in <dir>
  -c, --config <file>    Use specified config file
  --data-dir <dir>       Override data_dir
  --backend <name>       Override backend (file|sqlite|redis|memory)`)

	writeCommandList(w, (&app{}).commands(), nil)

	fprintln(w, `
Run "gb <command> --help" for command flags.`)
}
