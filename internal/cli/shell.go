package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/backlog/internal/collection"
	"github.com/calvinalkan/backlog/internal/game"
)

// HistoryFileName is the shell history file inside the data directory.
const HistoryFileName = ".gb_history"

var errUnterminatedQuote = errors.New("unterminated quote")

// lineReader is the part of liner.State the shell uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// scanReader reads lines from a non-terminal input such as a pipe.
type scanReader struct {
	sc *bufio.Scanner
}

func (r *scanReader) Prompt(string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return r.sc.Text(), nil
}

func (*scanReader) AppendHistory(string) {}

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Start an interactive session",
		Group: GroupSetup,
		Long: `Run commands interactively against one loaded collection.

The filter and sort chosen with "filter", "sort" or ls flags stay in effect
until the session ends. Changes are saved in the background as they happen.
History is kept in <data_dir>/` + HistoryFileName + `.`,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			if a.inShell {
				return ErrNestedShell
			}

			return execShell(ctx, io, a)
		},
	}
}

func execShell(ctx context.Context, o *IO, a *app) error {
	games, err := a.collection(ctx)
	if err != nil {
		return err
	}

	a.inShell = true
	defer func() { a.inShell = false }()

	var lr lineReader

	if f, ok := a.in.(*os.File); ok && f == os.Stdin {
		state := liner.NewLiner()
		defer func() { _ = state.Close() }()

		state.SetCtrlCAborts(true)
		state.SetCompleter(a.complete)

		historyPath := filepath.Join(a.cfg.DataDirAbs, HistoryFileName)
		loadHistory(state, historyPath)

		defer saveHistory(a, state, historyPath)

		o.Printf("gb shell: %d games. Type 'help' for commands.\n", games.Len())

		lr = state
	} else {
		in := a.in
		if in == nil {
			in = strings.NewReader("")
		}

		lr = &scanReader{sc: bufio.NewScanner(in)}
	}

	return shellLoop(ctx, o, a, games, lr)
}

func shellLoop(ctx context.Context, o *IO, a *app, games *collection.Store, lr lineReader) error {
	for ctx.Err() == nil {
		line, err := lr.Prompt("gb> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lr.AppendHistory(line)

		words, err := splitLine(line)
		if err != nil {
			o.ErrPrintln("error:", err)

			continue
		}

		switch words[0] {
		case "exit", "quit", "q":
			return nil
		case "help", "?":
			printShellHelp(o, a)
		case "filter":
			shellFilter(o, games, words[1:])
		case "sort":
			shellSort(o, games, words[1:])
		default:
			a.dispatch(ctx, o, words)
		}
	}

	return nil
}

// shellFilter shows or sets the session filter.
func shellFilter(o *IO, games *collection.Store, args []string) {
	if len(args) == 0 {
		o.Println("filter:", games.Filter())

		return
	}

	f, err := game.ParseFilter(args[0])
	if err == nil {
		err = games.SetFilter(f)
	}

	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	o.Println("filter:", f)
}

// shellSort shows or sets the session sort order.
func shellSort(o *IO, games *collection.Store, args []string) {
	if len(args) == 0 {
		o.Println("sort:", games.Sort())

		return
	}

	s, err := game.ParseSortOrder(args[0])
	if err == nil {
		err = games.SetSort(s)
	}

	if err != nil {
		o.ErrPrintln("error:", err)

		return
	}

	o.Println("sort:", s)
}

func printShellHelp(o *IO, a *app) {
	var buf strings.Builder

	writeCommandList(&buf, a.commands(), func(cmd *Command) bool { return cmd.Name() == "shell" })

	fmt.Fprintf(&buf, "\nShell:\n")

	for _, line := range [][2]string{
		{"filter [status|all]", "Show or set the session filter"},
		{"sort [order]", "Show or set the session sort order"},
		{"exit", "Leave the shell"},
	} {
		fmt.Fprintf(&buf, "  %-26s %s\n", line[0], line[1])
	}

	o.Printf("%s", strings.TrimPrefix(buf.String(), "\n"))
}

// complete offers command names, then statuses and sort orders after
// filter, sort and status.
func (a *app) complete(line string) []string {
	words := strings.Fields(line)
	trailing := strings.HasSuffix(line, " ")

	if len(words) == 0 || (len(words) == 1 && !trailing) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}

		var names []string

		for _, cmd := range a.commands() {
			if cmd.Name() != "shell" {
				names = append(names, cmd.Name())
			}
		}

		names = append(names, "filter", "sort", "help", "exit")
		slices.Sort(names)

		return withPrefix(names, prefix, "")
	}

	var options []string

	switch words[0] {
	case "filter":
		options = append(options, string(game.FilterAll))
		for _, s := range game.Statuses {
			options = append(options, string(s))
		}
	case "sort":
		for _, s := range game.SortOrders {
			options = append(options, string(s))
		}
	case "status":
		if len(words) >= 2 {
			for _, s := range game.Statuses {
				options = append(options, string(s))
			}
		}
	}

	head := line
	prefix := ""

	if !trailing {
		prefix = words[len(words)-1]
		head = strings.TrimSuffix(line, prefix)
	}

	return withPrefix(options, prefix, head)
}

func withPrefix(options []string, prefix, head string) []string {
	var out []string

	for _, opt := range options {
		if strings.HasPrefix(opt, prefix) {
			out = append(out, head+opt)
		}
	}

	return out
}

// splitLine splits a shell line into words. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitLine(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)

			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()

				inWord = false
			}
		default:
			cur.WriteRune(r)

			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}

	if inWord {
		words = append(words, cur.String())
	}

	return words, nil
}

func loadHistory(state *liner.State, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}

	defer func() { _ = f.Close() }()

	_, _ = state.ReadHistory(f)
}

func saveHistory(a *app, state *liner.State, path string) {
	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		a.log.Warn("saving shell history failed", "error", err)

		return
	}

	f, err := os.Create(path)
	if err != nil {
		a.log.Warn("saving shell history failed", "error", err)

		return
	}

	defer func() { _ = f.Close() }()

	_, err = state.WriteHistory(f)
	if err != nil {
		a.log.Warn("saving shell history failed", "error", err)
	}
}
