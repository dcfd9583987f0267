package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// Group is the heading a command is listed under in usage output.
type Group int

const (
	GroupGames Group = iota
	GroupViews
	GroupSetup
)

var groupTitles = [...]string{
	GroupGames: "Manage games",
	GroupViews: "Browse",
	GroupSetup: "Session and setup",
}

func (g Group) String() string {
	if int(g) < len(groupTitles) {
		return groupTitles[g]
	}

	return "Other"
}

// Command is one gb subcommand. The same value serves the one-shot CLI and
// the shell, which is why help output never assumes a program prefix beyond
// the Usage string.
type Command struct {
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "add <title> [flags]".
	Usage string
	Short string
	// Long replaces Short in "--help" output when set.
	Long string

	Group   Group
	Aliases []string

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// Matches reports whether word invokes c by name or alias.
func (c *Command) Matches(word string) bool {
	return word == c.Name() || slices.Contains(c.Aliases, word)
}

// HelpLine is the one-line listing entry. Aliases follow the description.
func (c *Command) HelpLine() string {
	line := fmt.Sprintf("  %-26s %s", c.Usage, c.Short)
	if len(c.Aliases) > 0 {
		line += " (alias: " + strings.Join(c.Aliases, ", ") + ")"
	}

	return line
}

// PrintHelp writes "gb <cmd> --help" output.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: gb", c.Usage)

	if len(c.Aliases) > 0 {
		o.Println("Aliases:", strings.Join(c.Aliases, ", "))
	}

	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", c.Flags.FlagUsages())
}

// Run parses args and calls Exec. Returns the exit code.
//
// A flag error prints the error and a pointer to --help instead of the whole
// help text, so the error stays visible in the shell.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(io.Discard)

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		c.PrintHelp(o)

		return 0
	case err != nil:
		o.ErrPrintln("error:", c.Name()+":", err)
		o.ErrPrintln(fmt.Sprintf("Run \"gb %s --help\" for usage.", c.Name()))

		return 1
	}

	err = c.Exec(ctx, o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}

// writeCommandList prints cmds under their group headings in group order,
// keeping the given order within a group. Commands for which skip returns
// true are left out.
func writeCommandList(w io.Writer, cmds []*Command, skip func(*Command) bool) {
	for g := range Group(len(groupTitles)) {
		var lines []string

		for _, cmd := range cmds {
			if cmd.Group == g && (skip == nil || !skip(cmd)) {
				lines = append(lines, cmd.HelpLine())
			}
		}

		if len(lines) == 0 {
			continue
		}

		fprintln(w)
		fprintln(w, g.String()+":")

		for _, line := range lines {
			fprintln(w, line)
		}
	}
}
