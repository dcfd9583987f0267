// Command gb keeps a personal backlog of video games: what to play, what is
// in progress, and what got finished or dropped.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/backlog/internal/cli"
)

func main() {
	os.Exit(run())
}

// run wires the process to cli.Run. Signal delivery stops once Run returns so
// a second Ctrl-C during exit kills the process as usual.
func run() int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	defer signal.Stop(sigCh)

	return cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, envMap(os.Environ()), sigCh)
}

// envMap turns KEY=VALUE pairs into a map. Later duplicates win, matching
// os.Getenv on Unix.
func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}

		env[key] = value
	}

	return env
}
