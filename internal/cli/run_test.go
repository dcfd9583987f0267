package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/backlog/internal/cli"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Run_Prints_Usage_When_No_Command(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun()
	cli.AssertContains(t, stdout, "Usage: gb")
	cli.AssertContains(t, stdout, "add <title> [flags]")
	cli.AssertContains(t, stdout, "print-config")
}

func Test_Run_Prints_Usage_When_Help_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	for _, flag := range []string{"-h", "--help"} {
		stdout := c.MustRun(flag)
		cli.AssertContains(t, stdout, "Manage games:")
		cli.AssertContains(t, stdout, "Browse:")
		cli.AssertContains(t, stdout, "Session and setup:")
	}
}

func Test_Run_Fails_When_Command_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("launch")
	cli.AssertContains(t, stderr, "unknown command: launch")
	cli.AssertContains(t, stderr, "Usage: gb")
}

func Test_Run_Fails_When_Global_Flag_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("--verbose", "ls")
	cli.AssertContains(t, stderr, "unknown flag: --verbose")
}

func Test_Run_Fails_When_Global_Flag_Missing_Value(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("--data-dir")
	cli.AssertContains(t, stderr, "flag requires an argument")
}

func Test_Command_Help_Shows_Flags(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("add", "--help")
	cli.AssertContains(t, stdout, "Usage: gb add <title> [flags]")
	cli.AssertContains(t, stdout, "--priority")
	cli.AssertContains(t, stdout, "--hours")

	_, err := os.Stat(c.DataDir())
	assert.True(t, os.IsNotExist(err), "help must not create the data dir")
}

func Test_Command_Fails_With_Help_Pointer_When_Flag_Unknown(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout, stderr, code := c.Run("ls", "--colour")
	assert.Equal(t, 1, code)
	cli.AssertContains(t, stderr, "error: ls: unknown flag: --colour")
	cli.AssertContains(t, stderr, `Run "gb ls --help" for usage.`)
	assert.Empty(t, stdout)
}

func Test_Usage_Lists_Commands_Under_Group_Headings(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun()

	manage := strings.Index(stdout, "Manage games:")
	browse := strings.Index(stdout, "Browse:")
	setup := strings.Index(stdout, "Session and setup:")

	require.Positive(t, manage)
	require.Greater(t, browse, manage)
	require.Greater(t, setup, browse)

	assert.Less(t, strings.Index(stdout, "add <title>"), browse)
	assert.Greater(t, strings.Index(stdout, "ls [--status=X]"), browse)
	assert.Greater(t, strings.Index(stdout, "print-config"), setup)
	cli.AssertContains(t, stdout, "(alias: list)")
}

func Test_Command_Runs_When_Invoked_By_Alias(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	c.MustRun("add", "Hades")
	c.MustRun("add", "Celeste")

	list := c.MustRun("list")
	cli.AssertContains(t, list, "Hades")
	cli.AssertContains(t, list, "Celeste")

	help := c.MustRun("rm", "--help")
	cli.AssertContains(t, help, "Aliases: delete")
}

func Test_Run_Uses_Data_Dir_Flag(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	c.MustRun("--data-dir", "elsewhere", "add", "Hades")

	_, err := os.Stat(filepath.Join(c.Dir, "elsewhere", "games.json"))
	require.NoError(t, err)

	_, err = os.Stat(c.DataDir())
	assert.True(t, os.IsNotExist(err))
}

func Test_Run_Persists_Across_Invocations_With_SQLite_Backend(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	id := c.MustRun("--backend=sqlite", "add", "Hades", "-P", "5")

	stdout := c.MustRun("--backend", "sqlite", "show", id)
	cli.AssertContains(t, stdout, "title: Hades")
	cli.AssertContains(t, stdout, "priority: 5")

	_, err := os.Stat(filepath.Join(c.DataDir(), "backlog.sqlite"))
	require.NoError(t, err)

	// The file backend has its own, empty, collection.
	assert.Empty(t, c.MustRun("ls"))
}

func Test_Run_Memory_Backend_Forgets_Between_Invocations(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Env["GB_BACKEND"] = "memory"

	c.MustRun("add", "Hades")

	assert.Empty(t, c.MustRun("ls"))
}

func Test_Run_Logs_At_Debug_Level_When_Configured(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".gb.json"), `{"log_level": "debug", "log_format": "json"}`)

	_, stderr, code := c.Run("add", "Hades")
	require.Equal(t, 0, code)
	cli.AssertContains(t, stderr, `"msg":"collection opened"`)
	cli.AssertContains(t, stderr, `"msg":"games saved"`)
}

func Test_Run_Stays_Quiet_At_Default_Log_Level(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	_, stderr, code := c.Run("add", "Hades")
	require.Equal(t, 0, code)
	assert.Empty(t, stderr)
}
