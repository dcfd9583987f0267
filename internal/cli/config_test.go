package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/backlog/internal/cli"
)

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "data_dir="+filepath.Join(c.Dir, ".gb"))
	cli.AssertContains(t, stdout, "backend=file")
	cli.AssertContains(t, stdout, "(defaults only)")

	_, err := os.Stat(c.DataDir())
	assert.True(t, os.IsNotExist(err), "print-config must not create the data dir")
}

func Test_Print_Config_From_Config_File_With_Comments_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".gb.json"), `{
		// This is a comment
		"data_dir": "saves",
		"default_sort": "name",
	}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "data_dir="+filepath.Join(c.Dir, "saves"))
	cli.AssertContains(t, stdout, "default_sort=name")
	cli.AssertContains(t, stdout, "project_config="+filepath.Join(c.Dir, ".gb.json"))
}

func Test_Print_Config_Explicit_Config_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, "custom.json"), `{"data_dir": "custom-dir"}`)

	for _, args := range [][]string{
		{"-c", "custom.json", "print-config"},
		{"--config=custom.json", "print-config"},
	} {
		stdout := c.MustRun(args...)
		cli.AssertContains(t, stdout, "data_dir="+filepath.Join(c.Dir, "custom-dir"))
	}
}

func Test_Print_Config_Flags_Override_Files_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".gb.json"), `{"data_dir": "from-file", "backend": "sqlite"}`)

	stdout := c.MustRun("--data-dir=from-cli", "--backend", "memory", "print-config")
	cli.AssertContains(t, stdout, "data_dir="+filepath.Join(c.Dir, "from-cli"))
	cli.AssertContains(t, stdout, "backend=memory")
}

func Test_Print_Config_Reads_Global_Config_When_XDG_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	xdg := t.TempDir()
	c.Env["XDG_CONFIG_HOME"] = xdg
	writeFile(t, filepath.Join(xdg, "gb", "config.json"), `{"locale": "sv"}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "locale=sv")
	cli.AssertContains(t, stdout, "global_config="+filepath.Join(xdg, "gb", "config.json"))
}

func Test_Run_Fails_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".gb.json"), `{"data_dir": ""}`)

	stderr := c.MustFail("ls")
	cli.AssertContains(t, stderr, "data_dir cannot be empty")
}

func Test_Run_Fails_When_Explicit_Config_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stderr := c.MustFail("-c", "missing.json", "ls")
	cli.AssertContains(t, stderr, "config file not found")
}
