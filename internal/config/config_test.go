package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/calvinalkan/backlog/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func load(t *testing.T, in config.LoadInput) (config.Config, error) {
	t.Helper()

	if in.Env == nil {
		in.Env = map[string]string{}
	}

	return config.Load(in)
}

func Test_Load_Returns_Defaults_When_No_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := load(t, config.LoadInput{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.EffectiveCwd)
	assert.Equal(t, filepath.Join(dir, ".gb"), cfg.DataDirAbs)
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, "games", cfg.Key)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "priority", cfg.DefaultSort)
	assert.Empty(t, cfg.Sources.Global)
	assert.Empty(t, cfg.Sources.Project)
}

func Test_Load_Reads_Project_Config_With_Comments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gb.json"), `{
		// stored next to the project
		"data_dir": "saves",
		"backend": "sqlite",
		"default_sort": "name",
	}`)

	cfg, err := load(t, config.LoadInput{WorkDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "saves"), cfg.DataDirAbs)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "name", cfg.DefaultSort)
	assert.Equal(t, filepath.Join(dir, ".gb.json"), cfg.Sources.Project)
}

func Test_Load_Applies_Precedence_When_All_Sources_Set(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xdg := t.TempDir()

	writeFile(t, filepath.Join(xdg, "gb", "config.json"), `{"data_dir": "global", "log_level": "debug", "backend": "sqlite"}`)
	writeFile(t, filepath.Join(dir, ".gb.json"), `{"data_dir": "project"}`)

	cfg, err := load(t, config.LoadInput{
		WorkDir: dir,
		Env:     map[string]string{"XDG_CONFIG_HOME": xdg},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "project"), cfg.DataDirAbs, "project beats global")
	assert.Equal(t, "debug", cfg.LogLevel, "global beats defaults")
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, filepath.Join(xdg, "gb", "config.json"), cfg.Sources.Global)

	cfg, err = load(t, config.LoadInput{
		WorkDir:   dir,
		Env:       map[string]string{"XDG_CONFIG_HOME": xdg, "GB_BACKEND": "memory"},
		Overrides: config.Overrides{DataDir: "cli"},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cli"), cfg.DataDirAbs, "flag beats files")
	assert.Equal(t, "memory", cfg.Backend, "env beats files")

	cfg, err = load(t, config.LoadInput{
		WorkDir:   dir,
		Env:       map[string]string{"GB_BACKEND": "memory"},
		Overrides: config.Overrides{Backend: "file"},
	})
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Backend, "flag beats env")
}

func Test_Load_Uses_Home_When_XDG_Unset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := t.TempDir()

	writeFile(t, filepath.Join(home, ".config", "gb", "config.json"), `{"key": "mine"}`)

	cfg, err := load(t, config.LoadInput{WorkDir: dir, Env: map[string]string{"HOME": home}})
	require.NoError(t, err)

	assert.Equal(t, "mine", cfg.Key)
}

func Test_Load_Explicit_Config_Replaces_Project_Lookup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gb.json"), `{"data_dir": "project"}`)
	writeFile(t, filepath.Join(dir, "alt.json"), `{"log_format": "json"}`)

	cfg, err := load(t, config.LoadInput{WorkDir: dir, ConfigPath: "alt.json"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".gb"), cfg.DataDirAbs)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, filepath.Join(dir, "alt.json"), cfg.Sources.Project)
}

func Test_Load_Returns_Error_When_Explicit_Config_Missing(t *testing.T) {
	t.Parallel()

	_, err := load(t, config.LoadInput{WorkDir: t.TempDir(), ConfigPath: "nope.json"})
	require.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func Test_Load_Returns_Error_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"syntax", `{"data_dir": `, config.ErrConfigInvalid},
		{"empty data dir", `{"data_dir": ""}`, config.ErrDataDirEmpty},
		{"backend", `{"backend": "mongo"}`, config.ErrInvalidBackend},
		{"redis without addr", `{"backend": "redis"}`, config.ErrRedisAddrRequired},
		{"key with slash", `{"key": "a/b"}`, config.ErrInvalidKey},
		{"log level", `{"log_level": "loud"}`, config.ErrInvalidLogLevel},
		{"log format", `{"log_format": "xml"}`, config.ErrInvalidLogFormat},
		{"sort", `{"default_sort": "rating"}`, config.ErrInvalidSort},
		{"timeout", `{"write_timeout": "soon"}`, config.ErrInvalidTimeout},
		{"negative timeout", `{"write_timeout": "-1s"}`, config.ErrInvalidTimeout},
		{"locale", `{"locale": "not a tag!"}`, config.ErrInvalidLocale},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".gb.json"), tc.content)

			_, err := load(t, config.LoadInput{WorkDir: dir})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func Test_Load_Reads_Redis_Address_From_Env(t *testing.T) {
	t.Parallel()

	cfg, err := load(t, config.LoadInput{
		WorkDir: t.TempDir(),
		Env:     map[string]string{"GB_BACKEND": "redis", "GB_REDIS_ADDR": "localhost:6379"},
	})
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func Test_Load_Keeps_Absolute_Data_Dir(t *testing.T) {
	t.Parallel()

	abs := t.TempDir()

	cfg, err := load(t, config.LoadInput{WorkDir: t.TempDir(), Overrides: config.Overrides{DataDir: abs}})
	require.NoError(t, err)

	assert.Equal(t, abs, cfg.DataDirAbs)
}

func Test_Timeout_And_Language_Parse_Configured_Values(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.WriteTimeout = "250ms"
	cfg.Locale = "sv-SE"

	d, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	tag, err := cfg.Language()
	require.NoError(t, err)

	base, _ := tag.Base()
	assert.Equal(t, "sv", base.String())

	cfg = config.Default()

	d, err = cfg.Timeout()
	require.NoError(t, err)
	assert.Zero(t, d)

	tag, err = cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, language.Und, tag)
}

func Test_Format_Lists_Resolved_Values(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := load(t, config.LoadInput{WorkDir: dir})
	require.NoError(t, err)

	out := config.Format(cfg)

	assert.Contains(t, out, "data_dir="+filepath.Join(dir, ".gb"))
	assert.Contains(t, out, "backend=file")
	assert.Contains(t, out, "default_sort=priority")
	assert.NotContains(t, out, "redis_addr")
}
