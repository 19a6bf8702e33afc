package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at empty temp locations.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("HOME", home)
	for _, k := range []string{
		"TADA_CONFIG", "TADA_BACKEND", "TADA_SESSION", "TADA_SESSION_DIR",
		"TADA_THEME", "TADA_LOG_LEVEL", "TADA_DATE_FORMAT", "NO_COLOR", "TADA_NO_COLOR",
	} {
		t.Setenv(k, "")
	}
	wd := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(wd))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return wd
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("tada", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "2006/01/02", cfg.DateFormat)
	assert.False(t, cfg.NoColor)
	assert.Regexp(t, `^ppid-\d+$`, cfg.Session)
	assert.NotEmpty(t, cfg.SessionDir)
}

func TestPriority(t *testing.T) {
	wd := isolate(t)

	user := filepath.Join(t.TempDir(), "user.toml")
	require.NoError(t, os.WriteFile(user, []byte(`
backend = "sqlite"
theme = "neon"
log_level = "debug"
`), 0o644))
	t.Setenv("TADA_CONFIG", user)

	require.NoError(t, os.WriteFile(filepath.Join(wd, ".tada.toml"), []byte(`
theme = "mono"
session = "from-project"
`), 0o644))

	t.Setenv("TADA_SESSION", "from-env")
	t.Setenv("NO_COLOR", "1")

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"-log-level", "error", "ls", "-json"})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Backend, "user file")
	assert.Equal(t, "mono", cfg.Theme, "project file overrides user file")
	assert.Equal(t, "from-env", cfg.Session, "env overrides files")
	assert.Equal(t, "error", cfg.LogLevel, "flag overrides everything")
	assert.True(t, cfg.NoColor)
	assert.Equal(t, []string{"ls", "-json"}, fs.Args())
}

func TestDateFormat(t *testing.T) {
	wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".tada.toml"), []byte(`date_format = "Jan 2"`), 0o644))

	cfg, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Jan 2", cfg.DateFormat, "project file")

	t.Setenv("TADA_DATE_FORMAT", "02.01.2006")
	cfg, err = Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "02.01.2006", cfg.DateFormat, "env overrides file")

	cfg, err = Load(newFlagSet(), []string{"-date-format", "2006-01-02 15:04"})
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02 15:04", cfg.DateFormat, "flag overrides env")
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"backend", []string{"-backend", "redis"}, "invalid backend"},
		{"theme", []string{"-theme", "solarized"}, "invalid theme"},
		{"flag", []string{"-nope"}, "parsing flags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			fs := newFlagSet()
			fs.SetOutput(io.Discard)
			_, err := Load(fs, tt.args)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestUnknownKeysInFile(t *testing.T) {
	wd := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".tada.toml"), []byte(`colour = "red"`), 0o644))

	_, err := Load(newFlagSet(), nil)
	assert.ErrorContains(t, err, "unknown keys: colour")
}
