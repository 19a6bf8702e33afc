// Package config resolves tada's settings.
//
// Sources are applied in priority order, later ones winning:
//  1. Defaults
//  2. User config file ($XDG_CONFIG_HOME/tada/config.toml, or TADA_CONFIG)
//  3. Project config file (.tada.toml in the current directory)
//  4. Environment variables
//  5. Root CLI flags
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/tada/internal/session"
)

// Config is the resolved application configuration.
type Config struct {
	Backend    string `toml:"backend"`
	Session    string `toml:"session"`
	SessionDir string `toml:"session_dir"`
	Theme      string `toml:"theme"`
	LogLevel   string `toml:"log_level"`
	NoColor    bool   `toml:"no_color"`
	DateFormat string `toml:"date_format"`
}

const (
	projectConfigName = ".tada.toml"
	defaultDateFormat = "2006/01/02"
)

var themes = []string{"classic", "neon", "mono"}

func setDefaults(cfg *Config) {
	cfg.Backend = session.BackendFile
	cfg.Theme = "classic"
	cfg.LogLevel = "warn"
	cfg.DateFormat = defaultDateFormat
}

// Load resolves the configuration and parses root flags from args onto fs.
// Positional arguments are left in fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := userConfigFile(); p != "" {
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := projectConfigFile(); p != "" {
		if err := loadFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func userConfigFile() string {
	if p := strings.TrimSpace(os.Getenv("TADA_CONFIG")); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "tada", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func projectConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	p := filepath.Join(wd, projectConfigName)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// loadFile decodes a TOML file over cfg; keys absent from the file keep their value.
func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	str("TADA_BACKEND", &cfg.Backend)
	str(session.EnvSession, &cfg.Session)
	str("TADA_SESSION_DIR", &cfg.SessionDir)
	str("TADA_THEME", &cfg.Theme)
	str("TADA_LOG_LEVEL", &cfg.LogLevel)
	str("TADA_DATE_FORMAT", &cfg.DateFormat)

	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	if v := os.Getenv("TADA_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return nil
	}
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "session storage backend ("+strings.Join(session.Backends(), "|")+")")
	fs.StringVar(&cfg.Session, "session", cfg.Session, "session id (default: derived from the parent shell)")
	fs.StringVar(&cfg.SessionDir, "session-dir", cfg.SessionDir, "directory for file and sqlite sessions")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "color theme ("+strings.Join(themes, "|")+")")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.StringVar(&cfg.DateFormat, "date-format", cfg.DateFormat, "layout for creation dates (Go time layout)")
	return fs.Parse(args)
}

func finalize(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if !slices.Contains(session.Backends(), cfg.Backend) {
		return fmt.Errorf("invalid backend %q (want one of %s)", cfg.Backend, strings.Join(session.Backends(), ", "))
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if !slices.Contains(themes, cfg.Theme) {
		return fmt.Errorf("invalid theme %q (want one of %s)", cfg.Theme, strings.Join(themes, ", "))
	}
	if strings.TrimSpace(cfg.Session) == "" {
		cfg.Session = session.DefaultID()
	}
	if cfg.SessionDir == "" {
		cfg.SessionDir = session.DefaultDir()
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = defaultDateFormat
	}
	return nil
}

