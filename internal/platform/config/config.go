package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const settingsFile = "timetrack.yaml"

// Settings are the user-tunable knobs, read from timetrack.yaml in the data
// directory. A missing file means defaults; a malformed file is an error
// because silently ignoring a config the user wrote would be worse.
type Settings struct {
	Language          string `yaml:"language"`
	MinSessionSeconds int    `yaml:"min_session_seconds"`
	WeekStart         string `yaml:"week_start"`
}

type Config struct {
	DataDir     string
	StorePath   string
	ActivePath  string
	DBPath      string
	PluginsPath string
	Settings    Settings
}

func defaults() Settings {
	return Settings{
		Language:          "ru",
		MinSessionSeconds: 10,
		WeekStart:         "monday",
	}
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	cfg := Config{
		DataDir:     dataDir,
		StorePath:   filepath.Join(dataDir, "activities.json"),
		ActivePath:  filepath.Join(dataDir, "active-session.json"),
		DBPath:      filepath.Join(dataDir, ".timetrack", "index.db"),
		PluginsPath: filepath.Join(dataDir, "plugins", "plugins.json"),
		Settings:    defaults(),
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, settingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", settingsFile, err)
	}
	if err := yaml.Unmarshal(raw, &cfg.Settings); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", settingsFile, err)
	}
	if cfg.Settings.Language == "" {
		cfg.Settings.Language = defaults().Language
	}
	if cfg.Settings.MinSessionSeconds == 0 {
		cfg.Settings.MinSessionSeconds = defaults().MinSessionSeconds
	}
	if cfg.Settings.WeekStart == "" {
		cfg.Settings.WeekStart = defaults().WeekStart
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Settings.Language {
	case "ru", "en":
	default:
		return fmt.Errorf("unsupported language %q (want ru or en)", c.Settings.Language)
	}
	if c.Settings.MinSessionSeconds < 0 {
		return fmt.Errorf("min_session_seconds must not be negative")
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}
	return nil
}

// MinSessionDuration is the shortest session worth persisting.
func (c Config) MinSessionDuration() time.Duration {
	return time.Duration(c.Settings.MinSessionSeconds) * time.Second
}

// WeekStart resolves the configured week origin to a weekday.
func (c Config) WeekStart() (time.Weekday, error) {
	switch strings.ToLower(c.Settings.WeekStart) {
	case "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("unsupported week_start %q (want monday or sunday)", c.Settings.WeekStart)
	}
}
