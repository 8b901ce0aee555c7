// Package config loads the YAML settings file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/setlist-archive-cli/geometry"
)

type Config struct {
	// LogLevel is a slog level: -4 debug, 0 info, 4 warn, 8 error.
	LogLevel int `yaml:"log_level"`
	// DataFile is a performances JSON document. When empty the catalog
	// database is used.
	DataFile string `yaml:"data_file"`
	Database string `yaml:"database"`

	DefaultDate  string            `yaml:"default_date"`
	PendingDates []string          `yaml:"pending_dates"`
	SongSlugs    map[string]string `yaml:"song_slugs"`
	Countries    []string          `yaml:"countries"`

	Server ServerConfig `yaml:"server"`
	Player PlayerConfig `yaml:"player"`
	Layout LayoutConfig `yaml:"layout"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type PlayerConfig struct {
	// SocketDir holds the mpv IPC sockets; empty means the temp dir.
	SocketDir string   `yaml:"socket_dir"`
	MpvArgs   []string `yaml:"mpv_args"`
}

type LayoutConfig struct {
	Width          float64 `yaml:"width"`
	TabCurveRadius float64 `yaml:"tab_curve_radius"`
	TabLeftMargin  float64 `yaml:"tab_left_margin"`
	TabClearance   float64 `yaml:"tab_clearance"`
	TabLocalDrop   float64 `yaml:"tab_local_drop"`
	TabArrowExtend float64 `yaml:"tab_arrow_extend"`
}

// Tuning returns the tab connector constants, with defaults for unset keys.
func (l LayoutConfig) Tuning() geometry.TabTuning {
	t := geometry.DefaultTabTuning()
	if l.TabCurveRadius > 0 {
		t.CurveRadius = l.TabCurveRadius
	}
	if l.TabLeftMargin > 0 {
		t.LeftMargin = l.TabLeftMargin
	}
	if l.TabClearance > 0 {
		t.Clearance = l.TabClearance
	}
	if l.TabLocalDrop > 0 {
		t.LocalDrop = l.TabLocalDrop
	}
	if l.TabArrowExtend > 0 {
		t.ArrowExtend = l.TabArrowExtend
	}
	return t
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	// an empty file decodes to nil
	if config == nil {
		config = &Config{}
	}

	config.applyDefaults()
	return config, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// DefaultPath returns ~/.config/setlist-archive-cli/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "setlist-archive-cli", "config.yaml"), nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Layout.Width <= 0 {
		c.Layout.Width = 1100
	}
}
