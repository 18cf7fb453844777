package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultHome is used when HOME is not set
	DefaultHome = "/root"

	// DefaultDataDirs is used when XDG_DATA_DIRS is not set
	DefaultDataDirs = "/usr/local/share:/usr/share"

	// DefaultMaxIconCandidates bounds how many theme lookup results are inspected
	DefaultMaxIconCandidates = 15
)

// Config holds all application configuration
type Config struct {
	// Filesystem roots, resolved once at startup
	Paths PathsConfig `yaml:"paths"`

	// Catalog assembly configuration
	Catalog CatalogConfig `yaml:"catalog"`

	// Icon resolution configuration
	Icons IconsConfig `yaml:"icons"`

	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Scan history configuration
	History HistoryConfig `yaml:"history"`
}

// PathsConfig holds the XDG base directories
type PathsConfig struct {
	Home       string   `yaml:"home"`        // Home directory, substituted into {home}
	DataHome   string   `yaml:"data_home"`   // Empty means <home>/.local/share
	DataDirs   []string `yaml:"data_dirs"`   // System data directories, in priority order
	ConfigHome string   `yaml:"config_home"` // Empty means <home>/.config
}

// CatalogConfig holds catalog assembly configuration
type CatalogConfig struct {
	Favorites  []string `yaml:"favorites"`   // Lowercase keywords marking favorites
	FieldCodes []string `yaml:"field_codes"` // Exec placeholders removed from commands
}

// IconsConfig holds icon resolution configuration
type IconsConfig struct {
	Theme         string   `yaml:"theme"`          // Empty means detect
	MaxCandidates int      `yaml:"max_candidates"` // Theme lookup results inspected per icon
	Templates     []string `yaml:"templates"`      // High resolution paths with {name} and {home}
	Fallbacks     []string `yaml:"fallbacks"`      // Generic icons tried last
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	NoColor bool   `yaml:"no_color"`
}

// HistoryConfig holds scan history configuration
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"` // Record each run in the history database
	Path    string `yaml:"path"`    // Empty means <config_home>/applauncher/history.db
}

// DefaultFavorites are the keywords that mark an application as a favorite
var DefaultFavorites = []string{
	"neovim",
	"nvim",
	"prism launcher",
	"steam",
	"zen browser",
	"zen",
	"obs studio",
	"cider",
	"discord",
}

// DefaultFieldCodes are the Exec field codes stripped from launch commands
var DefaultFieldCodes = []string{"%f", "%F", "%u", "%U"}

// DefaultIconTemplates are the conventional high resolution icon locations
var DefaultIconTemplates = []string{
	"/usr/share/icons/hicolor/scalable/apps/{name}.svg",
	"{home}/.local/share/icons/hicolor/scalable/apps/{name}.svg",
	"/usr/share/icons/hicolor/512x512/apps/{name}.png",
	"{home}/.local/share/icons/hicolor/512x512/apps/{name}.png",
	"/usr/share/icons/hicolor/256x256/apps/{name}.png",
	"{home}/.local/share/icons/hicolor/256x256/apps/{name}.png",
	"/usr/share/icons/hicolor/128x128/apps/{name}.png",
	"{home}/.local/share/icons/hicolor/128x128/apps/{name}.png",
	"/usr/share/icons/hicolor/48x48/apps/{name}.png",
	"{home}/.local/share/icons/hicolor/48x48/apps/{name}.png",
	"/usr/share/pixmaps/{name}.svg",
	"/usr/share/pixmaps/{name}.png",
}

// DefaultFallbackIcons are tried when nothing else resolves
var DefaultFallbackIcons = []string{
	"/usr/share/icons/Adwaita/symbolic/status/image-missing-symbolic.svg",
	"/usr/share/icons/hicolor/scalable/apps/application-x-executable.svg",
	"/usr/share/pixmaps/python.png",
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Home:     DefaultHome,
			DataDirs: SplitPathList(DefaultDataDirs),
		},
		Catalog: CatalogConfig{
			Favorites:  append([]string(nil), DefaultFavorites...),
			FieldCodes: append([]string(nil), DefaultFieldCodes...),
		},
		Icons: IconsConfig{
			MaxCandidates: DefaultMaxIconCandidates,
			Templates:     append([]string(nil), DefaultIconTemplates...),
			Fallbacks:     append([]string(nil), DefaultFallbackIcons...),
		},
		Log: LogConfig{
			Level: "warn",
		},
		History: HistoryConfig{
			Enabled: false,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Paths.Home == "" {
		return fmt.Errorf("home directory cannot be empty")
	}

	for i, keyword := range c.Catalog.Favorites {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("favorite keyword %d is empty", i)
		}
	}

	for i, code := range c.Catalog.FieldCodes {
		if code == "" {
			return fmt.Errorf("field code %d is empty", i)
		}
	}

	if c.Icons.MaxCandidates < 1 {
		return fmt.Errorf("max icon candidates must be at least 1, got %d", c.Icons.MaxCandidates)
	}

	if len(c.Icons.Templates) > 0 {
		hasName := false
		for _, tmpl := range c.Icons.Templates {
			if strings.Contains(tmpl, "{name}") {
				hasName = true
				break
			}
		}
		if !hasName {
			return fmt.Errorf("icon templates must reference {name}")
		}
	}

	for i, fallback := range c.Icons.Fallbacks {
		if fallback == "" {
			return fmt.Errorf("fallback icon %d is empty", i)
		}
	}

	return nil
}

// SetMaxIconCandidates sets the lookup inspection bound with validation
func (c *Config) SetMaxIconCandidates(n int) error {
	if n < 1 {
		return fmt.Errorf("max icon candidates must be at least 1, got %d", n)
	}
	c.Icons.MaxCandidates = n
	return nil
}

// DataHomeDir returns the user data directory
func (c *Config) DataHomeDir() string {
	if c.Paths.DataHome != "" {
		return c.Paths.DataHome
	}
	return filepath.Join(c.Paths.Home, ".local", "share")
}

// ConfigHomeDir returns the user configuration directory
func (c *Config) ConfigHomeDir() string {
	if c.Paths.ConfigHome != "" {
		return c.Paths.ConfigHome
	}
	return filepath.Join(c.Paths.Home, ".config")
}

// ConfigFile returns the default location of the YAML config file
func (c *Config) ConfigFile() string {
	return filepath.Join(c.ConfigHomeDir(), "applauncher", "config.yaml")
}

// HistoryPath returns the history database path
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.ConfigHomeDir(), "applauncher", "history.db")
}

// SplitPathList splits a colon separated directory list, dropping empty segments
func SplitPathList(list string) []string {
	var dirs []string
	for _, dir := range strings.Split(list, ":") {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Paths:
    Home: %s
    Data Home: %s
    Data Dirs: %s
    Config Home: %s
  Catalog:
    Favorites: %s
    Field Codes: %s
  Icons:
    Theme: %s
    Max Candidates: %d
    Templates: %d
    Fallbacks: %d
  Log:
    Level: %s
    File: %s
  History:
    Enabled: %v
    Path: %s`,
		c.Paths.Home,
		c.DataHomeDir(),
		strings.Join(c.Paths.DataDirs, ":"),
		c.ConfigHomeDir(),
		strings.Join(c.Catalog.Favorites, ", "),
		strings.Join(c.Catalog.FieldCodes, " "),
		c.Icons.Theme,
		c.Icons.MaxCandidates,
		len(c.Icons.Templates),
		len(c.Icons.Fallbacks),
		c.Log.Level,
		c.Log.File,
		c.History.Enabled,
		c.HistoryPath(),
	)
}
