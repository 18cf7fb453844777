package config

import (
	"os"
	"strconv"
	"strings"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default and file values
func LoadFromEnv(cfg *Config) {
	// XDG base directories
	if home := os.Getenv("HOME"); home != "" {
		cfg.Paths.Home = home
	}

	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		cfg.Paths.DataHome = dataHome
	}

	if dataDirs := os.Getenv("XDG_DATA_DIRS"); dataDirs != "" {
		if dirs := SplitPathList(dataDirs); len(dirs) > 0 {
			cfg.Paths.DataDirs = dirs
		}
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		cfg.Paths.ConfigHome = configHome
	}

	// Catalog configuration
	if favorites := os.Getenv("APPLAUNCHER_FAVORITES"); favorites != "" {
		var keywords []string
		for _, keyword := range strings.Split(favorites, ",") {
			if keyword = strings.ToLower(strings.TrimSpace(keyword)); keyword != "" {
				keywords = append(keywords, keyword)
			}
		}
		if len(keywords) > 0 {
			cfg.Catalog.Favorites = keywords
		}
	}

	// Icon configuration
	if theme := os.Getenv("APPLAUNCHER_ICON_THEME"); theme != "" {
		cfg.Icons.Theme = theme
	}

	if maxCandidates := os.Getenv("APPLAUNCHER_MAX_ICON_CANDIDATES"); maxCandidates != "" {
		if n, err := strconv.Atoi(maxCandidates); err == nil && n > 0 {
			cfg.Icons.MaxCandidates = n
		}
	}

	// Log configuration
	if level := os.Getenv("APPLAUNCHER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if logFile := os.Getenv("APPLAUNCHER_LOG_FILE"); logFile != "" {
		cfg.Log.File = logFile
	}

	// History configuration
	if record := os.Getenv("APPLAUNCHER_RECORD"); record != "" {
		if val, err := strconv.ParseBool(record); err == nil {
			cfg.History.Enabled = val
		}
	}

	if dbPath := os.Getenv("APPLAUNCHER_DB_PATH"); dbPath != "" {
		cfg.History.Path = dbPath
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
