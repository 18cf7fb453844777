// Package gtk reads the icon theme from GTK settings.ini files.
package gtk

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/deskkit/applauncher/pkg/theme"
)

const (
	settingsSection = "Settings"
	iconThemeKey    = "gtk-icon-theme-name"
)

// Versions are the GTK config directories consulted, newest first
var Versions = []string{"gtk-4.0", "gtk-3.0"}

// Detector implements theme.Detector over settings.ini
type Detector struct {
	fs         billy.Basic
	configHome string
}

// NewDetector creates a detector reading below configHome
func NewDetector(fs billy.Basic, configHome string) *Detector {
	return &Detector{fs: fs, configHome: configHome}
}

// IsAvailable checks if any settings.ini exists
func (d *Detector) IsAvailable() bool {
	for _, path := range d.paths() {
		if _, err := d.fs.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// Source returns "gtk"
func (d *Detector) Source() string {
	return "gtk"
}

// IconTheme returns gtk-icon-theme-name from the newest settings.ini that
// sets it. An unreadable file does not hide an older version's setting.
func (d *Detector) IconTheme(ctx context.Context) (string, error) {
	var readErr error

	for _, path := range d.paths() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		name, err := readKey(d.fs, path, settingsSection, iconThemeKey)
		if err != nil {
			if readErr == nil {
				readErr = err
			}
			continue
		}
		if name != "" {
			return name, nil
		}
	}

	if readErr != nil {
		return "", readErr
	}
	return "", errors.Wrapf(theme.ErrNotConfigured, "%s not set", iconThemeKey)
}

func (d *Detector) paths() []string {
	paths := make([]string, len(Versions))
	for i, version := range Versions {
		paths[i] = filepath.Join(d.configHome, version, "settings.ini")
	}
	return paths
}

// Close cleans up resources
func (d *Detector) Close() error {
	return nil
}

// readKey returns the trimmed value of section/key, or an empty string when
// the file, section or key is absent
func readKey(fs billy.Basic, path, section, key string) (string, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      "=",
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", path)
	}

	sec, err := file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return "", nil
	}
	return strings.TrimSpace(sec.Key(key).Value()), nil
}
