// Package kde reads the icon theme from the Plasma kdeglobals file.
package kde

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

// Detector implements theme.Detector over kdeglobals
type Detector struct {
	fs   billy.Basic
	path string
}

// NewDetector creates a detector for <configHome>/kdeglobals
func NewDetector(fs billy.Basic, configHome string) *Detector {
	return &Detector{fs: fs, path: filepath.Join(configHome, "kdeglobals")}
}

// IsAvailable checks if kdeglobals exists
func (d *Detector) IsAvailable() bool {
	_, err := d.fs.Stat(d.path)
	return err == nil
}

// Source returns "kde"
func (d *Detector) Source() string {
	return "kde"
}

// IconTheme returns [Icons] Theme
func (d *Detector) IconTheme(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := util.ReadFile(d.fs, d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(theme.ErrNotConfigured, "kdeglobals not found")
		}
		return "", errors.Wrapf(err, "failed to read %s", d.path)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      "=",
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", d.path)
	}

	section, err := file.GetSection("Icons")
	if err != nil || !section.HasKey("Theme") {
		return "", errors.Wrap(theme.ErrNotConfigured, "kdeglobals has no [Icons] Theme")
	}

	name := strings.TrimSpace(section.Key("Theme").Value())
	if name == "" {
		return "", errors.Wrap(theme.ErrNotConfigured, "kdeglobals [Icons] Theme is empty")
	}
	return name, nil
}

// Close cleans up resources
func (d *Detector) Close() error {
	return nil
}
