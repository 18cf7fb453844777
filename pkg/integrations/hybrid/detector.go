package hybrid

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deskkit/applauncher/pkg/integrations/gtk"
	"github.com/deskkit/applauncher/pkg/integrations/kde"
	"github.com/deskkit/applauncher/pkg/integrations/portal"
	"github.com/deskkit/applauncher/pkg/integrations/x11"
	"github.com/deskkit/applauncher/pkg/theme"
)

// Detector asks each source in turn and returns the first theme found
type Detector struct {
	sources []theme.Detector
	logger  zerolog.Logger

	lastSource string
}

// NewDetector builds the source chain for the current session: the session
// specific source first, then the GTK and KDE config files.
func NewDetector(fs billy.Basic, configHome string, logger zerolog.Logger) *Detector {
	var sources []theme.Detector

	switch SessionType() {
	case "wayland":
		sources = append(sources, portal.NewDetector())
	case "x11":
		sources = append(sources, x11.NewDetector())
	}

	sources = append(sources,
		gtk.NewDetector(fs, configHome),
		kde.NewDetector(fs, configHome),
	)

	return NewDetectorWithSources(logger, sources...)
}

// NewDetectorWithSources creates a detector over an explicit source chain
func NewDetectorWithSources(logger zerolog.Logger, sources ...theme.Detector) *Detector {
	return &Detector{
		sources: sources,
		logger:  logger,
	}
}

// SessionType reports "wayland", "x11" or "unknown" from the session environment
func SessionType() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")

	if sessionType == "wayland" || os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}

	if sessionType == "x11" || os.Getenv("DISPLAY") != "" {
		return "x11"
	}

	return "unknown"
}

// IconTheme returns the first theme reported by an available source. Source
// failures are logged and skipped.
func (d *Detector) IconTheme(ctx context.Context) (string, error) {
	var failures []string

	for _, source := range d.sources {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if !source.IsAvailable() {
			d.logger.Debug().Str("source", source.Source()).Msg("icon theme source unavailable")
			continue
		}

		name, err := source.IconTheme(ctx)
		if err != nil {
			level := d.logger.Debug()
			if !errors.Is(err, theme.ErrNotConfigured) {
				level = d.logger.Info()
			}
			level.Err(err).Str("source", source.Source()).Msg("icon theme source failed")
			failures = append(failures, source.Source())
			continue
		}

		d.lastSource = source.Source()
		d.logger.Debug().Str("source", d.lastSource).Str("theme", name).Msg("icon theme detected")
		return name, nil
	}

	if len(failures) > 0 {
		return "", errors.Wrapf(theme.ErrNotConfigured, "tried %s", strings.Join(failures, ", "))
	}
	return "", theme.ErrNotConfigured
}

// IsAvailable checks if any source can be queried
func (d *Detector) IsAvailable() bool {
	for _, source := range d.sources {
		if source.IsAvailable() {
			return true
		}
	}
	return false
}

// Source returns "hybrid"
func (d *Detector) Source() string {
	return "hybrid"
}

// LastSource returns the source that answered the last successful query
func (d *Detector) LastSource() string {
	return d.lastSource
}

// GetStatus describes the source chain
func (d *Detector) GetStatus() string {
	status := "Icon Theme Sources:\n"
	for _, source := range d.sources {
		status += fmt.Sprintf("  %-10s available: %v\n", source.Source(), source.IsAvailable())
	}
	if d.lastSource != "" {
		status += fmt.Sprintf("  Last successful source: %s\n", d.lastSource)
	}
	return status
}

// Close closes every source
func (d *Detector) Close() error {
	for _, source := range d.sources {
		if err := source.Close(); err != nil {
			d.logger.Warn().Err(err).Str("source", source.Source()).Msg("error closing icon theme source")
		}
	}
	return nil
}
