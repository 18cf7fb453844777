package detector

import (
	"context"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/deskkit/applauncher/internal/config"
	"github.com/deskkit/applauncher/internal/icon"
	"github.com/deskkit/applauncher/pkg/integrations/hybrid"
	"github.com/deskkit/applauncher/pkg/theme"
)

// Timeout bounds how long theme detection may block a run
const Timeout = 2 * time.Second

// New returns the icon theme detector for the current session
func New(fs billy.Basic, cfg *config.Config, logger zerolog.Logger) theme.Detector {
	return hybrid.NewDetector(fs, cfg.ConfigHomeDir(), logger)
}

// DetectDisplayServer returns the display server type of the session
func DetectDisplayServer() string {
	return hybrid.SessionType()
}

// ResolveTheme returns the configured theme, else the detected one, else
// hicolor. It never fails.
func ResolveTheme(ctx context.Context, cfg *config.Config, det theme.Detector, logger zerolog.Logger) string {
	if cfg.Icons.Theme != "" {
		return cfg.Icons.Theme
	}
	if det == nil {
		return icon.FallbackTheme
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	name, err := det.IconTheme(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("icon theme detection failed, using hicolor")
		return icon.FallbackTheme
	}
	return name
}
