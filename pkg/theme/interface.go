package theme

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotConfigured is returned when a source is reachable but names no theme
var ErrNotConfigured = errors.New("icon theme not configured")

// Detector is the interface that all icon theme sources must satisfy
type Detector interface {
	// IconTheme returns the icon theme name the desktop session uses
	IconTheme(ctx context.Context) (string, error)

	// IsAvailable checks if this source can be queried on the current system
	IsAvailable() bool

	// Source returns a short name of the source ("portal", "xsettings", ...)
	Source() string

	// Close cleans up any resources used by the detector
	Close() error
}
