// Package portal reads desktop settings through the xdg-desktop-portal
// Settings interface on the session bus. It works under any Wayland
// compositor that ships a portal backend.
package portal

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"

	"github.com/deskkit/applauncher/pkg/theme"
)

const (
	portalDest = "org.freedesktop.portal.Desktop"
	portalPath = dbus.ObjectPath("/org/freedesktop/portal/desktop")

	settingsInterface = "org.freedesktop.portal.Settings"
	readOneMethod     = settingsInterface + ".ReadOne"
	readMethod        = settingsInterface + ".Read" // deprecated, older portals only

	interfaceNamespace = "org.gnome.desktop.interface"
	iconThemeKey       = "icon-theme"
)

// Detector implements theme.Detector over the desktop portal
type Detector struct {
	conn *dbus.Conn
	err  error
}

// NewDetector opens a private session bus connection
func NewDetector() *Detector {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return &Detector{err: err}
	}
	return &Detector{conn: conn}
}

// IsAvailable checks if the session bus is reachable
func (d *Detector) IsAvailable() bool {
	return d.conn != nil
}

// Source returns "portal"
func (d *Detector) Source() string {
	return "portal"
}

// IconTheme reads org.gnome.desktop.interface icon-theme from the portal
func (d *Detector) IconTheme(ctx context.Context) (string, error) {
	if d.conn == nil {
		if d.err != nil {
			return "", errors.Wrap(d.err, "session bus unavailable")
		}
		return "", errors.New("session bus unavailable")
	}

	obj := d.conn.Object(portalDest, portalPath)

	var value dbus.Variant
	call := obj.CallWithContext(ctx, readOneMethod, 0, interfaceNamespace, iconThemeKey)
	if call.Err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		call = obj.CallWithContext(ctx, readMethod, 0, interfaceNamespace, iconThemeKey)
	}
	if call.Err != nil {
		return "", errors.Wrap(call.Err, "failed to read portal setting")
	}
	if err := call.Store(&value); err != nil {
		return "", errors.Wrap(err, "failed to decode portal setting")
	}

	name, ok := unwrapString(value)
	if !ok {
		return "", errors.Errorf("unexpected portal value type %s", value.Signature())
	}
	if name == "" {
		return "", errors.Wrapf(theme.ErrNotConfigured, "%s %s is empty", interfaceNamespace, iconThemeKey)
	}
	return name, nil
}

// unwrapString strips the variant layers around a string value. Read wraps
// the value in one more variant than ReadOne does.
func unwrapString(v interface{}) (string, bool) {
	for {
		switch val := v.(type) {
		case dbus.Variant:
			v = val.Value()
		case string:
			return val, true
		default:
			return "", false
		}
	}
}

// Close cleans up resources
func (d *Detector) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	if err != nil {
		return errors.Wrap(err, "failed to close session bus")
	}
	return nil
}
