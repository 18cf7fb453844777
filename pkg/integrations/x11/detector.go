package x11

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/deskkit/applauncher/pkg/theme"
)

// IconThemeSetting is the XSETTINGS key holding the icon theme name
const IconThemeSetting = "Net/IconThemeName"

const (
	settingsAtom = "_XSETTINGS_SETTINGS"

	// property reads are in 32-bit units
	maxPropertyLength = 1 << 16
)

// XSETTINGS value types
const (
	typeInteger = 0
	typeString  = 1
	typeColor   = 2
)

// Detector implements theme.Detector by reading the XSETTINGS manager
// selection of the default screen
type Detector struct {
	conn   *xgb.Conn
	screen int
	err    error
}

// NewDetector connects to the X server named by DISPLAY
func NewDetector() *Detector {
	conn, err := xgb.NewConn()
	if err != nil {
		return &Detector{err: err}
	}
	return &Detector{conn: conn, screen: conn.DefaultScreen}
}

// IsAvailable checks if an X server connection was established
func (d *Detector) IsAvailable() bool {
	return d.conn != nil
}

// Source returns "xsettings"
func (d *Detector) Source() string {
	return "xsettings"
}

// IconTheme reads Net/IconThemeName from the running settings daemon
func (d *Detector) IconTheme(ctx context.Context) (string, error) {
	if d.conn == nil {
		if d.err != nil {
			return "", errors.Wrap(d.err, "x11 connection unavailable")
		}
		return "", errors.New("x11 connection unavailable")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	conn, screen := d.conn, d.screen
	return awaitReply(ctx, func() (string, error) {
		return readIconTheme(conn, screen)
	})
}

type themeReply struct {
	name string
	err  error
}

// awaitReply runs query until it returns or ctx is done. xgb replies do not
// observe a context; an abandoned query ends when Close drops the connection.
func awaitReply(ctx context.Context, query func() (string, error)) (string, error) {
	done := make(chan themeReply, 1)
	go func() {
		name, err := query()
		done <- themeReply{name: name, err: err}
	}()

	select {
	case reply := <-done:
		return reply.name, reply.err
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "xsettings query timed out")
	}
}

// readIconTheme performs the blocking XSETTINGS round trips
func readIconTheme(conn *xgb.Conn, screen int) (string, error) {
	selection, err := internAtom(conn, fmt.Sprintf("_XSETTINGS_S%d", screen))
	if err != nil {
		return "", err
	}

	owner, err := xproto.GetSelectionOwner(conn, selection).Reply()
	if err != nil {
		return "", errors.Wrap(err, "failed to get xsettings selection owner")
	}
	if owner.Owner == 0 {
		return "", errors.Wrap(theme.ErrNotConfigured, "no xsettings manager running")
	}

	property, err := internAtom(conn, settingsAtom)
	if err != nil {
		return "", err
	}

	reply, err := xproto.GetProperty(conn, false, owner.Owner, property, xproto.GetPropertyTypeAny, 0, maxPropertyLength).Reply()
	if err != nil {
		return "", errors.Wrap(err, "failed to read xsettings property")
	}

	settings, err := ParseSettings(reply.Value)
	if err != nil {
		return "", err
	}

	name, ok := settings[IconThemeSetting]
	if !ok || name == "" {
		return "", errors.Wrapf(theme.ErrNotConfigured, "%s not set", IconThemeSetting)
	}
	return name, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to intern atom %s", name)
	}
	return reply.Atom, nil
}

// Close cleans up resources
func (d *Detector) Close() error {
	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}

// ParseSettings decodes the string valued entries of an _XSETTINGS_SETTINGS
// property. Integer and color entries are skipped.
func ParseSettings(data []byte) (map[string]string, error) {
	if len(data) < 12 {
		return nil, errors.Errorf("xsettings data too short: %d bytes", len(data))
	}

	var order binary.ByteOrder
	switch data[0] {
	case 0:
		order = binary.LittleEndian
	case 1:
		order = binary.BigEndian
	default:
		return nil, errors.Errorf("invalid xsettings byte order %d", data[0])
	}

	count := order.Uint32(data[8:12])
	settings := make(map[string]string)
	r := &reader{data: data, pos: 12, order: order}

	for i := uint32(0); i < count; i++ {
		kind, err := r.byte()
		if err != nil {
			return nil, err
		}
		if err := r.skip(1); err != nil {
			return nil, err
		}

		nameLen, err := r.uint16()
		if err != nil {
			return nil, err
		}
		name, err := r.padded(int(nameLen))
		if err != nil {
			return nil, err
		}

		// last-change serial
		if err := r.skip(4); err != nil {
			return nil, err
		}

		switch kind {
		case typeInteger:
			err = r.skip(4)
		case typeString:
			var valueLen uint32
			if valueLen, err = r.uint32(); err == nil {
				var value string
				if value, err = r.padded(int(valueLen)); err == nil {
					settings[name] = value
				}
			}
		case typeColor:
			err = r.skip(8)
		default:
			err = errors.Errorf("unknown xsettings type %d for %s", kind, name)
		}
		if err != nil {
			return nil, err
		}
	}

	return settings, nil
}

type reader struct {
	data  []byte
	pos   int
	order binary.ByteOrder
}

func (r *reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errors.Errorf("xsettings data truncated at offset %d", r.pos)
	}
	return nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

func (r *reader) byte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// padded reads n bytes and skips the padding up to a 4 byte boundary
func (r *reader) padded(n int) (string, error) {
	total := xgb.Pad(n)
	if err := r.need(total); err != nil {
		return "", err
	}
	s := string(r.data[r.pos : r.pos+n])
	r.pos += total
	return s, nil
}
