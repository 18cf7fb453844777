// Package desktop parses freedesktop desktop entry files into catalog
// applications.
package desktop

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/deskkit/applauncher/internal/models"
)

const (
	// Extension marks application metadata files
	Extension = ".desktop"

	// EntrySection is the group holding the keys read here
	EntrySection = "Desktop Entry"
)

// Skip reasons. A parse returning one of these produced no application and
// the walk moves on to the next file.
var (
	ErrUnreadable     = errors.New("unreadable")
	ErrMalformed      = errors.New("malformed")
	ErrNoEntrySection = errors.New("no desktop entry section")
	ErrHidden         = errors.New("hidden")
	ErrMissingName    = errors.New("missing name")
	ErrMissingExec    = errors.New("missing exec")
)

// IconResolver turns a raw Icon value into an image path
type IconResolver interface {
	Resolve(raw string) string
}

// Parser reads desktop entries from a filesystem
type Parser struct {
	fs        billy.Basic
	icons     IconResolver
	sanitizer *Sanitizer
}

// NewParser creates a parser. A nil sanitizer strips the standard field codes.
func NewParser(fs billy.Basic, icons IconResolver, sanitizer *Sanitizer) *Parser {
	if sanitizer == nil {
		sanitizer = NewSanitizer(nil)
	}
	return &Parser{
		fs:        fs,
		icons:     icons,
		sanitizer: sanitizer,
	}
}

// IsDesktopFile reports whether path names application metadata
func IsDesktopFile(path string) bool {
	return filepath.Ext(path) == Extension
}

// Parse reads one desktop file. Any returned error is a skip reason that
// wraps one of the Err* values.
func (p *Parser) Parse(path string) (*models.Application, error) {
	data, err := util.ReadFile(p.fs, path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadable, "%s: %v", path, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      "=",
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		PreserveSurroundedQuote: true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: %v", path, err)
	}

	section, err := file.GetSection(EntrySection)
	if err != nil {
		return nil, errors.Wrap(ErrNoEntrySection, path)
	}

	if section.Key("NoDisplay").Value() == "true" {
		return nil, errors.Wrap(ErrHidden, path)
	}

	name := strings.TrimSpace(section.Key("Name").Value())
	if name == "" {
		return nil, errors.Wrap(ErrMissingName, path)
	}

	rawIcon := strings.TrimSpace(section.Key("Icon").Value())

	if !section.HasKey("Exec") {
		return nil, errors.Wrap(ErrMissingExec, path)
	}
	exec := p.sanitizer.Sanitize(section.Key("Exec").Value())
	if exec == "" {
		return nil, errors.Wrapf(ErrMissingExec, "%s: empty after removing field codes", path)
	}

	terminal := section.Key("Terminal").Value() == "true"

	icon := ""
	if p.icons != nil {
		icon = p.icons.Resolve(rawIcon)
	}

	return &models.Application{
		Name:     name,
		Icon:     icon,
		Exec:     exec,
		Terminal: terminal,
		Source:   path,
	}, nil
}

// SkipReason returns the short reason behind a Parse error
func SkipReason(err error) string {
	switch errors.Cause(err) {
	case ErrUnreadable:
		return "unreadable"
	case ErrMalformed:
		return "malformed"
	case ErrNoEntrySection:
		return "no-entry-section"
	case ErrHidden:
		return "hidden"
	case ErrMissingName:
		return "missing-name"
	case ErrMissingExec:
		return "missing-exec"
	default:
		return "error"
	}
}
