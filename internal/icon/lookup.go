package icon

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// FallbackTheme is searched after every inherited theme
const FallbackTheme = "hicolor"

// Extensions are the image formats an icon theme may ship, in lookup order
var Extensions = []string{"png", "svg", "xpm"}

// Lookup yields candidate image files for a theme icon name. Each entry is
// either an existing path or the error that prevented checking one.
type Lookup interface {
	Lookup(name string) iter.Seq2[string, error]
}

// ThemeLookup searches an icon theme, the themes it inherits, hicolor and
// the pixmap directories.
type ThemeLookup struct {
	fs         billy.Basic
	theme      string
	baseDirs   []string
	pixmapDirs []string

	chain []themeEntry
}

type themeEntry struct {
	name  string
	index *themeIndex
	err   error
}

// themeIndex is the part of index.theme needed for lookups
type themeIndex struct {
	dirs     []string
	inherits []string
	bases    []string // base directories holding a copy of the theme
}

// NewThemeLookup creates a lookup for theme. An empty theme searches hicolor only.
func NewThemeLookup(fs billy.Basic, theme string, baseDirs, pixmapDirs []string) *ThemeLookup {
	return &ThemeLookup{
		fs:         fs,
		theme:      theme,
		baseDirs:   baseDirs,
		pixmapDirs: pixmapDirs,
	}
}

// Theme returns the name of the theme searched first
func (l *ThemeLookup) Theme() string {
	if l.theme == "" {
		return FallbackTheme
	}
	return l.theme
}

// Lookup implements Lookup
func (l *ThemeLookup) Lookup(name string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if name == "" || strings.ContainsRune(name, '/') {
			return
		}

		for _, entry := range l.themeChain() {
			if entry.err != nil {
				if !yield("", entry.err) {
					return
				}
				continue
			}

			for _, dir := range entry.index.dirs {
				for _, base := range entry.index.bases {
					for _, ext := range Extensions {
						path := filepath.Join(base, entry.name, dir, name+"."+ext)
						if !l.emit(path, yield) {
							return
						}
					}
				}
			}
		}

		for _, dir := range l.pixmapDirs {
			for _, ext := range Extensions {
				if !l.emit(filepath.Join(dir, name+"."+ext), yield) {
					return
				}
			}
		}
	}
}

// emit yields path when it is an existing file. It returns false once the
// consumer stops the iteration.
func (l *ThemeLookup) emit(path string, yield func(string, error) bool) bool {
	ok, err := isFile(l.fs, path)
	if err != nil {
		return yield("", errors.Wrapf(err, "failed to stat %s", path))
	}
	if ok {
		return yield(path, nil)
	}
	return true
}

// themeChain resolves the theme and its parents breadth first, ending with
// hicolor. Themes that are not installed are left out.
func (l *ThemeLookup) themeChain() []themeEntry {
	if l.chain != nil {
		return l.chain
	}

	chain := []themeEntry{}
	seen := map[string]bool{}
	queue := []string{l.Theme()}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		index, err := l.loadIndex(name)
		if err != nil {
			chain = append(chain, themeEntry{name: name, err: err})
			continue
		}
		if index == nil {
			continue
		}

		chain = append(chain, themeEntry{name: name, index: index})
		queue = append(queue, index.inherits...)
	}

	if !seen[FallbackTheme] {
		if index, err := l.loadIndex(FallbackTheme); err != nil {
			chain = append(chain, themeEntry{name: FallbackTheme, err: err})
		} else if index != nil {
			chain = append(chain, themeEntry{name: FallbackTheme, index: index})
		}
	}

	l.chain = chain
	return chain
}

// loadIndex reads the first index.theme found for name. It returns nil
// without error when the theme is not installed.
func (l *ThemeLookup) loadIndex(name string) (*themeIndex, error) {
	var indexPath string
	var bases []string

	for _, base := range l.baseDirs {
		info, err := l.fs.Stat(filepath.Join(base, name))
		if err != nil || !info.IsDir() {
			continue
		}
		bases = append(bases, base)

		candidate := filepath.Join(base, name, "index.theme")
		if indexPath == "" {
			if ok, _ := isFile(l.fs, candidate); ok {
				indexPath = candidate
			}
		}
	}

	if indexPath == "" {
		return nil, nil
	}

	data, err := util.ReadFile(l.fs, indexPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", indexPath)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:      "=",
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", indexPath)
	}

	section, err := file.GetSection("Icon Theme")
	if err != nil {
		return nil, errors.Errorf("%s has no [Icon Theme] section", indexPath)
	}

	index := &themeIndex{bases: bases}
	index.dirs = append(index.dirs, section.Key("Directories").Strings(",")...)
	index.dirs = append(index.dirs, section.Key("ScaledDirectories").Strings(",")...)
	for _, parent := range section.Key("Inherits").Strings(",") {
		if parent != "" && parent != name {
			index.inherits = append(index.inherits, parent)
		}
	}

	return index, nil
}

func isFile(fs billy.Basic, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}
