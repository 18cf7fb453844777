// Package icon resolves desktop entry Icon values to image files on disk.
//
// Resolution runs in tiers and the first success wins:
//
//  1. an empty reference goes straight to the fallback icons
//  2. an absolute path that exists is used as is
//  3. an absolute path that does not exist is retried once as a theme name
//     built from its file name without extension
//  4. the theme lookup is scanned for the best scoring candidate
//  5. conventional high resolution locations are probed
//  6. generic fallback icons are probed, otherwise the result is empty
package icon

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/deskkit/applauncher/internal/config"
)

// legacyExtensions are stripped from bare names before a theme lookup
var legacyExtensions = []string{".png", ".svg", ".xpm"}

// Options holds the ordered lists and bounds the resolver works from
type Options struct {
	MaxCandidates int      // Lookup entries inspected per name
	Templates     []string // Paths with {name} and {home} placeholders
	Fallbacks     []string // Generic icons, first existing wins
	Home          string   // Substituted for {home}
}

// OptionsFromConfig builds resolver options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxCandidates: cfg.Icons.MaxCandidates,
		Templates:     cfg.Icons.Templates,
		Fallbacks:     cfg.Icons.Fallbacks,
		Home:          cfg.Paths.Home,
	}
}

// Resolver implements the tiered icon resolution
type Resolver struct {
	fs     billy.Basic
	lookup Lookup
	opts   Options
	logger zerolog.Logger
}

// NewResolver creates a resolver. A nil lookup disables the theme tier.
func NewResolver(fs billy.Basic, lookup Lookup, opts Options, logger zerolog.Logger) *Resolver {
	if opts.MaxCandidates < 1 {
		opts.MaxCandidates = config.DefaultMaxIconCandidates
	}
	if opts.Home == "" {
		opts.Home = config.DefaultHome
	}
	return &Resolver{
		fs:     fs,
		lookup: lookup,
		opts:   opts,
		logger: logger,
	}
}

// Resolve returns the best image path for raw, or an empty string
func (r *Resolver) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return r.fallback()
	}

	name := raw
	if filepath.IsAbs(raw) {
		if ok, _ := isFile(r.fs, raw); ok {
			return raw
		}
		// Only this single retry exists: a base name never starts with "/"
		name = bareName(raw)
		r.logger.Debug().Str("icon", raw).Str("name", name).Msg("icon path missing, retrying as theme name")
	}

	return r.resolveName(name)
}

// resolveName runs the theme, constructed and fallback tiers for a bare name
func (r *Resolver) resolveName(name string) string {
	name = trimLegacyExtension(name)
	if name == "" {
		return r.fallback()
	}

	if path, ok := r.bestCandidate(name); ok {
		return path
	}

	if path, ok := r.constructed(name); ok {
		return path
	}

	return r.fallback()
}

// bestCandidate scans at most MaxCandidates lookup entries and keeps the first
// highest scoring path. Failed entries are discarded but still count.
func (r *Resolver) bestCandidate(name string) (string, bool) {
	if r.lookup == nil {
		return "", false
	}

	best := ""
	bestScore := -1
	inspected := 0

	for path, err := range r.lookup.Lookup(name) {
		if inspected >= r.opts.MaxCandidates {
			break
		}
		inspected++

		if err != nil {
			r.logger.Debug().Err(err).Str("name", name).Msg("discarding icon candidate")
			continue
		}

		score := Score(path)
		if score > bestScore {
			best, bestScore = path, score
		}
		if score >= MaxScore {
			break
		}
	}

	return best, best != ""
}

// constructed probes the high resolution templates in order
func (r *Resolver) constructed(name string) (string, bool) {
	replacer := strings.NewReplacer("{name}", name, "{home}", r.opts.Home)
	for _, tmpl := range r.opts.Templates {
		path := replacer.Replace(tmpl)
		if ok, _ := isFile(r.fs, path); ok {
			return path, true
		}
	}
	return "", false
}

// fallback returns the first generic icon present on disk
func (r *Resolver) fallback() string {
	for _, path := range r.opts.Fallbacks {
		if ok, _ := isFile(r.fs, path); ok {
			return path
		}
	}
	return ""
}

// bareName returns the file name of path without its extension
func bareName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func trimLegacyExtension(name string) string {
	for _, ext := range legacyExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
