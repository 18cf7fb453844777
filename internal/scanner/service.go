// Package scanner runs one catalog pass: it walks the application
// directories, parses every desktop entry and assembles the snapshot.
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deskkit/applauncher/internal/catalog"
	"github.com/deskkit/applauncher/internal/config"
	"github.com/deskkit/applauncher/internal/desktop"
	"github.com/deskkit/applauncher/internal/models"
	"github.com/deskkit/applauncher/internal/xdg"
)

// Skip is a desktop file that produced no application
type Skip struct {
	Path   string
	Reason string
}

// Stats describes the work done by one run
type Stats struct {
	StartedAt   time.Time
	Duration    time.Duration
	Roots       []string // Directories that were considered
	Directories int      // Roots that existed and were walked
	FilesSeen   int
	Skips       []Skip
}

// Result is the outcome of a run
type Result struct {
	RunID     string
	Query     string
	IconTheme string
	Catalog   *models.Catalog
	Stats     Stats
}

// Service scans desktop entries and builds catalogs
type Service struct {
	config    *config.Config
	fs        billy.Filesystem
	parser    *desktop.Parser
	assembler *catalog.Assembler
	logger    zerolog.Logger
}

// NewService creates a scanner over fs
func NewService(cfg *config.Config, fs billy.Filesystem, parser *desktop.Parser, logger zerolog.Logger) *Service {
	return &Service{
		config:    cfg,
		fs:        fs,
		parser:    parser,
		assembler: catalog.NewAssembler(cfg.Catalog.Favorites),
		logger:    logger,
	}
}

// Run performs a full scan and returns the assembled catalog. It fails only
// when ctx is cancelled; unreadable directories and files are skipped.
func (s *Service) Run(ctx context.Context, query string) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		Query:     query,
		IconTheme: s.config.Icons.Theme,
	}
	stats := &result.Stats
	stats.StartedAt = time.Now()
	stats.Roots = xdg.ApplicationDirs(s.config)

	logger := s.logger.With().Str("run", result.RunID).Logger()
	logger.Debug().Strs("roots", stats.Roots).Str("query", query).Msg("starting scan")

	var apps []models.Application
	for _, root := range stats.Roots {
		found, err := s.scanRoot(ctx, root, stats, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "scan of %s interrupted", root)
		}
		apps = append(apps, found...)
	}

	result.Catalog = s.assembler.Assemble(apps, query)
	stats.Duration = time.Since(stats.StartedAt)

	logger.Info().
		Int("directories", stats.Directories).
		Int("files", stats.FilesSeen).
		Int("apps", len(result.Catalog.Apps)).
		Int("favorites", len(result.Catalog.Favorites)).
		Int("skipped", len(stats.Skips)).
		Dur("duration", stats.Duration).
		Msg("scan complete")

	return result, nil
}

// maxRootLinks bounds the symlink chain followed for a scan root
const maxRootLinks = 8

// resolveRoot follows symlinks at root itself so that profile style
// directories are walked. Links below the root are not followed.
func (s *Service) resolveRoot(root string) (string, error) {
	current := root
	for i := 0; i < maxRootLinks; i++ {
		info, err := s.fs.Lstat(current)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}

		target, err := s.fs.Readlink(current)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read link %s", current)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = target
	}
	return "", errors.Errorf("too many levels of symbolic links at %s", root)
}

// scanRoot walks one directory tree in lexical order
func (s *Service) scanRoot(ctx context.Context, root string, stats *Stats, logger zerolog.Logger) ([]models.Application, error) {
	var apps []models.Application

	walkRoot, err := s.resolveRoot(root)
	if err != nil {
		logger.Debug().Err(err).Str("path", root).Msg("skipping unreadable root")
		return nil, nil
	}
	if walkRoot != root {
		logger.Debug().Str("root", root).Str("target", walkRoot).Msg("following symlinked root")
	}

	err = util.Walk(s.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == walkRoot && os.IsNotExist(err) {
				return nil
			}
			logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}

		if info.IsDir() {
			if path == walkRoot {
				stats.Directories++
			}
			return nil
		}

		if !desktop.IsDesktopFile(path) {
			return nil
		}
		stats.FilesSeen++

		app, err := s.parser.Parse(path)
		if err != nil {
			reason := desktop.SkipReason(err)
			stats.Skips = append(stats.Skips, Skip{Path: path, Reason: reason})
			logger.Debug().Str("file", filepath.Base(path)).Str("reason", reason).Msg("skipping desktop entry")
			return nil
		}

		apps = append(apps, *app)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// ScanRun converts the result into a history record
func (r *Result) ScanRun() *models.ScanRun {
	run := &models.ScanRun{
		RunID:         r.RunID,
		StartedAt:     r.Stats.StartedAt,
		DurationMs:    r.Stats.Duration.Milliseconds(),
		Query:         r.Query,
		IconTheme:     r.IconTheme,
		Directories:   r.Stats.Directories,
		FilesSeen:     r.Stats.FilesSeen,
		AppCount:      len(r.Catalog.Apps),
		FavoriteCount: len(r.Catalog.Favorites),
		SkipCount:     len(r.Stats.Skips),
	}

	for _, skip := range r.Stats.Skips {
		run.Skips = append(run.Skips, models.ScanSkip{
			Path:   skip.Path,
			Reason: skip.Reason,
		})
	}

	return run
}
