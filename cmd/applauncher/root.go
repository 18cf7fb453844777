package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deskkit/applauncher/internal/config"
	"github.com/deskkit/applauncher/internal/database"
	"github.com/deskkit/applauncher/internal/desktop"
	"github.com/deskkit/applauncher/internal/icon"
	"github.com/deskkit/applauncher/internal/logging"
	"github.com/deskkit/applauncher/internal/reporter"
	"github.com/deskkit/applauncher/internal/scanner"
	"github.com/deskkit/applauncher/internal/xdg"
	"github.com/deskkit/applauncher/pkg/detector"
)

var (
	configPath string
	logLevel   string
	logFile    string
	iconTheme  string
	textOutput bool
	record     bool
	noColor    bool

	// tool modes; the positional argument is always a query
	showDirs     bool
	resolveIcons []string
	showHistory  bool
	historyLimit int
	historyRun   string
	clearHistory bool
	showVersion  bool

	cfg    *config.Config
	logger *zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName + " [query]",
	Short: "Print the desktop application catalog as one JSON line",
	Long: `applauncher scans the XDG application directories for desktop entries,
resolves every icon to an image file and prints a single JSON snapshot
with all applications and favorites for the launcher widget.

An optional query keeps only entries whose name contains it, ignoring case.
The query is never interpreted as a command; the diagnostic tools are flags.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
	// no subcommands: "help" or "completion" typed into the search is a query
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/applauncher/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "also write logs to this rotated file")
	flags.StringVar(&iconTheme, "icon-theme", "", "icon theme to search first instead of the detected one")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	local := rootCmd.Flags()
	local.BoolVar(&textOutput, "text", false, "print a human-readable table instead of JSON")
	local.BoolVar(&record, "record", false, "record the run in the scan history")

	local.BoolVar(&showDirs, "dirs", false, "show the directories scanned for applications and icons")
	local.StringArrayVar(&resolveIcons, "resolve-icon", nil, "resolve an icon name or path (repeatable)")
	local.BoolVar(&showHistory, "history", false, "show recorded scan runs and the files they skipped")
	local.IntVar(&historyLimit, "history-limit", 10, "number of runs --history shows, 0 for all")
	local.StringVar(&historyRun, "history-run", "", "show one recorded run by id")
	local.BoolVar(&clearHistory, "clear-history", false, "remove all recorded scan runs")
	local.BoolVar(&showVersion, "version", false, "show version information")
}

// runRoot prints the catalog unless a tool flag selects another mode
func runRoot(cmd *cobra.Command, args []string) error {
	modes := map[string]bool{
		"--dirs":          showDirs,
		"--resolve-icon":  len(resolveIcons) > 0,
		"--history":       showHistory,
		"--history-run":   historyRun != "",
		"--clear-history": clearHistory,
		"--version":       showVersion,
	}

	var selected []string
	for name, set := range modes {
		if set {
			selected = append(selected, name)
		}
	}
	sort.Strings(selected)

	switch {
	case len(selected) == 0:
		return runCatalog(cmd, args)
	case len(selected) > 1:
		return errors.Errorf("flags %s cannot be combined", strings.Join(selected, ", "))
	case len(args) > 0:
		return errors.Errorf("%s does not take a query", selected[0])
	}

	switch {
	case showDirs:
		return runDirs(cmd)
	case len(resolveIcons) > 0:
		return runResolveIcons(cmd, resolveIcons)
	case showHistory:
		return runHistory(cmd)
	case historyRun != "":
		return runHistoryRun(cmd, historyRun)
	case clearHistory:
		return runClearHistory(cmd)
	default:
		printVersion(cmd)
		return nil
	}
}

// setup loads the configuration and builds the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if logFile != "" {
		loaded.Log.File = logFile
	}
	if iconTheme != "" {
		loaded.Icons.Theme = iconTheme
	}
	if record {
		loaded.History.Enabled = true
	}
	if noColor {
		loaded.Log.NoColor = true
	}

	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	cfg = loaded
	logger = logging.NewLogger(logging.FromConfig(cfg), os.Stderr)
	return nil
}

// pipeline wires the filesystem, icon resolution and parsing for one run
type pipeline struct {
	fs       billy.Filesystem
	theme    string
	resolver *icon.Resolver
	parser   *desktop.Parser
}

func newPipeline(cmd *cobra.Command) *pipeline {
	fs := osfs.New("/")

	det := detector.New(fs, cfg, *logger)
	theme := detector.ResolveTheme(cmd.Context(), cfg, det, *logger)
	if err := det.Close(); err != nil {
		logger.Debug().Err(err).Msg("failed to close theme detector")
	}
	cfg.Icons.Theme = theme
	logger.Debug().Str("theme", theme).Msg("using icon theme")

	lookup := icon.NewThemeLookup(fs, theme, xdg.IconBaseDirs(cfg), xdg.PixmapDirs())
	resolver := icon.NewResolver(fs, lookup, icon.OptionsFromConfig(cfg), *logger)

	return &pipeline{
		fs:       fs,
		theme:    theme,
		resolver: resolver,
		parser:   desktop.NewParser(fs, resolver, desktop.NewSanitizer(cfg.Catalog.FieldCodes)),
	}
}

func runCatalog(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	p := newPipeline(cmd)
	service := scanner.NewService(cfg, p.fs, p.parser, *logger)

	result, err := service.Run(cmd.Context(), query)
	if err != nil {
		return err
	}

	rep := reporter.New(cfg.Log.NoColor)
	if textOutput {
		fmt.Fprint(cmd.OutOrStdout(), rep.FormatCatalogText(result.Catalog))
	} else {
		output, err := rep.FormatCatalogJSON(result.Catalog)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
	}

	if cfg.History.Enabled {
		recordRun(result)
	}

	return nil
}

// recordRun stores the run summary. Failures only produce a warning.
func recordRun(result *scanner.Result) {
	start := time.Now()

	db, err := database.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.HistoryPath()).Msg("scan history unavailable")
		return
	}
	defer db.Close()

	if err := database.NewRepository(db).CreateRun(result.ScanRun()); err != nil {
		logger.Warn().Err(err).Str("run", result.RunID).Msg("failed to record scan")
		return
	}

	logger.Debug().Str("run", result.RunID).Dur("took", time.Since(start)).Msg("scan recorded")
}
