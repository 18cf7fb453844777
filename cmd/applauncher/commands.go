package main

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/deskkit/applauncher/internal/xdg"
	"github.com/deskkit/applauncher/pkg/detector"
)

// sourceStatus is implemented by detectors that chain several sources
type sourceStatus interface {
	LastSource() string
	GetStatus() string
}

// runDirs shows the scanned directories and how the icon theme was chosen
func runDirs(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Application directories:")
	for _, dir := range xdg.ApplicationDirs(cfg) {
		fmt.Fprintf(out, "  %s%s\n", dir, missingMarker(dir))
	}

	fmt.Fprintln(out, "\nIcon base directories:")
	for _, dir := range append(xdg.IconBaseDirs(cfg), xdg.PixmapDirs()...) {
		fmt.Fprintf(out, "  %s%s\n", dir, missingMarker(dir))
	}

	fmt.Fprintf(out, "\nDisplay server: %s\n", detector.DetectDisplayServer())

	configured := cfg.Icons.Theme != ""
	det := detector.New(osfs.New("/"), cfg, *logger)
	defer det.Close()

	name := detector.ResolveTheme(cmd.Context(), cfg, det, *logger)
	status, chained := det.(sourceStatus)

	source := "fallback"
	switch {
	case configured:
		source = "configured"
	case chained && status.LastSource() != "":
		source = status.LastSource()
	}
	fmt.Fprintf(out, "Icon theme: %s (%s)\n", name, source)

	if chained {
		fmt.Fprintf(out, "\n%s", status.GetStatus())
	}
	return nil
}

// runResolveIcons resolves names or paths the way desktop entries are resolved
func runResolveIcons(cmd *cobra.Command, names []string) error {
	p := newPipeline(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Theme: %s\n", p.theme)
	for _, name := range names {
		path := p.resolver.Resolve(name)
		if path == "" {
			path = "(not found)"
		}
		fmt.Fprintf(out, "%s\t%s\n", name, path)
	}
	return nil
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s version %s\n", appName, version)
	fmt.Fprintf(out, "  commit: %s\n", commit)
	fmt.Fprintf(out, "  built:  %s\n", date)
}

func missingMarker(dir string) string {
	if _, err := os.Stat(dir); err != nil {
		return " (missing)"
	}
	return ""
}
