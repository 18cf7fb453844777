// Package xdg computes the XDG directories scanned for desktop entries and
// icon themes.
package xdg

import (
	"path/filepath"

	"github.com/deskkit/applauncher/internal/config"
)

// PixmapsDir holds unthemed application icons
const PixmapsDir = "/usr/share/pixmaps"

// ApplicationDirs returns the directories that may hold desktop entries, user
// data directory first. None of them is required to exist.
func ApplicationDirs(cfg *config.Config) []string {
	dirs := make([]string, 0, len(cfg.Paths.DataDirs)+1)
	dirs = append(dirs, filepath.Join(cfg.DataHomeDir(), "applications"))

	dataDirs := cfg.Paths.DataDirs
	if len(dataDirs) == 0 {
		dataDirs = config.SplitPathList(config.DefaultDataDirs)
	}

	for _, dir := range dataDirs {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	return dirs
}

// IconBaseDirs returns the icon theme base directories in lookup order
func IconBaseDirs(cfg *config.Config) []string {
	dirs := []string{
		filepath.Join(cfg.Paths.Home, ".icons"),
		filepath.Join(cfg.DataHomeDir(), "icons"),
	}

	dataDirs := cfg.Paths.DataDirs
	if len(dataDirs) == 0 {
		dataDirs = config.SplitPathList(config.DefaultDataDirs)
	}

	for _, dir := range dataDirs {
		dirs = append(dirs, filepath.Join(dir, "icons"))
	}

	return dedupe(dirs)
}

// PixmapDirs returns the directories searched for unthemed icons
func PixmapDirs() []string {
	return []string{PixmapsDir}
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, dir := range dirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}
