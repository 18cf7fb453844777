package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"

	"github.com/deskkit/applauncher/internal/models"
	"github.com/deskkit/applauncher/pkg/utils"
)

const (
	nameWidth = 30
	execWidth = 40
)

// Colors
var (
	accent = lipgloss.Color("#7C3AED")
	muted  = lipgloss.Color("#6B7280")
	warn   = lipgloss.Color("#F59E0B")
)

// Reporter formats catalogs and scan history
type Reporter struct {
	header lipgloss.Style
	title  lipgloss.Style
	dim    lipgloss.Style
	mark   lipgloss.Style
}

// New creates a reporter. With noColor set the text output carries no styling.
func New(noColor bool) *Reporter {
	if noColor {
		plain := lipgloss.NewStyle()
		return &Reporter{header: plain, title: plain, dim: plain, mark: plain}
	}
	return &Reporter{
		header: lipgloss.NewStyle().Bold(true).Foreground(accent),
		title:  lipgloss.NewStyle().Bold(true),
		dim:    lipgloss.NewStyle().Foreground(muted),
		mark:   lipgloss.NewStyle().Foreground(warn),
	}
}

// FormatCatalogJSON renders the catalog as one compact JSON line without a
// trailing newline
func (r *Reporter) FormatCatalogJSON(catalog *models.Catalog) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(catalog); err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatCatalogText formats the catalog as a human-readable table
func (r *Reporter) FormatCatalogText(catalog *models.Catalog) string {
	var b strings.Builder

	b.WriteString(r.title.Render(fmt.Sprintf("Applications (%d)", len(catalog.Apps))))
	b.WriteString("\n\n")

	if len(catalog.Apps) == 0 {
		b.WriteString("No applications found.\n")
		return b.String()
	}

	favorites := make(map[string]bool, len(catalog.Favorites))
	for _, fav := range catalog.Favorites {
		favorites[fav.Name] = true
	}

	b.WriteString(r.header.Render(fmt.Sprintf("  %-*s %-*s %-4s %s", nameWidth, "Name", execWidth, "Command", "Term", "Icon")))
	b.WriteString("\n")
	b.WriteString(r.dim.Render(strings.Repeat("-", 2+nameWidth+1+execWidth+1+4+1+20)))
	b.WriteString("\n")

	for _, app := range catalog.Apps {
		star := "  "
		if favorites[app.Name] {
			star = r.mark.Render("*") + " "
		}

		term := ""
		if app.Terminal {
			term = "yes"
		}

		iconPath := app.Icon
		if iconPath == "" {
			iconPath = r.dim.Render("(none)")
		}

		fmt.Fprintf(&b, "%s%s %s %-4s %s\n",
			star,
			pad(truncate(app.Name, nameWidth), nameWidth),
			pad(truncate(app.Exec, execWidth), execWidth),
			term,
			iconPath)
	}

	fmt.Fprintf(&b, "\n%d favorites\n", len(catalog.Favorites))
	return b.String()
}

// FormatHistoryText formats recorded scan runs, newest first as given
func (r *Reporter) FormatHistoryText(runs []models.ScanRun, now time.Time) string {
	var b strings.Builder

	b.WriteString(r.title.Render("Scan History"))
	b.WriteString("\n\n")

	if len(runs) == 0 {
		b.WriteString("No scans recorded.\n")
		return b.String()
	}

	b.WriteString(r.header.Render(fmt.Sprintf("%-10s %-9s %8s %6s %5s %5s %-12s %s",
		"Run", "When", "Duration", "Files", "Apps", "Skips", "Theme", "Query")))
	b.WriteString("\n")

	for _, run := range runs {
		fmt.Fprintf(&b, "%-10s %-9s %8s %6d %5d %5d %-12s %s\n",
			truncate(run.RunID, 8),
			utils.FormatAge(run.StartedAt, now),
			utils.FormatMillis(run.DurationMs),
			run.FilesSeen,
			run.AppCount,
			run.SkipCount,
			truncate(run.IconTheme, 12),
			run.Query)

		for _, skip := range run.Skips {
			b.WriteString(r.dim.Render(fmt.Sprintf("    %-16s %s", skip.Reason, skip.Path)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// truncate truncates a string to the specified display width
func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "...")
}

// pad right-pads s with spaces to the given display width
func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
