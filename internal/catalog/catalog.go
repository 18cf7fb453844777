// Package catalog turns parsed application records into the sorted,
// deduplicated snapshot that is printed for the launcher widget.
package catalog

import (
	"sort"
	"strings"

	"github.com/deskkit/applauncher/internal/models"
)

// Assembler builds catalogs for a fixed favorites keyword list
type Assembler struct {
	favorites []string
}

// NewAssembler creates an assembler. Keywords are matched lowercase.
func NewAssembler(favorites []string) *Assembler {
	keywords := make([]string, 0, len(favorites))
	for _, k := range favorites {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Assembler{favorites: keywords}
}

// Assemble sorts apps by name, drops adjacent duplicates, extracts favorites
// and applies the query to both lists. An empty query filters nothing.
// The input slice is not modified.
func (a *Assembler) Assemble(apps []models.Application, query string) *models.Catalog {
	sorted := make([]models.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	unique := Dedup(sorted)
	favorites := make([]models.Application, 0)
	for _, app := range unique {
		if a.IsFavorite(app.Name) {
			favorites = append(favorites, app)
		}
	}

	return &models.Catalog{
		Apps:      Filter(unique, query),
		Favorites: Filter(favorites, query),
	}
}

// IsFavorite reports whether the lowercase name contains any keyword
func (a *Assembler) IsFavorite(name string) bool {
	lower := strings.ToLower(name)
	for _, k := range a.favorites {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Dedup keeps the first of each run of equal names in a sorted slice
func Dedup(sorted []models.Application) []models.Application {
	result := make([]models.Application, 0, len(sorted))
	for i, app := range sorted {
		if i > 0 && app.Name == sorted[i-1].Name {
			continue
		}
		result = append(result, app)
	}
	return result
}

// Filter keeps apps whose lowercase name contains the lowercase query
func Filter(apps []models.Application, query string) []models.Application {
	if query == "" {
		return apps
	}

	q := strings.ToLower(query)
	result := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), q) {
			result = append(result, app)
		}
	}
	return result
}
