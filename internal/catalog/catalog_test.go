package catalog

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/deskkit/applauncher/internal/config"
	"github.com/deskkit/applauncher/internal/models"
)

func names(apps []models.Application) []string {
	result := make([]string, len(apps))
	for i, app := range apps {
		result[i] = app.Name
	}
	return result
}

func TestAssembleSortsAndDedups(t *testing.T) {
	apps := []models.Application{
		{Name: "Zed", Exec: "zed"},
		{Name: "Browser", Exec: "browser --first", Source: "/a/browser.desktop"},
		{Name: "Alacritty", Exec: "alacritty"},
		{Name: "Browser", Exec: "browser --second", Source: "/b/browser.desktop"},
		{Name: "alacritty", Exec: "alacritty-lower"},
	}

	c := NewAssembler(nil).Assemble(apps, "")

	expected := []string{"Alacritty", "Browser", "Zed", "alacritty"}
	if !reflect.DeepEqual(names(c.Apps), expected) {
		t.Errorf("Apps = %v, want %v", names(c.Apps), expected)
	}
	if c.Apps[1].Exec != "browser --first" {
		t.Errorf("duplicate kept %q, want the first in sort order", c.Apps[1].Exec)
	}
	if apps[0].Name != "Zed" {
		t.Error("Assemble modified its input")
	}
}

func TestAssembleHiddenDuplicate(t *testing.T) {
	// the NoDisplay copy of Browser never reaches the assembler
	apps := []models.Application{
		{Name: "Browser", Exec: "browser", Icon: "/usr/share/icons/browser.svg"},
	}

	c := NewAssembler(config.DefaultFavorites).Assemble(apps, "")
	if len(c.Apps) != 1 || c.Apps[0].Exec != "browser" {
		t.Errorf("Apps = %+v, want the single visible Browser", c.Apps)
	}
	if len(c.Favorites) != 0 {
		t.Errorf("Favorites = %+v, want none", c.Favorites)
	}
}

func TestAssembleFavorites(t *testing.T) {
	apps := []models.Application{
		{Name: "Steam", Exec: "steam"},
		{Name: "Neovim", Exec: "nvim"},
		{Name: "Zen Browser", Exec: "zen"},
		{Name: "Files", Exec: "nautilus"},
		{Name: "OBS Studio", Exec: "obs"},
		{Name: "Discord Canary", Exec: "discord-canary"},
	}

	c := NewAssembler(config.DefaultFavorites).Assemble(apps, "")

	expected := []string{"Discord Canary", "Neovim", "OBS Studio", "Steam", "Zen Browser"}
	if !reflect.DeepEqual(names(c.Favorites), expected) {
		t.Errorf("Favorites = %v, want %v", names(c.Favorites), expected)
	}
	if len(c.Apps) != 6 {
		t.Errorf("Apps has %d entries, want 6", len(c.Apps))
	}
}

func TestAssembleQuery(t *testing.T) {
	apps := []models.Application{
		{Name: "Terminal", Exec: "kgx", Terminal: false},
		{Name: "Steam", Exec: "steam"},
		{Name: "Files", Exec: "nautilus"},
		{Name: "Alacritty Terminal", Exec: "alacritty"},
	}

	c := NewAssembler(config.DefaultFavorites).Assemble(apps, "term")

	expected := []string{"Alacritty Terminal", "Terminal"}
	if !reflect.DeepEqual(names(c.Apps), expected) {
		t.Errorf("Apps = %v, want %v", names(c.Apps), expected)
	}
	if len(c.Favorites) != 0 {
		t.Errorf("Favorites = %v, want none", names(c.Favorites))
	}

	c = NewAssembler(config.DefaultFavorites).Assemble(apps, "STE")
	if !reflect.DeepEqual(names(c.Apps), []string{"Steam"}) {
		t.Errorf("Apps = %v, want [Steam]", names(c.Apps))
	}
	if !reflect.DeepEqual(names(c.Favorites), []string{"Steam"}) {
		t.Errorf("Favorites = %v, want [Steam]", names(c.Favorites))
	}
}

func TestAssembleNeverNil(t *testing.T) {
	tests := []struct {
		name  string
		apps  []models.Application
		query string
	}{
		{"nil input", nil, ""},
		{"no match", []models.Application{{Name: "Files", Exec: "nautilus"}}, "zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAssembler(nil).Assemble(tt.apps, tt.query)
			if c.Apps == nil || c.Favorites == nil {
				t.Errorf("Assemble() = %+v, want non-nil lists", c)
			}
		})
	}
}

func TestAssembleInvariants(t *testing.T) {
	apps := []models.Application{
		{Name: "b", Exec: "b"}, {Name: "a", Exec: "a"}, {Name: "c steam", Exec: "c"},
		{Name: "a", Exec: "a2"}, {Name: "B", Exec: "B"}, {Name: "steam", Exec: "s"},
		{Name: "a", Exec: "a3"},
	}

	c := NewAssembler(config.DefaultFavorites).Assemble(apps, "")

	n := names(c.Apps)
	if !sort.StringsAreSorted(n) {
		t.Errorf("Apps not sorted: %v", n)
	}
	seen := map[string]bool{}
	for _, name := range n {
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true
	}
	for _, fav := range c.Favorites {
		if !seen[fav.Name] {
			t.Errorf("favorite %q missing from apps", fav.Name)
		}
		if !strings.Contains(strings.ToLower(fav.Name), "steam") {
			t.Errorf("favorite %q matches no keyword", fav.Name)
		}
	}
}

func TestNewAssemblerNormalizesKeywords(t *testing.T) {
	a := NewAssembler([]string{"  Steam ", "", "OBS"})

	tests := []struct {
		name     string
		expected bool
	}{
		{"steam", true},
		{"OBS Studio", true},
		{"Files", false},
	}

	for _, tt := range tests {
		if result := a.IsFavorite(tt.name); result != tt.expected {
			t.Errorf("IsFavorite(%q) = %v, want %v", tt.name, result, tt.expected)
		}
	}
}
