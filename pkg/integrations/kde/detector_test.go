package kde

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"

	"github.com/deskkit/applauncher/pkg/theme"
)

const kdeglobals = `[General]
ColorScheme=BreezeDark

[Colors:Button]
BackgroundNormal=49,54,59

[Icons]
Theme=breeze-dark

[KDE]
LookAndFeelPackage=org.kde.breezedark.desktop
`

func TestIconTheme(t *testing.T) {
	fs := memfs.New()
	if err := util.WriteFile(fs, "/home/u/.config/kdeglobals", []byte(kdeglobals), 0644); err != nil {
		t.Fatal(err)
	}

	detector := NewDetector(fs, "/home/u/.config")
	if !detector.IsAvailable() {
		t.Error("IsAvailable() = false")
	}
	if detector.Source() != "kde" {
		t.Errorf("Source() = %s, want kde", detector.Source())
	}

	name, err := detector.IconTheme(context.Background())
	if err != nil {
		t.Fatalf("IconTheme() error: %v", err)
	}
	if name != "breeze-dark" {
		t.Errorf("IconTheme() = %s, want breeze-dark", name)
	}
}

func TestIconThemeNotConfigured(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file", ""},
		{"no icons section", "[General]\nColorScheme=Breeze\n"},
		{"empty theme", "[Icons]\nTheme=\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			if tt.content != "" {
				if err := util.WriteFile(fs, "/home/u/.config/kdeglobals", []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			_, err := NewDetector(fs, "/home/u/.config").IconTheme(context.Background())
			if !errors.Is(err, theme.ErrNotConfigured) {
				t.Errorf("IconTheme() error = %v, want ErrNotConfigured", err)
			}
		})
	}
}
