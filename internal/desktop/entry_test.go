package desktop

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

type stubResolver struct {
	resolved map[string]string
	calls    []string
}

func (s *stubResolver) Resolve(raw string) string {
	s.calls = append(s.calls, raw)
	return s.resolved[raw]
}

func writeFile(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	if err := util.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestParse(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/apps/test.desktop", `[Desktop Entry]
Type=Application
Name=Test App
Exec=/bin/test %F
Icon=
Terminal=true
`)

	icons := &stubResolver{}
	parser := NewParser(fs, icons, nil)

	app, err := parser.Parse("/apps/test.desktop")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if app.Name != "Test App" {
		t.Errorf("Name = %q, want %q", app.Name, "Test App")
	}
	if app.Exec != "/bin/test" {
		t.Errorf("Exec = %q, want %q", app.Exec, "/bin/test")
	}
	if !app.Terminal {
		t.Error("Terminal = false, want true")
	}
	if app.Icon != "" {
		t.Errorf("Icon = %q, want empty", app.Icon)
	}
	if app.Source != "/apps/test.desktop" {
		t.Errorf("Source = %q", app.Source)
	}
	if len(icons.calls) != 1 || icons.calls[0] != "" {
		t.Errorf("resolver calls = %q, want one empty reference", icons.calls)
	}
}

func TestParseResolvesIcon(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/apps/firefox.desktop", `[Desktop Entry]
Name=Firefox
Exec=firefox %u
Icon=firefox

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window %u
`)

	icons := &stubResolver{resolved: map[string]string{
		"firefox": "/usr/share/icons/hicolor/scalable/apps/firefox.svg",
	}}
	app, err := NewParser(fs, icons, nil).Parse("/apps/firefox.desktop")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if app.Icon != "/usr/share/icons/hicolor/scalable/apps/firefox.svg" {
		t.Errorf("Icon = %q", app.Icon)
	}
	if app.Exec != "firefox" {
		t.Errorf("Exec = %q, want firefox", app.Exec)
	}
	if app.Terminal {
		t.Error("Terminal = true, want false by default")
	}
}

func TestParseKeepsValueText(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/apps/quoted.desktop", `# comment line
[Desktop Entry]
Name=Quoted ; not a comment
Exec="/opt/My App/run" --flag=a:b %U
Categories=Utility;Development;
`)

	app, err := NewParser(fs, nil, nil).Parse("/apps/quoted.desktop")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if app.Name != "Quoted ; not a comment" {
		t.Errorf("Name = %q", app.Name)
	}
	if app.Exec != `"/opt/My App/run" --flag=a:b` {
		t.Errorf("Exec = %q", app.Exec)
	}
}

func TestParseSkips(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		reason  string
	}{
		{
			name:    "Hidden",
			content: "[Desktop Entry]\nName=Browser\nExec=browser\nNoDisplay=true\n",
			want:    ErrHidden,
			reason:  "hidden",
		},
		{
			name:    "Missing name",
			content: "[Desktop Entry]\nExec=browser\n",
			want:    ErrMissingName,
			reason:  "missing-name",
		},
		{
			name:    "Empty name",
			content: "[Desktop Entry]\nName=\nExec=browser\n",
			want:    ErrMissingName,
			reason:  "missing-name",
		},
		{
			name:    "Missing exec",
			content: "[Desktop Entry]\nName=Browser\n",
			want:    ErrMissingExec,
			reason:  "missing-exec",
		},
		{
			name:    "Exec with only field codes",
			content: "[Desktop Entry]\nName=Browser\nExec=%U\n",
			want:    ErrMissingExec,
			reason:  "missing-exec",
		},
		{
			name:    "No entry section",
			content: "[Desktop Action open]\nName=Browser\nExec=browser\n",
			want:    ErrNoEntrySection,
			reason:  "no-entry-section",
		},
		{
			name:    "Unterminated section header",
			content: "[Desktop Entry\nName=Browser\nExec=browser\n",
			want:    ErrMalformed,
			reason:  "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			writeFile(t, fs, "/apps/entry.desktop", tt.content)

			icons := &stubResolver{}
			app, err := NewParser(fs, icons, nil).Parse("/apps/entry.desktop")
			if app != nil {
				t.Errorf("Parse() returned %+v, want no application", app)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
			if reason := SkipReason(err); reason != tt.reason {
				t.Errorf("SkipReason() = %q, want %q", reason, tt.reason)
			}
			if len(icons.calls) != 0 {
				t.Errorf("resolver called for skipped entry: %q", icons.calls)
			}
		})
	}
}

func TestParseNoDisplayOnlyLiteralTrue(t *testing.T) {
	fs := memfs.New()
	writeFile(t, fs, "/apps/entry.desktop", "[Desktop Entry]\nName=Visible\nExec=visible\nNoDisplay=false\n")

	app, err := NewParser(fs, nil, nil).Parse("/apps/entry.desktop")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if app.Name != "Visible" {
		t.Errorf("Name = %q, want Visible", app.Name)
	}
}

func TestParseUnreadable(t *testing.T) {
	app, err := NewParser(memfs.New(), nil, nil).Parse("/apps/absent.desktop")
	if app != nil {
		t.Errorf("Parse() returned %+v for a missing file", app)
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("Parse() error = %v, want ErrUnreadable", err)
	}
}

func TestIsDesktopFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/usr/share/applications/firefox.desktop", true},
		{"/usr/share/applications/kde/okular.desktop", true},
		{"/usr/share/applications/mimeinfo.cache", false},
		{"/usr/share/applications/firefox.desktop.bak", false},
		{"/usr/share/applications/desktop", false},
	}

	for _, tt := range tests {
		if result := IsDesktopFile(tt.path); result != tt.expected {
			t.Errorf("IsDesktopFile(%q) = %v, want %v", tt.path, result, tt.expected)
		}
	}
}
