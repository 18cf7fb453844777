package theme

import (
	"context"
	"testing"

	"github.com/pkg/errors"
)

type MockDetector struct {
	theme       string
	err         error
	isAvailable bool
	source      string
	closeError  error
}

func (m *MockDetector) IconTheme(ctx context.Context) (string, error) {
	return m.theme, m.err
}

func (m *MockDetector) IsAvailable() bool {
	return m.isAvailable
}

func (m *MockDetector) Source() string {
	return m.source
}

func (m *MockDetector) Close() error {
	return m.closeError
}

func TestMockDetector(t *testing.T) {
	var _ Detector = (*MockDetector)(nil)

	mock := &MockDetector{
		theme:       "Papirus-Dark",
		isAvailable: true,
		source:      "portal",
	}

	theme, err := mock.IconTheme(context.Background())
	if err != nil {
		t.Errorf("IconTheme() error: %v", err)
	}
	if theme != "Papirus-Dark" {
		t.Errorf("IconTheme() = %s, want Papirus-Dark", theme)
	}

	if !mock.IsAvailable() {
		t.Error("IsAvailable() = false, want true")
	}

	if mock.Source() != "portal" {
		t.Errorf("Source() = %s, want portal", mock.Source())
	}

	if err := mock.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestErrNotConfigured(t *testing.T) {
	mock := &MockDetector{err: errors.Wrap(ErrNotConfigured, "gtk-4.0/settings.ini")}

	_, err := mock.IconTheme(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("IconTheme() error = %v, want ErrNotConfigured", err)
	}
}
