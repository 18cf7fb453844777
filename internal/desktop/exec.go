package desktop

import (
	"strings"

	"github.com/deskkit/applauncher/internal/config"
)

// Sanitizer strips Exec field codes from launch commands
type Sanitizer struct {
	codes []string
}

// NewSanitizer creates a sanitizer for the given field codes. An empty list
// selects the standard file and URL codes.
func NewSanitizer(codes []string) *Sanitizer {
	if len(codes) == 0 {
		codes = config.DefaultFieldCodes
	}
	return &Sanitizer{codes: codes}
}

// Sanitize removes every field code occurrence and trims the result.
// Removal repeats until nothing changes, so "%%ff" cannot leave a fresh "%f"
// behind and sanitizing twice yields the same string.
func (s *Sanitizer) Sanitize(raw string) string {
	cmd := raw
	for {
		next := cmd
		for _, code := range s.codes {
			next = strings.ReplaceAll(next, code, "")
		}
		if next == cmd {
			break
		}
		cmd = next
	}
	return strings.TrimSpace(cmd)
}

// SanitizeExec strips the standard field codes from raw
func SanitizeExec(raw string) string {
	return NewSanitizer(nil).Sanitize(raw)
}
