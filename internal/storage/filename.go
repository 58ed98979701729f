package storage

import (
	"path/filepath"
	"strings"
)

const maxFilenameLen = 120

// SanitizeFilename reduces a client-supplied filename to a safe subset:
// path components stripped, whitespace collapsed to underscores, anything
// outside [a-zA-Z0-9._-] replaced, length capped. The extension can be
// forced to match the detected content type.
func SanitizeFilename(name, forcedExt string) string {
	// Strip any path the client sent along (both separators).
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if forcedExt != "" {
		ext = forcedExt
	}

	base = sanitizePart(base)
	if base == "" {
		base = "datei"
	}
	if len(base) > maxFilenameLen {
		base = base[:maxFilenameLen]
	}

	ext = strings.ToLower(sanitizePart(strings.TrimPrefix(ext, ".")))
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func sanitizePart(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case r == ' ', r == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "._")
}
