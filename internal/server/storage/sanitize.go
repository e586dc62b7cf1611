package storage

import (
	"strings"

	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

// SanitizeKey maps an arbitrary filename to a storage-safe key: every rune
// outside [A-Za-z0-9._-] becomes "_", runs of "_" collapse to one and the
// result is cut to 255 bytes. The output is pure ASCII.
func SanitizeKey(filename string) string {
	var b strings.Builder
	b.Grow(len(filename))

	lastUnderscore := false
	for _, r := range filename {
		if !isKeyRune(r) {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}

	key := b.String()
	if len(key) > common.MaxFilenameLength {
		key = key[:common.MaxFilenameLength]
	}
	return key
}

func isKeyRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}
