// Package slug derives URL- and filesystem-safe identifiers from
// human store names.
package slug

import "strings"

// Make lowercases the name, turns whitespace runs into single
// hyphens and drops every rune outside [a-z0-9-].
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ', r == '\t', r == '-', r == '_':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
