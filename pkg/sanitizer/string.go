package sanitizer

import (
	"strings"
	"unicode"
)

// StripControl drops every control character, including newlines and tabs.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
