package sanitizer

import (
	"path"
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// SanitizeSearchKeyword returns a regex pattern that matches keyword literally.
// Surrounding whitespace is significant and kept.
func SanitizeSearchKeyword(keyword string) string {
	p := Pipeline{
		StripControl,
		regexp.QuoteMeta,
	}
	return p.Apply(keyword)
}

// SanitizeAssetPath returns a slash separated path relative to an asset root,
// or "" when nothing servable remains.
func SanitizeAssetPath(p string) string {
	if strings.ContainsRune(p, 0) {
		return ""
	}
	pipeline := Pipeline{
		func(s string) string { return strings.ReplaceAll(s, "\\", "/") },
		func(s string) string { return path.Clean("/" + s) },
		func(s string) string { return strings.TrimPrefix(s, "/") },
	}
	cleaned := pipeline.Apply(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}
