// Package sanitize provides text cleanup for free-form fields coming from
// forms and spreadsheet imports.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
// Null bytes and invalid UTF-8 sequences are dropped.
func StripHTML(s string) string {
	result := strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
	result = htmlTagRegex.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text strips HTML and trims surrounding whitespace.
func Text(s string) string {
	return StripHTML(s)
}

// Line is Text with internal whitespace runs collapsed to a single space.
// Use for single-line fields such as company or person names.
func Line(s string) string {
	return whitespaceRegex.ReplaceAllString(Text(s), " ")
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max]))
}

// TextPtr is a helper for optional string pointers.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}
