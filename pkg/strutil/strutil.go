// Package strutil contains small pure string and numeric helpers.
package strutil

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and collapses every non-alphanumeric run into a
// single hyphen, trimming hyphens at both ends.
func Slugify(text string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// SnakeToCamel converts snake_case to CamelCase. Consecutive underscores are
// preserved as single underscores, matching the original helper.
func SnakeToCamel(name string) string {
	parts := strings.Split(name, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			b.WriteByte('_')
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}
